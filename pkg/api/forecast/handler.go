// Package forecast exposes the calculation core over HTTP for the planning
// dashboard. Handlers are thin: decode the request, call the pure engine,
// encode the result. All persistence and debouncing stays with the caller.
package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	coreforecast "github.com/jonnysatts/fortress-modeler-sub003/pkg/core/forecast"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/scenario"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/store"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/variance"
)

var actualsRepo = store.NewActualsRepo()

type ForecastRequest struct {
	Model *model.AssumptionSet `json:"model"`
}

type ScenarioRequest struct {
	Model  *model.AssumptionSet      `json:"model"`
	Deltas *scenario.ParameterDeltas `json:"deltas"`
}

type ScenarioResponse struct {
	Baseline []coreforecast.PeriodRecord `json:"baseline"`
	Scenario []coreforecast.PeriodRecord `json:"scenario"`
}

type AnalysisRequest struct {
	Model     *model.AssumptionSet    `json:"model"`
	Actuals   []model.ActualsEntry    `json:"actuals,omitempty"`
	ProjectID string                  `json:"project_id,omitempty"`
	Mode      variance.ComparisonMode `json:"mode"`
}

// HandleForecast generates the raw forecast for a posted assumption set.
func HandleForecast(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := coreforecast.Generate(req.Model)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	fmt.Printf("[FORECAST] Generated %d periods for %q\n", len(records), req.Model.Name)
	writeJSON(w, records)
}

// HandleScenario applies parameter deltas to the posted baseline and returns
// both forecasts so the dashboard can chart them side by side. The baseline
// itself is never mutated.
func HandleScenario(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	adjusted, err := scenario.Apply(req.Model, req.Deltas)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	baseline, err := coreforecast.Generate(req.Model)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	scenarioRecs, err := coreforecast.Generate(adjusted)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	fmt.Printf("[SCENARIO] Applied deltas to %q (%d periods)\n", req.Model.Name, len(scenarioRecs))
	writeJSON(w, ScenarioResponse{Baseline: baseline, Scenario: scenarioRecs})
}

// HandleAnalysis reconciles the forecast with actuals. Actuals come inline
// with the request, or from the store when only a project ID is given.
func HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	actuals := req.Actuals
	if actuals == nil && req.ProjectID != "" && store.GetPool() != nil {
		loaded, err := actualsRepo.LoadByProject(r.Context(), req.ProjectID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		actuals = loaded
	}

	records, err := coreforecast.Generate(req.Model)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	result, err := variance.Analyze(records, actuals, req.Mode)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	fmt.Printf("[ANALYSIS] mode=%s actuals=%d latest=%d\n",
		result.Summary.Mode, result.Summary.PeriodsWithActuals, result.Summary.LatestActualPeriod)
	writeJSON(w, result)
}

// preamble handles CORS and method gating shared by all handlers.
func preamble(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return false
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// writeEngineError maps the engine's error kinds onto status codes:
// unusable configuration and missing baselines are the caller's problem.
func writeEngineError(w http.ResponseWriter, err error) {
	var cfgErr *model.ConfigurationError
	var preErr *model.PreconditionError
	if errors.As(err, &cfgErr) {
		http.Error(w, cfgErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	if errors.As(err, &preErr) {
		http.Error(w, preErr.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("[FORECAST] Failed to encode response: %v\n", err)
	}
}
