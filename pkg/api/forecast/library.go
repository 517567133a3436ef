package forecast

import (
	"encoding/json"
	"fmt"
	"net/http"

	coreforecast "github.com/jonnysatts/fortress-modeler-sub003/pkg/core/forecast"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/scenario"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/store"
)

var (
	modelRepo    = store.NewModelRepo()
	scenarioRepo = store.NewScenarioRepo()
)

type ModelSaveRequest struct {
	ID    string               `json:"id,omitempty"`
	Model *model.AssumptionSet `json:"model"`
}

type ModelGetRequest struct {
	ID string `json:"id"`
}

type ProjectRequest struct {
	ProjectID string `json:"project_id"`
}

type ScenarioSaveRequest struct {
	ID        string                    `json:"id,omitempty"`
	ProjectID string                    `json:"project_id"`
	Name      string                    `json:"name"`
	Deltas    *scenario.ParameterDeltas `json:"deltas"`
}

type ScenarioRunRequest struct {
	ScenarioID string               `json:"scenario_id"`
	Model      *model.AssumptionSet `json:"model"`
}

// HandleModelSave upserts a posted assumption set and returns its ID.
func HandleModelSave(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) || !requireStore(w) {
		return
	}

	var req ModelSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Model == nil {
		http.Error(w, "model is required", http.StatusBadRequest)
		return
	}

	id, err := modelRepo.Save(r.Context(), req.ID, req.Model)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Printf("[LIBRARY] Saved model %q as %s\n", req.Model.Name, id)
	writeJSON(w, map[string]string{"id": id})
}

// HandleModelGet loads one saved assumption set by ID.
func HandleModelGet(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) || !requireStore(w) {
		return
	}

	var req ModelGetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := modelRepo.Load(r.Context(), req.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, a)
}

// HandleModelList returns every saved assumption set for a project, newest
// first.
func HandleModelList(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) || !requireStore(w) {
		return
	}

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	models, err := modelRepo.ListByProject(r.Context(), req.ProjectID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, models)
}

// HandleScenarioSave names and stores a delta set for later re-application.
func HandleScenarioSave(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) || !requireStore(w) {
		return
	}

	var req ScenarioSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Deltas == nil {
		http.Error(w, "deltas are required", http.StatusBadRequest)
		return
	}

	sc := &store.SavedScenario{
		ID:        req.ID,
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Deltas:    *req.Deltas,
	}
	id, err := scenarioRepo.Save(r.Context(), sc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Printf("[LIBRARY] Saved scenario %q as %s\n", req.Name, id)
	writeJSON(w, map[string]string{"id": id})
}

// HandleScenarioList returns the saved scenarios for a project.
func HandleScenarioList(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) || !requireStore(w) {
		return
	}

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	scenarios, err := scenarioRepo.ListByProject(r.Context(), req.ProjectID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, scenarios)
}

// HandleScenarioRun re-applies a saved delta set to the posted baseline and
// returns both forecasts. Deltas always re-apply to the current baseline,
// never to a forecast computed when the scenario was saved.
func HandleScenarioRun(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) || !requireStore(w) {
		return
	}

	var req ScenarioRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sc, err := scenarioRepo.Load(r.Context(), req.ScenarioID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	adjusted, err := scenario.Apply(req.Model, &sc.Deltas)
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

	fmt.Printf("[LIBRARY] Ran scenario %q against %q\n", sc.Name, req.Model.Name)
	writeJSON(w, ScenarioResponse{Baseline: baseline, Scenario: scenarioRecs})
}

// requireStore rejects library requests when no database is configured. The
// pure calculation endpoints stay usable either way.
func requireStore(w http.ResponseWriter) bool {
	if store.GetPool() == nil {
		http.Error(w, "persistence is not configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}
