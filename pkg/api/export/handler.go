// Package export renders forecast and trend rows as CSV for download. The
// engine output is already flat, so export is pure formatting; rounding to
// presentation precision happens here and nowhere inside the engine.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	coreforecast "github.com/jonnysatts/fortress-modeler-sub003/pkg/core/forecast"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/variance"
)

type ForecastExportRequest struct {
	Model *model.AssumptionSet `json:"model"`
}

type TrendExportRequest struct {
	Model   *model.AssumptionSet    `json:"model"`
	Actuals []model.ActualsEntry    `json:"actuals,omitempty"`
	Mode    variance.ComparisonMode `json:"mode"`
}

// HandleForecastCSV writes the raw forecast as one CSV row per period.
func HandleForecastCSV(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req ForecastExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := coreforecast.Generate(req.Model)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="forecast.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"period", "revenue", "cost", "profit", "attendance", "cumulative_profit"})
	for _, rec := range records {
		cw.Write([]string{
			strconv.Itoa(rec.Period),
			money(rec.Revenue),
			money(rec.Cost),
			money(rec.Profit),
			money(rec.Attendance),
			money(rec.CumulativeProfit),
		})
	}
	cw.Flush()
	fmt.Printf("[EXPORT] forecast.csv: %d rows\n", len(records))
}

// HandleTrendCSV writes the merged forecast/actual trend. Unactualized
// periods export empty actual cells, not zeros.
func HandleTrendCSV(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req TrendExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := coreforecast.Generate(req.Model)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	result, err := variance.Analyze(records, req.Actuals, req.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trend.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{
		"period",
		"forecast_revenue", "forecast_cost", "forecast_profit",
		"actual_revenue", "actual_cost", "actual_profit",
		"revised_revenue", "revised_cost", "revised_profit",
	})
	for _, tp := range result.Trend {
		cw.Write([]string{
			strconv.Itoa(tp.Period),
			money(tp.ForecastRevenue), money(tp.ForecastCost), money(tp.ForecastProfit),
			moneyPtr(tp.ActualRevenue), moneyPtr(tp.ActualCost), moneyPtr(tp.ActualProfit),
			money(tp.RevisedRevenue), money(tp.RevisedCost), money(tp.RevisedProfit),
		})
	}
	cw.Flush()
	fmt.Printf("[EXPORT] trend.csv: %d rows (mode=%s)\n", len(result.Trend), result.Summary.Mode)
}

// preamble handles CORS and method gating; exports take the model in a JSON
// body, so they are POST like the calculation endpoints.
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

func money(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func moneyPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return money(*f)
}
