package variance

import (
	"errors"
	"math"
	"testing"

	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/forecast"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
)

// flatForecast builds n periods of revenue 1000, cost 600.
func flatForecast(n int) []forecast.PeriodRecord {
	records := make([]forecast.PeriodRecord, 0, n)
	cum := 0.0
	for p := 0; p < n; p++ {
		cum += 400
		records = append(records, forecast.PeriodRecord{
			Period:           p,
			Revenue:          1000,
			Cost:             600,
			Profit:           400,
			CumulativeProfit: cum,
		})
	}
	return records
}

func actualsFor(revenues []float64, cost float64) []model.ActualsEntry {
	out := make([]model.ActualsEntry, 0, len(revenues))
	for p, rev := range revenues {
		out = append(out, model.ActualsEntry{
			Period:  p,
			Revenue: rev,
			Cost:    cost,
			Profit:  rev - cost,
		})
	}
	return out
}

func TestAnalyzePeriodMode(t *testing.T) {
	actuals := actualsFor([]float64{1050, 1080, 1100}, 600)

	result, err := Analyze(flatForecast(12), actuals, ModePeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := result.Summary

	if s.LatestActualPeriod != 2 {
		t.Errorf("expected latest actual period 2, got %d", s.LatestActualPeriod)
	}
	if s.PeriodsWithActuals != 3 {
		t.Errorf("expected 3 actualized periods, got %d", s.PeriodsWithActuals)
	}
	if math.Abs(s.ForecastToDateRevenue-3000) > 1e-9 {
		t.Errorf("expected forecast-to-date 3000, got %f", s.ForecastToDateRevenue)
	}
	if math.Abs(s.ActualRevenue-3230) > 1e-9 {
		t.Errorf("expected actual total 3230, got %f", s.ActualRevenue)
	}
	if math.Abs(s.RevenueVariance.Amount-230) > 1e-9 {
		t.Errorf("expected variance 230, got %f", s.RevenueVariance.Amount)
	}
	if math.Abs(s.RevenueVariance.Percent-230.0/3000*100) > 1e-9 {
		t.Errorf("expected variance percent ~7.67, got %f", s.RevenueVariance.Percent)
	}
	if !s.RevenueVariance.Favorable {
		t.Error("positive revenue variance must be favorable")
	}
}

func TestAnalyzeCumulativeModeWithSparseActuals(t *testing.T) {
	// Actuals only for periods 0 and 2: cumulative mode references the full
	// forecast run 0..2, period mode only the two actualized periods.
	actuals := []model.ActualsEntry{
		{Period: 0, Revenue: 1000, Cost: 600, Profit: 400},
		{Period: 2, Revenue: 1000, Cost: 600, Profit: 400},
	}

	result, err := Analyze(flatForecast(12), actuals, ModeCumulative)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(result.Summary.RevenueVariance.Amount-(-1000)) > 1e-9 {
		t.Errorf("expected variance -1000 against cumulative 3000, got %f", result.Summary.RevenueVariance.Amount)
	}

	result, err = Analyze(flatForecast(12), actuals, ModePeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(result.Summary.RevenueVariance.Amount-0) > 1e-9 {
		t.Errorf("expected variance 0 against matched periods, got %f", result.Summary.RevenueVariance.Amount)
	}
}

func TestAnalyzeProjectedModeAndRevisedOutlook(t *testing.T) {
	// Last actual at period 2 runs 10% hot: every later period's revised
	// revenue is the forecast scaled by that ratio.
	actuals := actualsFor([]float64{1000, 1000, 1100}, 600)

	result, err := Analyze(flatForecast(12), actuals, ModeProjected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := result.Summary

	if math.Abs(s.ForecastTotalRevenue-12000) > 1e-9 {
		t.Errorf("expected full-horizon reference 12000, got %f", s.ForecastTotalRevenue)
	}
	if math.Abs(s.RevenueVariance.Amount-(3100-12000)) > 1e-9 {
		t.Errorf("expected projected variance %f, got %f", 3100-12000.0, s.RevenueVariance.Amount)
	}

	for _, tp := range result.Trend {
		if tp.Period <= 2 {
			continue
		}
		expected := tp.ForecastRevenue * 1.1
		if math.Abs(tp.RevisedRevenue-expected) > 1e-9 {
			t.Errorf("period %d: expected revised revenue %f, got %f", tp.Period, expected, tp.RevisedRevenue)
		}
	}

	// Revised total blends actuals to date with the calibrated remainder.
	expectedRevised := 3100 + 9*1100.0
	if math.Abs(s.RevisedRevenue-expectedRevised) > 1e-9 {
		t.Errorf("expected revised total %f, got %f", expectedRevised, s.RevisedRevenue)
	}
}

func TestAnalyzeAttendanceAndMarginVariance(t *testing.T) {
	// Forecast 100 heads per period; headcount recorded for periods 0 and 1,
	// period 2 reported money only. The attendance comparison window must
	// cover only the periods with a recorded headcount.
	records := flatForecast(6)
	for p := range records {
		records[p].Attendance = 100
	}
	att0, att1 := 110.0, 90.0
	actuals := []model.ActualsEntry{
		{Period: 0, Revenue: 1000, Cost: 600, Profit: 400, Attendance: &att0},
		{Period: 1, Revenue: 1000, Cost: 600, Profit: 400, Attendance: &att1},
		{Period: 2, Revenue: 1200, Cost: 600, Profit: 600},
	}

	result, err := Analyze(records, actuals, ModePeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := result.Summary

	if math.Abs(s.ForecastToDateAttendance-200) > 1e-9 {
		t.Errorf("expected to-date attendance 200 over recorded periods, got %f", s.ForecastToDateAttendance)
	}
	if math.Abs(s.ActualAttendance-200) > 1e-9 {
		t.Errorf("expected actual attendance 200, got %f", s.ActualAttendance)
	}
	if math.Abs(s.AttendanceVariance.Amount-0) > 1e-9 {
		t.Errorf("expected attendance variance 0, got %f", s.AttendanceVariance.Amount)
	}

	// Actual margin 1400/3200 vs forecast-to-date margin 1200/3000, in
	// percentage points.
	expectedMargin := 1400.0/3200*100 - 1200.0/3000*100
	if math.Abs(s.MarginVariance.Amount-expectedMargin) > 1e-9 {
		t.Errorf("expected margin variance %f, got %f", expectedMargin, s.MarginVariance.Amount)
	}
	if !s.MarginVariance.Favorable {
		t.Error("margin running ahead of forecast must be favorable")
	}
}

func TestAnalyzeRevisedAttendance(t *testing.T) {
	// Headcount at the latest actual runs 20% hot: later periods calibrate,
	// the actualized window keeps what was recorded.
	records := flatForecast(4)
	for p := range records {
		records[p].Attendance = 100
	}
	att := 120.0
	actuals := []model.ActualsEntry{
		{Period: 0, Revenue: 1000, Cost: 600, Profit: 400, Attendance: &att},
	}

	result, err := Analyze(records, actuals, ModePeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.Trend[0].RevisedAttendance-120) > 1e-9 {
		t.Errorf("expected recorded attendance 120, got %f", result.Trend[0].RevisedAttendance)
	}
	for _, tp := range result.Trend[1:] {
		if math.Abs(tp.RevisedAttendance-120) > 1e-9 {
			t.Errorf("period %d: expected calibrated attendance 120, got %f", tp.Period, tp.RevisedAttendance)
		}
	}
	if math.Abs(result.Summary.RevisedAttendance-480) > 1e-9 {
		t.Errorf("expected revised attendance total 480, got %f", result.Summary.RevisedAttendance)
	}
}

func TestAnalyzeToDateTracksCumulativeMode(t *testing.T) {
	// Actuals at periods 0 and 2 only: cumulative to-date must carry the
	// full forecast run through period 2, not just the matched periods.
	actuals := []model.ActualsEntry{
		{Period: 0, Revenue: 1000, Cost: 600, Profit: 400},
		{Period: 2, Revenue: 1000, Cost: 600, Profit: 400},
	}

	result, err := Analyze(flatForecast(12), actuals, ModeCumulative)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := result.Summary
	if math.Abs(s.ForecastToDateRevenue-3000) > 1e-9 {
		t.Errorf("expected cumulative to-date revenue 3000, got %f", s.ForecastToDateRevenue)
	}
	if math.Abs(s.ForecastToDateProfit-1200) > 1e-9 {
		t.Errorf("expected cumulative to-date profit 1200, got %f", s.ForecastToDateProfit)
	}

	result, err = Analyze(flatForecast(12), actuals, ModePeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(result.Summary.ForecastToDateRevenue-2000) > 1e-9 {
		t.Errorf("expected period to-date revenue 2000, got %f", result.Summary.ForecastToDateRevenue)
	}
}

func TestAnalyzeCostSignConvention(t *testing.T) {
	// Cost overrun: positive variance, unfavorable.
	actuals := []model.ActualsEntry{{Period: 0, Revenue: 1000, Cost: 700, Profit: 300}}

	result, err := Analyze(flatForecast(4), actuals, ModePeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cv := result.Summary.CostVariance
	if cv.Amount <= 0 {
		t.Fatalf("expected positive cost variance for overrun, got %f", cv.Amount)
	}
	if cv.Favorable {
		t.Error("cost overrun must be unfavorable")
	}

	// Underspend: negative variance, favorable.
	actuals[0].Cost = 500
	result, err = Analyze(flatForecast(4), actuals, ModePeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Summary.CostVariance.Favorable {
		t.Error("cost underspend must be favorable")
	}
}

func TestAnalyzeZeroForecastReference(t *testing.T) {
	records := []forecast.PeriodRecord{{Period: 0}}
	actuals := []model.ActualsEntry{{Period: 0, Revenue: 500, Cost: 0, Profit: 500}}

	result, err := Analyze(records, actuals, ModePeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := result.Summary

	if s.RevenueVariance.Percent != 0 {
		t.Errorf("expected 0%% on zero forecast reference, got %f", s.RevenueVariance.Percent)
	}
	if math.IsNaN(s.ActualMargin) || math.IsInf(s.ActualMargin, 0) {
		t.Errorf("margin must stay finite, got %f", s.ActualMargin)
	}
}

func TestAnalyzeDistinguishesZeroActualFromMissing(t *testing.T) {
	// Period 0 recorded an actual zero; period 1 has no actual yet.
	actuals := []model.ActualsEntry{{Period: 0, Revenue: 0, Cost: 0, Profit: 0}}

	result, err := Analyze(flatForecast(3), actuals, ModePeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Trend[0].ActualRevenue == nil {
		t.Fatal("recorded zero must be present, not nil")
	}
	if *result.Trend[0].ActualRevenue != 0 {
		t.Errorf("expected recorded zero, got %f", *result.Trend[0].ActualRevenue)
	}
	if result.Trend[1].ActualRevenue != nil {
		t.Error("unactualized period must stay nil, not zero")
	}
	if result.Summary.PeriodsWithActuals != 1 {
		t.Errorf("expected 1 actualized period, got %d", result.Summary.PeriodsWithActuals)
	}
}

func TestAnalyzeNoActuals(t *testing.T) {
	result, err := Analyze(flatForecast(6), nil, ModePeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := result.Summary

	if s.LatestActualPeriod != -1 {
		t.Errorf("expected latest actual period -1, got %d", s.LatestActualPeriod)
	}
	if s.RevenueVariance.Amount != 0 || s.RevenueVariance.Percent != 0 {
		t.Errorf("expected zero variance with no actuals, got %+v", s.RevenueVariance)
	}
	// Revised outlook falls back to the forecast itself.
	if math.Abs(s.RevisedRevenue-s.ForecastTotalRevenue) > 1e-9 {
		t.Errorf("expected revised == forecast with no actuals, got %f vs %f", s.RevisedRevenue, s.ForecastTotalRevenue)
	}
}

func TestAnalyzeDefaultsAndRejectsMode(t *testing.T) {
	if _, err := Analyze(flatForecast(2), nil, ""); err != nil {
		t.Errorf("empty mode should default to period, got %v", err)
	}

	_, err := Analyze(flatForecast(2), nil, ComparisonMode("yearly"))
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for unknown mode, got %v", err)
	}
}
