// Package variance reconciles a generated forecast against recorded actual
// results. It merges the two per period, computes variances under three
// temporal comparison semantics, and produces a revised full-horizon outlook
// that blends actuals to date with a forecast-calibrated projection.
package variance

// ComparisonMode selects the forecast reference the actuals are compared to.
type ComparisonMode string

const (
	// ModePeriod compares against the sum of forecast values over periods
	// that have a matching actual (apples-to-apples window).
	ModePeriod ComparisonMode = "period"
	// ModeCumulative compares against the running cumulative forecast at the
	// latest actualized period.
	ModeCumulative ComparisonMode = "cumulative"
	// ModeProjected compares against the full-horizon forecast total.
	ModeProjected ComparisonMode = "projected"
)

// TrendPoint is one period of the merged forecast/actual view. Actual fields
// are pointers: nil means "not yet actualized", which must stay
// distinguishable from a recorded zero. Revised fields carry the per-period
// revised outlook (actual where recorded, calibrated forecast beyond).
type TrendPoint struct {
	Period int `json:"period"`

	ForecastRevenue    float64 `json:"forecast_revenue"`
	ForecastCost       float64 `json:"forecast_cost"`
	ForecastProfit     float64 `json:"forecast_profit"`
	ForecastAttendance float64 `json:"forecast_attendance,omitempty"`

	CumulativeForecastRevenue float64 `json:"cumulative_forecast_revenue"`
	CumulativeForecastCost    float64 `json:"cumulative_forecast_cost"`
	CumulativeForecastProfit  float64 `json:"cumulative_forecast_profit"`

	ActualRevenue    *float64 `json:"actual_revenue,omitempty"`
	ActualCost       *float64 `json:"actual_cost,omitempty"`
	ActualProfit     *float64 `json:"actual_profit,omitempty"`
	ActualAttendance *float64 `json:"actual_attendance,omitempty"`

	CumulativeActualRevenue *float64 `json:"cumulative_actual_revenue,omitempty"`
	CumulativeActualCost    *float64 `json:"cumulative_actual_cost,omitempty"`
	CumulativeActualProfit  *float64 `json:"cumulative_actual_profit,omitempty"`

	RevisedRevenue    float64 `json:"revised_revenue"`
	RevisedCost       float64 `json:"revised_cost"`
	RevisedProfit     float64 `json:"revised_profit"`
	RevisedAttendance float64 `json:"revised_attendance,omitempty"`
}

// Variance is one absolute/percent variance pair plus its favorability under
// the metric's sign convention. For revenue and profit a positive variance
// is favorable; for cost the convention is inverted, so variance <= 0 is the
// favorable branch. Downstream coloring logic relies on Favorable rather
// than re-deriving the sign.
type Variance struct {
	Amount    float64 `json:"amount"`
	Percent   float64 `json:"percent"`
	Favorable bool    `json:"favorable"`
}

// Summary aggregates the reconciliation: full-horizon and to-date forecast
// totals, actual totals, the revised outlook, margins and variances.
type Summary struct {
	Mode               ComparisonMode `json:"mode"`
	LatestActualPeriod int            `json:"latest_actual_period"` // -1 when no actuals
	PeriodsWithActuals int            `json:"periods_with_actuals"`

	ForecastTotalRevenue float64 `json:"forecast_total_revenue"`
	ForecastTotalCost    float64 `json:"forecast_total_cost"`
	ForecastTotalProfit  float64 `json:"forecast_total_profit"`
	ForecastMargin       float64 `json:"forecast_margin"`

	// To-date figures follow the comparison mode: under period semantics
	// they sum only the actualized periods (attendance only those with a
	// recorded headcount), under cumulative semantics they carry the running
	// cumulative at the latest actualized period.
	ForecastToDateRevenue    float64 `json:"forecast_to_date_revenue"`
	ForecastToDateCost       float64 `json:"forecast_to_date_cost"`
	ForecastToDateProfit     float64 `json:"forecast_to_date_profit"`
	ForecastToDateAttendance float64 `json:"forecast_to_date_attendance,omitempty"`

	ActualRevenue    float64 `json:"actual_revenue"`
	ActualCost       float64 `json:"actual_cost"`
	ActualProfit     float64 `json:"actual_profit"`
	ActualMargin     float64 `json:"actual_margin"`
	ActualAttendance float64 `json:"actual_attendance,omitempty"`

	// ForecastAttendance is the full-horizon attendance total.
	ForecastAttendance float64 `json:"forecast_attendance,omitempty"`

	RevisedRevenue    float64 `json:"revised_revenue"`
	RevisedCost       float64 `json:"revised_cost"`
	RevisedProfit     float64 `json:"revised_profit"`
	RevisedMargin     float64 `json:"revised_margin"`
	RevisedAttendance float64 `json:"revised_attendance,omitempty"`

	RevenueVariance    Variance `json:"revenue_variance"`
	CostVariance       Variance `json:"cost_variance"`
	ProfitVariance     Variance `json:"profit_variance"`
	AttendanceVariance Variance `json:"attendance_variance"`
	// MarginVariance.Amount is in percentage points.
	MarginVariance Variance `json:"margin_variance"`
}

// Result pairs the scalar summary with the per-period trend sequence.
type Result struct {
	Summary Summary      `json:"summary"`
	Trend   []TrendPoint `json:"trend"`
}
