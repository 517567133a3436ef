package variance

import (
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/forecast"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
)

// Analyze merges a forecast with recorded actuals and computes the variance
// summary plus the per-period trend under the requested comparison mode.
// Periods without actuals stay nil in the trend; an entirely absent actuals
// slice yields zero variances against an empty comparison window.
func Analyze(records []forecast.PeriodRecord, actuals []model.ActualsEntry, mode ComparisonMode) (*Result, error) {
	if mode == "" {
		mode = ModePeriod
	}
	switch mode {
	case ModePeriod, ModeCumulative, ModeProjected:
	default:
		return nil, &model.ConfigurationError{
			Field:  "comparison_mode",
			Reason: "must be period, cumulative or projected",
		}
	}

	byPeriod := make(map[int]model.ActualsEntry, len(actuals))
	latest := -1
	for _, a := range actuals {
		byPeriod[a.Period] = a
		if a.Period > latest && a.Period < len(records) {
			latest = a.Period
		}
	}

	trend := buildTrend(records, byPeriod, latest)
	summary := buildSummary(trend, byPeriod, latest, mode)

	return &Result{Summary: summary, Trend: trend}, nil
}

func buildTrend(records []forecast.PeriodRecord, byPeriod map[int]model.ActualsEntry, latest int) []TrendPoint {
	trend := make([]TrendPoint, 0, len(records))

	// Calibration ratios for the revised outlook, taken at the latest
	// actualized period. A zero forecast at that period leaves the
	// remainder uncalibrated rather than exploding.
	revRatio, costRatio, profitRatio, attRatio := 1.0, 1.0, 1.0, 1.0
	if latest >= 0 {
		last := byPeriod[latest]
		revRatio = ratioOr(last.Revenue, records[latest].Revenue, 1)
		costRatio = ratioOr(last.Cost, records[latest].Cost, 1)
		profitRatio = ratioOr(last.Profit, records[latest].Profit, 1)
		if last.Attendance != nil {
			attRatio = ratioOr(*last.Attendance, records[latest].Attendance, 1)
		}
	}

	var cumFR, cumFC, cumFP float64
	var cumAR, cumAC, cumAP float64

	for _, rec := range records {
		cumFR += rec.Revenue
		cumFC += rec.Cost
		cumFP += rec.Profit

		tp := TrendPoint{
			Period:                    rec.Period,
			ForecastRevenue:           rec.Revenue,
			ForecastCost:              rec.Cost,
			ForecastProfit:            rec.Profit,
			ForecastAttendance:        rec.Attendance,
			CumulativeForecastRevenue: cumFR,
			CumulativeForecastCost:    cumFC,
			CumulativeForecastProfit:  cumFP,
		}

		if a, ok := byPeriod[rec.Period]; ok {
			tp.ActualRevenue = ptr(a.Revenue)
			tp.ActualCost = ptr(a.Cost)
			tp.ActualProfit = ptr(a.Profit)
			tp.ActualAttendance = a.Attendance

			cumAR += a.Revenue
			cumAC += a.Cost
			cumAP += a.Profit
			tp.CumulativeActualRevenue = ptr(cumAR)
			tp.CumulativeActualCost = ptr(cumAC)
			tp.CumulativeActualProfit = ptr(cumAP)

			tp.RevisedRevenue = a.Revenue
			tp.RevisedCost = a.Cost
			tp.RevisedProfit = a.Profit
			if a.Attendance != nil {
				tp.RevisedAttendance = *a.Attendance
			} else {
				tp.RevisedAttendance = rec.Attendance
			}
		} else if rec.Period > latest {
			tp.RevisedRevenue = rec.Revenue * revRatio
			tp.RevisedCost = rec.Cost * costRatio
			tp.RevisedProfit = rec.Profit * profitRatio
			tp.RevisedAttendance = rec.Attendance * attRatio
		} else {
			// A gap inside the actualized window keeps the raw forecast.
			tp.RevisedRevenue = rec.Revenue
			tp.RevisedCost = rec.Cost
			tp.RevisedProfit = rec.Profit
			tp.RevisedAttendance = rec.Attendance
		}

		trend = append(trend, tp)
	}
	return trend
}

func buildSummary(trend []TrendPoint, byPeriod map[int]model.ActualsEntry, latest int, mode ComparisonMode) Summary {
	s := Summary{
		Mode:               mode,
		LatestActualPeriod: latest,
	}

	for _, tp := range trend {
		s.ForecastTotalRevenue += tp.ForecastRevenue
		s.ForecastTotalCost += tp.ForecastCost
		s.ForecastTotalProfit += tp.ForecastProfit
		s.ForecastAttendance += tp.ForecastAttendance
		s.RevisedRevenue += tp.RevisedRevenue
		s.RevisedCost += tp.RevisedCost
		s.RevisedProfit += tp.RevisedProfit
		s.RevisedAttendance += tp.RevisedAttendance

		if tp.ActualRevenue == nil {
			continue
		}
		s.PeriodsWithActuals++
		s.ActualRevenue += *tp.ActualRevenue
		s.ActualCost += *tp.ActualCost
		s.ActualProfit += *tp.ActualProfit

		// Forecast-to-date under period semantics: only actualized periods.
		// Attendance is narrower still, only periods with a recorded
		// headcount count, so actual and to-date attendance stay comparable.
		s.ForecastToDateRevenue += tp.ForecastRevenue
		s.ForecastToDateCost += tp.ForecastCost
		s.ForecastToDateProfit += tp.ForecastProfit
		if tp.ActualAttendance != nil {
			s.ActualAttendance += *tp.ActualAttendance
			s.ForecastToDateAttendance += tp.ForecastAttendance
		}
	}

	// The comparison reference depends on the mode; the to-date figures
	// follow it so they stay comparable with the actual totals.
	refRevenue, refCost, refProfit := s.ForecastToDateRevenue, s.ForecastToDateCost, s.ForecastToDateProfit
	refAttendance := s.ForecastToDateAttendance
	switch mode {
	case ModeCumulative:
		if latest >= 0 {
			refRevenue = trend[latest].CumulativeForecastRevenue
			refCost = trend[latest].CumulativeForecastCost
			refProfit = trend[latest].CumulativeForecastProfit
			refAttendance = 0
			for _, tp := range trend[:latest+1] {
				refAttendance += tp.ForecastAttendance
			}
		} else {
			refRevenue, refCost, refProfit, refAttendance = 0, 0, 0, 0
		}
		s.ForecastToDateRevenue = refRevenue
		s.ForecastToDateCost = refCost
		s.ForecastToDateProfit = refProfit
		s.ForecastToDateAttendance = refAttendance
	case ModeProjected:
		refRevenue = s.ForecastTotalRevenue
		refCost = s.ForecastTotalCost
		refProfit = s.ForecastTotalProfit
		refAttendance = s.ForecastAttendance
	}

	s.RevenueVariance = makeVariance(s.ActualRevenue, refRevenue, false)
	s.CostVariance = makeVariance(s.ActualCost, refCost, true)
	s.ProfitVariance = makeVariance(s.ActualProfit, refProfit, false)
	s.AttendanceVariance = makeVariance(s.ActualAttendance, refAttendance, false)

	s.ForecastMargin = safeDiv(s.ForecastTotalProfit, s.ForecastTotalRevenue) * 100
	s.ActualMargin = safeDiv(s.ActualProfit, s.ActualRevenue) * 100
	s.RevisedMargin = safeDiv(s.RevisedProfit, s.RevisedRevenue) * 100

	// Margin variance in percentage points against the mode's reference.
	s.MarginVariance = makeVariance(s.ActualMargin, safeDiv(refProfit, refRevenue)*100, false)

	return s
}

// makeVariance computes actual - reference with zero-safe percentages.
// costConvention inverts favorability: overspending (positive variance) is
// the unfavorable branch for costs.
func makeVariance(actual, reference float64, costConvention bool) Variance {
	v := Variance{Amount: actual - reference}
	v.Percent = safeDiv(v.Amount, reference) * 100
	if costConvention {
		v.Favorable = v.Amount <= 0
	} else {
		v.Favorable = v.Amount >= 0
	}
	return v
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// ratioOr is safeDiv with an explicit fallback for a zero denominator.
func ratioOr(numerator, denominator, fallback float64) float64 {
	if denominator == 0 {
		return fallback
	}
	return numerator / denominator
}

func ptr(f float64) *float64 { return &f }
