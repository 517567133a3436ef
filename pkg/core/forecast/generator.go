package forecast

import (
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
)

// PeriodRecord is one period of the generated forecast, ordered by period
// index. Invariants: Profit = Revenue - Cost exactly, and CumulativeProfit
// chains period over period starting from Profit at period 0.
type PeriodRecord struct {
	Period           int                            `json:"period"`
	Revenue          float64                        `json:"revenue"`
	RevenueByStream  map[string]float64             `json:"revenue_by_stream"`
	Cost             float64                        `json:"cost"`
	CostByCategory   map[model.CostCategory]float64 `json:"cost_by_category"`
	Profit           float64                        `json:"profit"`
	Attendance       float64                        `json:"attendance,omitempty"`
	CumulativeProfit float64                        `json:"cumulative_profit"`
}

// Generate produces one PeriodRecord per period of the configured horizon.
// The input is normalized first, so an incomplete assumption set computes an
// unscaled baseline rather than failing; only genuinely unusable models
// (negative duration, seasonal growth without factors) return an error.
func Generate(a *model.AssumptionSet) ([]PeriodRecord, error) {
	m, err := model.Normalize(a)
	if err != nil {
		return nil, err
	}

	records := make([]PeriodRecord, 0, m.DurationPeriods)
	cumulative := 0.0

	for p := 0; p < m.DurationPeriods; p++ {
		revByStream := map[string]float64{}
		attendance := 0.0

		if m.IsEventDriven() {
			ev := m.Event
			attendance = ev.InitialAttendance * Factor(attendanceSpec(m), p, "")
			for key, rate := range spendRatesByStream(ev.PerCustomer) {
				revByStream[key] = attendance * spendRateAt(m, key, rate, p)
			}
		}

		for _, rs := range m.RevenueStreams {
			revByStream[rs.Name] += rs.Value * Factor(m.Growth, p, rs.Name)
		}

		revenue := 0.0
		for _, v := range revByStream {
			revenue += v
		}

		costs := ComputePeriodCosts(p, revByStream, m)
		profit := revenue - costs.Total
		cumulative += profit

		records = append(records, PeriodRecord{
			Period:           p,
			Revenue:          revenue,
			RevenueByStream:  revByStream,
			Cost:             costs.Total,
			CostByCategory:   costs.Breakdown,
			Profit:           profit,
			Attendance:       attendance,
			CumulativeProfit: cumulative,
		})
	}

	return records, nil
}

// attendanceSpec builds the growth spec driving attendance: the model's
// compounding kind with the event's blanket attendance rate (captured as a
// percentage in the dashboard, hence the /100).
func attendanceSpec(m *model.AssumptionSet) *model.GrowthSpec {
	return &model.GrowthSpec{
		Kind:            m.Growth.Kind,
		Rate:            m.Event.Growth.AttendanceGrowthPercent / 100,
		SeasonalFactors: m.Growth.SeasonalFactors,
	}
}

// spendRateAt returns the per-customer spend rate for a stream at a period.
// The base rate is growth-scaled only when spend growth is enabled and a
// per-stream override exists for this stream.
func spendRateAt(m *model.AssumptionSet, streamKey string, base float64, period int) float64 {
	g := m.Event.Growth
	if !g.UseCustomerSpendGrowth {
		return base
	}
	pct, ok := g.SpendGrowthPercents[streamKey]
	if !ok {
		return base
	}
	spec := &model.GrowthSpec{
		Kind:            m.Growth.Kind,
		Rate:            pct / 100,
		SeasonalFactors: m.Growth.SeasonalFactors,
	}
	return base * Factor(spec, period, "")
}

func spendRatesByStream(s model.SpendRates) map[string]float64 {
	return map[string]float64{
		model.StreamTicket: s.Ticket,
		model.StreamFB:     s.FB,
		model.StreamMerch:  s.Merch,
		model.StreamOnline: s.Online,
		model.StreamMisc:   s.Misc,
	}
}
