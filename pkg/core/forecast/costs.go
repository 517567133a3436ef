package forecast

import (
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
)

// CostResult is the per-period cost output of the cost engine.
// Sum of Breakdown values equals Total exactly; no rounding happens here.
type CostResult struct {
	Total     float64                        `json:"total"`
	Breakdown map[model.CostCategory]float64 `json:"breakdown"`
}

// ComputePeriodCosts returns the cost breakdown for one period.
// revenueByStream carries the same period's revenue figures, which COGS
// percentages are taken against; a percentage with zero corresponding
// revenue contributes zero. The assumption set must be normalized.
func ComputePeriodCosts(period int, revenueByStream map[string]float64, m *model.AssumptionSet) CostResult {
	breakdown := map[model.CostCategory]float64{}
	growth := m.Growth

	totalRevenue := 0.0
	for _, v := range revenueByStream {
		totalRevenue += v
	}

	// Generic cost lines.
	for _, c := range m.Costs {
		cat := c.Category
		if cat == "" {
			cat = model.CategoryOther
		}
		switch c.Kind {
		case model.KindVariable:
			// Value is a percentage of this period's revenue.
			breakdown[cat] += c.Value / 100 * totalRevenue
		case model.KindRecurring:
			// Scaled only when the growth model names this line.
			v := c.Value
			if growth != nil {
				if _, ok := growth.IndividualRates[c.Name]; ok {
					v = c.Value * Factor(growth, period, c.Name)
				}
			}
			breakdown[cat] += v
		default: // fixed
			breakdown[cat] += c.Value
		}
	}

	// Event cost detail.
	if m.Event != nil {
		ec := m.Event.Costs

		if ec.SetupCost != 0 {
			if ec.SpreadSetupCost {
				breakdown[model.CategoryOperations] += ec.SetupCost / float64(m.DurationPeriods)
			} else if period == 0 {
				breakdown[model.CategoryOperations] += ec.SetupCost
			}
		}

		breakdown[model.CategoryOperations] += ec.FBCOGSPercent / 100 * revenueByStream[model.StreamFB]
		breakdown[model.CategoryOperations] += ec.MerchCOGSPercent / 100 * revenueByStream[model.StreamMerch]

		staffing := ec.StaffCount * ec.StaffCostPerPerson
		if growth != nil {
			if _, ok := growth.IndividualRates[string(model.CategoryStaffing)]; ok {
				staffing *= Factor(growth, period, string(model.CategoryStaffing))
			}
		}
		breakdown[model.CategoryStaffing] += staffing

		breakdown[model.CategoryOther] += ec.ManagementCost
	}

	// Marketing allocation.
	if m.Marketing != nil {
		switch m.Marketing.AllocationMode {
		case model.AllocationChannels:
			for _, ch := range m.Marketing.Channels {
				breakdown[model.CategoryMarketing] += ch.Budget
			}
		case model.AllocationBudget:
			breakdown[model.CategoryMarketing] += m.Marketing.TotalBudget
		}
	}

	total := 0.0
	for _, v := range breakdown {
		total += v
	}
	return CostResult{Total: total, Breakdown: breakdown}
}
