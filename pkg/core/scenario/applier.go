package scenario

import (
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
)

// Apply returns a new assumption set with the deltas applied to the baseline.
// The baseline is never mutated; the result shares no nested structures with
// it. Each rule is idempotent at delta zero, so an all-zero delta set
// reproduces the baseline exactly.
func Apply(baseline *model.AssumptionSet, deltas *ParameterDeltas) (*model.AssumptionSet, error) {
	if baseline == nil {
		return nil, &model.PreconditionError{Reason: "scenario requires a baseline assumption set"}
	}
	if deltas == nil {
		deltas = &ParameterDeltas{}
	}

	out := baseline.Clone()

	applyPricing(out, deltas)
	applyEventDeltas(out, deltas)
	applyCogs(out, deltas)
	applyMarketing(out, deltas)

	return out, nil
}

// applyPricing scales generic revenue lines; the per-customer rates of an
// event model are handled in applyEventDeltas so the pricing and per-line
// adjustments compose in one place.
func applyPricing(out *model.AssumptionSet, d *ParameterDeltas) {
	if d.PricingPercent == 0 {
		return
	}
	scale := 1 + d.PricingPercent/100
	for i := range out.RevenueStreams {
		out.RevenueStreams[i].Value *= scale
	}
}

func applyEventDeltas(out *model.AssumptionSet, d *ParameterDeltas) {
	if out.Event == nil {
		return
	}
	ev := out.Event

	// Pricing scales ticket, F&B and merchandise per-customer rates; the
	// per-line deltas then compose on top of the adjusted rate.
	priceScale := 1.0
	if d.PricingPercent != 0 {
		priceScale = 1 + d.PricingPercent/100
	}
	ev.PerCustomer.Ticket = applyLineDelta(ev.PerCustomer.Ticket*priceScale, d.TicketPriceDelta, d.TicketPriceDeltaType)
	ev.PerCustomer.FB = applyLineDelta(ev.PerCustomer.FB*priceScale, d.FBSpendDelta, d.FBSpendDeltaType)
	ev.PerCustomer.Merch = applyLineDelta(ev.PerCustomer.Merch*priceScale, d.MerchSpendDelta, d.MerchSpendDeltaType)

	// Attendance growth composes additively, in percentage points. A non-zero
	// delta also switches on growth-driven spend scaling so the adjusted
	// growth actually reaches the forecast.
	if d.AttendanceGrowthPercent != 0 {
		ev.Growth.AttendanceGrowthPercent += d.AttendanceGrowthPercent
		ev.Growth.UseCustomerSpendGrowth = true
	}
}

func applyCogs(out *model.AssumptionSet, d *ParameterDeltas) {
	if d.CogsMultiplier == 0 {
		return
	}
	if out.Event != nil {
		out.Event.Costs.FBCOGSPercent *= d.CogsMultiplier
		out.Event.Costs.MerchCOGSPercent *= d.CogsMultiplier
		out.Event.Costs.StaffCostPerPerson *= d.CogsMultiplier
	}
	// Generic variable lines are COGS percentages of revenue.
	for i := range out.Costs {
		if out.Costs[i].Kind == model.KindVariable {
			out.Costs[i].Value *= d.CogsMultiplier
		}
	}
}

// applyMarketing adjusts the plan's budgets: the global percentage first,
// then any channel-specific percentage on top. A non-zero marketing delta
// must leave the set with a usable allocation mode, never "none".
func applyMarketing(out *model.AssumptionSet, d *ParameterDeltas) {
	if !d.HasMarketingDelta() {
		return
	}
	if out.Marketing == nil {
		out.Marketing = &model.MarketingPlan{}
	}
	mp := out.Marketing

	globalScale := 1 + d.MarketingSpendPercent/100
	mp.TotalBudget *= globalScale
	for i := range mp.Channels {
		mp.Channels[i].Budget *= globalScale
		if pct, ok := d.MarketingSpendByChannel[mp.Channels[i].ID]; ok {
			mp.Channels[i].Budget *= 1 + pct/100
		}
	}

	if mp.AllocationMode == model.AllocationNone || mp.AllocationMode == "" {
		if len(mp.Channels) > 0 {
			mp.AllocationMode = model.AllocationChannels
		} else {
			mp.AllocationMode = model.AllocationBudget
		}
	}
}
