// Package scenario implements "what-if" exploration: a set of parameter
// deltas is applied to a baseline assumption set to produce a new,
// structurally independent set. The baseline is never mutated, so the caller
// can re-apply fresh deltas to the same baseline on every slider change.
package scenario

// DeltaType selects how a per-line delta is interpreted.
type DeltaType string

const (
	// DeltaPercent scales the baseline value by (1 + delta/100).
	DeltaPercent DeltaType = "percent"
	// DeltaAbsolute adds a flat amount to the baseline value.
	DeltaAbsolute DeltaType = "absolute"
)

// ParameterDeltas is one signed adjustment per tunable baseline parameter.
// The zero value is a strict no-op: applying it reproduces the baseline.
//
// Composition rules are deliberately asymmetric: pricing and COGS compose
// multiplicatively with the baseline, attendance growth composes additively
// (the delta is added to the baseline growth rate, in percentage points).
type ParameterDeltas struct {
	MarketingSpendPercent   float64            `json:"marketing_spend_percent"`
	MarketingSpendByChannel map[string]float64 `json:"marketing_spend_by_channel,omitempty"`

	PricingPercent          float64 `json:"pricing_percent"`
	AttendanceGrowthPercent float64 `json:"attendance_growth_percent"`

	// CogsMultiplier scales COGS percentages and per-person staffing cost.
	// Zero means "not set" and leaves the baseline untouched.
	CogsMultiplier float64 `json:"cogs_multiplier"`

	TicketPriceDelta     float64   `json:"ticket_price_delta"`
	TicketPriceDeltaType DeltaType `json:"ticket_price_delta_type,omitempty"`
	FBSpendDelta         float64   `json:"fb_spend_delta"`
	FBSpendDeltaType     DeltaType `json:"fb_spend_delta_type,omitempty"`
	MerchSpendDelta      float64   `json:"merch_spend_delta"`
	MerchSpendDeltaType  DeltaType `json:"merch_spend_delta_type,omitempty"`
}

// HasMarketingDelta reports whether any marketing adjustment is non-zero.
func (d *ParameterDeltas) HasMarketingDelta() bool {
	if d.MarketingSpendPercent != 0 {
		return true
	}
	for _, pct := range d.MarketingSpendByChannel {
		if pct != 0 {
			return true
		}
	}
	return false
}

// applyLineDelta interprets one per-line delta against a baseline value.
func applyLineDelta(base, delta float64, kind DeltaType) float64 {
	if delta == 0 {
		return base
	}
	if kind == DeltaAbsolute {
		return base + delta
	}
	return base * (1 + delta/100)
}
