// Package model defines the declarative assumption set consumed by the
// forecasting engine, plus the recorded actuals it is reconciled against.
// Everything here is plain serializable data: the engine never retains state
// between calls, so the surrounding application hands a full AssumptionSet
// to every recompute.
package model

// =============================================================================
// GROWTH SPECIFICATION
// =============================================================================

// GrowthKind selects the compounding semantics of a GrowthSpec.
type GrowthKind string

const (
	GrowthLinear      GrowthKind = "linear"
	GrowthExponential GrowthKind = "exponential"
	GrowthSeasonal    GrowthKind = "seasonal"
)

// GrowthSpec is a tagged union describing how base quantities scale across
// the forecast horizon. Rate is a per-period fraction (0.05 = 5%).
// SeasonalFactors is required and non-empty only for GrowthSeasonal.
// IndividualRates, when present, override the blanket Rate for the named
// streams only; the compounding rule still follows Kind.
type GrowthSpec struct {
	Kind            GrowthKind         `json:"kind"`
	Rate            float64            `json:"rate"`
	SeasonalFactors []float64          `json:"seasonal_factors,omitempty"`
	IndividualRates map[string]float64 `json:"individual_rates,omitempty"`
}

// =============================================================================
// REVENUE & COST LINES
// =============================================================================

// LineKind classifies a revenue or cost line.
type LineKind string

const (
	KindFixed     LineKind = "fixed"
	KindVariable  LineKind = "variable"
	KindRecurring LineKind = "recurring"
)

// CostCategory buckets cost lines for the per-period breakdown.
type CostCategory string

const (
	CategoryStaffing   CostCategory = "staffing"
	CategoryMarketing  CostCategory = "marketing"
	CategoryOperations CostCategory = "operations"
	CategoryOther      CostCategory = "other"
)

// RevenueAssumption is one named income line. Value is the per-period base
// amount before growth scaling.
type RevenueAssumption struct {
	Name      string   `json:"name"`
	Value     float64  `json:"value"`
	Kind      LineKind `json:"kind"`
	Frequency string   `json:"frequency,omitempty"` // e.g. "weekly", "monthly"
}

// CostAssumption is one named cost line.
type CostAssumption struct {
	Name     string       `json:"name"`
	Value    float64      `json:"value"`
	Kind     LineKind     `json:"kind"`
	Category CostCategory `json:"category"`
}

// =============================================================================
// EVENT METADATA (per-customer / attendance-driven products)
// =============================================================================

// Stream keys for the per-customer spend categories of an event product.
// These key GrowthSpec.IndividualRates, EventGrowth.SpendGrowthPercents and
// the per-stream revenue breakdown of a PeriodRecord.
const (
	StreamTicket = "ticket"
	StreamFB     = "fb"
	StreamMerch  = "merch"
	StreamOnline = "online"
	StreamMisc   = "misc"
)

// SpendRates holds the per-customer spend for each revenue category of a
// weekly event product.
type SpendRates struct {
	Ticket float64 `json:"ticket"`
	FB     float64 `json:"fb"`
	Merch  float64 `json:"merch"`
	Online float64 `json:"online"`
	Misc   float64 `json:"misc"`
}

// EventCosts is the cost detail block of an event product.
// SetupCost is one-time: full value on period 0, or value/duration every
// period when SpreadSetupCost is set. COGS percents apply to the matching
// revenue category of the same period (0-100 scale).
type EventCosts struct {
	SetupCost          float64 `json:"setup_cost"`
	SpreadSetupCost    bool    `json:"spread_setup_cost"`
	FBCOGSPercent      float64 `json:"fb_cogs_percent"`
	MerchCOGSPercent   float64 `json:"merch_cogs_percent"`
	StaffCount         float64 `json:"staff_count"`
	StaffCostPerPerson float64 `json:"staff_cost_per_person"`
	ManagementCost     float64 `json:"management_cost"`
}

// EventGrowth is the growth detail block of an event product. Rates here are
// percentages (5 = 5%), matching how the dashboard captures them.
// SpendGrowthPercents overrides the blanket attendance growth for individual
// spend streams; it only takes effect when UseCustomerSpendGrowth is set.
type EventGrowth struct {
	AttendanceGrowthPercent float64            `json:"attendance_growth_percent"`
	UseCustomerSpendGrowth  bool               `json:"use_customer_spend_growth"`
	SpendGrowthPercents     map[string]float64 `json:"spend_growth_percents,omitempty"`
}

// EventMetadata specializes an AssumptionSet for attendance-driven products:
// revenue is derived from attendance * per-customer spend instead of flat
// revenue lines.
type EventMetadata struct {
	WeeksDuration     int         `json:"weeks_duration"`
	InitialAttendance float64     `json:"initial_attendance"`
	PerCustomer       SpendRates  `json:"per_customer"`
	Costs             EventCosts  `json:"costs"`
	Growth            EventGrowth `json:"growth"`
}

// =============================================================================
// MARKETING PLAN
// =============================================================================

// MarketingAllocationMode selects how marketing spend is allocated.
type MarketingAllocationMode string

const (
	AllocationNone     MarketingAllocationMode = "none"
	AllocationBudget   MarketingAllocationMode = "budget"
	AllocationChannels MarketingAllocationMode = "channels"
)

// MarketingChannel is one named spend channel with a per-period budget.
type MarketingChannel struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
}

// MarketingPlan describes how marketing spend is allocated. Budgets are
// per-period amounts; the cost engine folds them into the marketing category.
type MarketingPlan struct {
	AllocationMode MarketingAllocationMode `json:"allocation_mode"`
	TotalBudget    float64                 `json:"total_budget"`
	Channels       []MarketingChannel      `json:"channels,omitempty"`
}

// =============================================================================
// ASSUMPTION SET
// =============================================================================

// AssumptionSet is the full declarative input to a forecast: revenue streams,
// cost structure, a growth model, and optionally the event-product and
// marketing specializations. The engine treats it as immutable; every
// transform returns a new value.
type AssumptionSet struct {
	ProjectID       string              `json:"project_id,omitempty"`
	Name            string              `json:"name,omitempty"`
	DurationPeriods int                 `json:"duration_periods"`
	RevenueStreams  []RevenueAssumption `json:"revenue_streams,omitempty"`
	Costs           []CostAssumption    `json:"costs,omitempty"`
	Growth          *GrowthSpec         `json:"growth,omitempty"`
	Event           *EventMetadata      `json:"event,omitempty"`
	Marketing       *MarketingPlan      `json:"marketing,omitempty"`
}

// IsEventDriven reports whether revenue derives from attendance economics.
func (a *AssumptionSet) IsEventDriven() bool {
	return a != nil && a.Event != nil
}

// Clone returns a deep, structurally independent copy of the assumption set.
func (a *AssumptionSet) Clone() *AssumptionSet {
	if a == nil {
		return nil
	}
	out := *a

	if a.RevenueStreams != nil {
		out.RevenueStreams = make([]RevenueAssumption, len(a.RevenueStreams))
		copy(out.RevenueStreams, a.RevenueStreams)
	}
	if a.Costs != nil {
		out.Costs = make([]CostAssumption, len(a.Costs))
		copy(out.Costs, a.Costs)
	}
	if a.Growth != nil {
		g := *a.Growth
		if a.Growth.SeasonalFactors != nil {
			g.SeasonalFactors = make([]float64, len(a.Growth.SeasonalFactors))
			copy(g.SeasonalFactors, a.Growth.SeasonalFactors)
		}
		g.IndividualRates = cloneRateMap(a.Growth.IndividualRates)
		out.Growth = &g
	}
	if a.Event != nil {
		ev := *a.Event
		ev.Growth.SpendGrowthPercents = cloneRateMap(a.Event.Growth.SpendGrowthPercents)
		out.Event = &ev
	}
	if a.Marketing != nil {
		m := *a.Marketing
		if a.Marketing.Channels != nil {
			m.Channels = make([]MarketingChannel, len(a.Marketing.Channels))
			copy(m.Channels, a.Marketing.Channels)
		}
		out.Marketing = &m
	}
	return &out
}

func cloneRateMap(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// =============================================================================
// ACTUALS
// =============================================================================

// ActualsEntry is one recorded real-world result for a single period.
// Periods without an entry are "not yet actualized". Attendance is a pointer
// because a recorded zero must stay distinguishable from "not tracked".
type ActualsEntry struct {
	ProjectID  string   `json:"project_id"`
	Period     int      `json:"period"`
	Revenue    float64  `json:"revenue"`
	Cost       float64  `json:"cost"`
	Profit     float64  `json:"profit"`
	Attendance *float64 `json:"attendance,omitempty"`
}
