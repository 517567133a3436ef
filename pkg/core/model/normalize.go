package model

// Normalize produces a fully-populated copy of an assumption set so that
// downstream computation never re-checks for absent fields. Missing optional
// data gets a neutral default (no growth model -> linear rate 0, no duration
// -> 1 period): partial entry is the normal editing state, so the engine
// fails open to an unscaled baseline. Genuinely unusable models are a
// different matter and come back as a ConfigurationError.
func Normalize(a *AssumptionSet) (*AssumptionSet, error) {
	if a == nil {
		return nil, &PreconditionError{Reason: "assumption set is nil"}
	}

	out := a.Clone()

	if out.DurationPeriods == 0 && out.Event != nil {
		out.DurationPeriods = out.Event.WeeksDuration
	}
	if out.DurationPeriods == 0 {
		out.DurationPeriods = 1
	}
	if out.DurationPeriods < 0 {
		return nil, &ConfigurationError{
			Field:  "duration_periods",
			Reason: "must be positive",
		}
	}

	if out.Growth == nil {
		out.Growth = &GrowthSpec{Kind: GrowthLinear, Rate: 0}
	}
	if out.Growth.Kind == "" {
		out.Growth.Kind = GrowthLinear
	}
	if out.Growth.Kind == GrowthSeasonal && len(out.Growth.SeasonalFactors) == 0 {
		return nil, &ConfigurationError{
			Field:  "growth.seasonal_factors",
			Reason: "seasonal growth requires at least one factor",
		}
	}

	if out.Marketing == nil {
		out.Marketing = &MarketingPlan{AllocationMode: AllocationNone}
	}
	if out.Marketing.AllocationMode == "" {
		out.Marketing.AllocationMode = AllocationNone
	}

	return out, nil
}
