// Package forecast turns a declarative assumption set into a period-indexed
// forecast: per-period revenue by stream, cost by category, profit and
// running cumulative totals. Every function is a pure transform; callers
// recompute from the full assumption set on every edit.
package forecast

import (
	"math"

	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
)

// Factor returns the compounding multiplier to apply to a base quantity at
// the given period index.
//
//	linear:      1 + rate*p
//	exponential: (1+rate)^p
//	seasonal:    factors[p mod len(factors)]
//
// Period 0 always yields 1 for linear/exponential: the first period is the
// unscaled baseline. If spec.IndividualRates carries an entry for streamKey,
// that rate replaces the blanket rate for this stream only; the compounding
// rule still follows spec.Kind. A nil spec means no scaling.
func Factor(spec *model.GrowthSpec, period int, streamKey string) float64 {
	if spec == nil {
		return 1
	}

	rate := spec.Rate
	if streamKey != "" {
		if r, ok := spec.IndividualRates[streamKey]; ok {
			rate = r
		}
	}

	switch spec.Kind {
	case model.GrowthExponential:
		return math.Pow(1+rate, float64(period))
	case model.GrowthSeasonal:
		// Empty factors are rejected at normalization; guard anyway.
		if len(spec.SeasonalFactors) == 0 {
			return 1
		}
		return spec.SeasonalFactors[period%len(spec.SeasonalFactors)]
	case model.GrowthLinear:
		return 1 + rate*float64(period)
	default:
		return 1 + rate*float64(period)
	}
}
