// Package distribute implements the forage distributor (spec.md §4.5):
// given every cohort's demand and the habitat's available forage, compute
// a feasible per-cohort allocation that never exceeds either the
// cohort's own demand or the total available mass.
package distribute

import "github.com/savanna-sim/megafauna/internal/forage"

// Demand is one cohort's offered-demand for the day, tagged by an opaque
// key the caller uses to look its allocation back up (the caller owns
// cohort identity; this package only does the arithmetic).
type Demand struct {
	Key  any
	Mass forage.Vector
}

// Result maps each demand's key to its allocated mass.
type Result struct {
	Allocations map[any]forage.Vector
	Total       forage.Vector
}

// Equally distributes available forage across every demand proportional
// to scarcity, per forage type independently (spec.md §4.5):
//   - if total demand <= available, every cohort gets its full demand.
//   - otherwise every cohort's demand is scaled by available/demand.
//
// The sum invariant Σallocated = min(available, Σdemand) holds per type,
// and no cohort is ever allocated more than its own demand or more than
// is available.
func Equally(available forage.Vector, demands []Demand) Result {
	var totalDemand forage.Vector
	for _, d := range demands {
		totalDemand = totalDemand.Add(d.Mass)
	}

	scale := scarcityScale(totalDemand, available)

	result := Result{Allocations: make(map[any]forage.Vector, len(demands))}
	for _, d := range demands {
		allocated := d.Mass.Mul(scale)
		result.Allocations[d.Key] = allocated
		result.Total = result.Total.Add(allocated)
	}
	return result
}

// scarcityScale returns, per forage type, min(1, available/demand) — the
// factor Equally multiplies every demand by. Zero demand always satisfies
// demand <= available and scales to 1, with no effect since the
// corresponding demand is itself 0.
func scarcityScale(totalDemand, available forage.Vector) forage.Vector {
	var scale forage.Vector
	for t := forage.Grass; int(t) < len(scale); t++ {
		d := totalDemand.Get(t)
		a := available.Get(t)
		if d <= a {
			scale = scale.Set(t, 1)
			continue
		}
		if d == 0 {
			scale = scale.Set(t, 0)
			continue
		}
		scale = scale.Set(t, a/d)
	}
	return scale
}
