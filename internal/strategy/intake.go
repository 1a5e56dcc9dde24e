package strategy

import "github.com/savanna-sim/megafauna/internal/forage"

// IntakeRateHollingII returns a mass-rate ceiling (kgDM/day) for one forage
// type from a Holling type II functional response:
// I = I_max * V / (V_half + V), where V is forage density.
func IntakeRateHollingII(iMax, vHalf, v float64) float64 {
	if v <= 0 {
		return 0
	}
	return iMax * v / (vHalf + v)
}

// IntakeCeiling composes the digestive-limit ceiling (already expressed as
// mass, per forage type) with a Holling type II functional-response
// ceiling driven by the habitat's per-type forage density, via elementwise
// minimum, per spec.md §4.2/§4.3.
func IntakeCeiling(digestiveLimitMass forage.Vector, iMax, vHalf float64, density forage.Vector) forage.Vector {
	var functionalResponse forage.Vector
	for t := forage.Grass; int(t) < len(density); t++ {
		functionalResponse = functionalResponse.Set(t, IntakeRateHollingII(iMax, vHalf, density.Get(t)))
	}
	return digestiveLimitMass.Min(functionalResponse)
}
