package herbivore

import (
	"math"

	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/savanna-sim/megafauna/internal/strategy"
)

var posInf = math.Inf(1)

// GetForageDemands computes this herbivore's offered-demand for the
// current day: population-level mass per forage type, memoized so
// repeated calls within the same day return the identical value
// (spec.md §4.3).
func (h *Herbivore) GetForageDemands(available forage.HabitatForage) (forage.Vector, error) {
	if h.demandValid {
		return h.demand, nil
	}
	if h.IsDead() {
		return forage.Vector{}, &PreconditionError{"get_forage_demands called on a dead herbivore"}
	}

	ceiling, err := h.perIndividualCeiling(available)
	if err != nil {
		return forage.Vector{}, err
	}

	netEnergy, err := strategy.NetEnergyContent(h.hft.Foraging.NetEnergyModel, h.digestionType(), available.Digestibility)
	if err != nil {
		return forage.Vector{}, err
	}
	h.today.EnergyContent = netEnergy

	ceilingEnergy := ceiling.Mul(netEnergy)

	totalEnergyNeed := h.budget.EnergyNeeds() + h.budget.MaxAnabolismToday()
	dietEnergy, err := strategy.ComposeDiet(h.hft.Foraging.DietComposer, totalEnergyNeed, ceilingEnergy)
	if err != nil {
		return forage.Vector{}, err
	}

	dietMassPerInd, err := dietEnergy.DivideSafely(netEnergy)
	if err != nil {
		return forage.Vector{}, err
	}

	demand := dietMassPerInd.Scale(h.Density())
	h.demand = demand
	h.demandValid = true
	return demand, nil
}

// perIndividualCeiling composes every active foraging limit via
// elementwise minimum (spec.md §4.2/§4.3 step 1).
func (h *Herbivore) perIndividualCeiling(available forage.HabitatForage) (forage.Vector, error) {
	limits := h.hft.ForagingLimits()

	var ceiling forage.Vector
	haveCeiling := false

	if limits[strategy.DigestiveLimitActive] {
		digestive, err := strategy.DigestiveLimit(strategy.DigestiveLimitParams{
			Model:            h.hft.Digestion.Limit,
			Digestion:        h.digestionType(),
			BodyMassKg:       h.BodyMass(),
			AdultBodyMassKg:  h.adultBodyMass(),
			Digestibility:    available.Digestibility,
			AllometricCoeff:  h.hft.Digestion.AllometricCoeff,
			AllometricExp:    h.hft.Digestion.AllometricExp,
			FixedFractionVal: h.hft.Digestion.FixedFraction,
		})
		if err != nil {
			return forage.Vector{}, err
		}
		ceiling = digestive
		haveCeiling = true
	}

	if limits[strategy.IntakeRateLimitActive] {
		functional := strategy.IntakeCeiling(unboundedIfEmpty(ceiling, haveCeiling), h.hft.Foraging.IntakeRateMaxKg, h.hft.Foraging.HalfSaturationDensity, available.Mass)
		ceiling = functional
		haveCeiling = true
	}

	if !haveCeiling {
		return forage.Vector{}, &PreconditionError{"no foraging limit active"}
	}
	return ceiling, nil
}

// unboundedIfEmpty returns an all-+Inf vector when no ceiling has been
// computed yet, so IntakeCeiling's elementwise minimum degrades to "just
// the functional-response limit" rather than zeroing everything out.
func unboundedIfEmpty(v forage.Vector, have bool) forage.Vector {
	if have {
		return v
	}
	var inf forage.Vector
	for t := forage.Grass; int(t) < len(inf); t++ {
		inf = inf.Set(t, posInf)
	}
	return inf
}
