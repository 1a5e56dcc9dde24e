package strategy

import (
	"fmt"

	"github.com/savanna-sim/megafauna/internal/forage"
)

// DietComposer selects how a herbivore routes its total energy demand
// across forage types.
type DietComposer uint8

const (
	PureGrazer DietComposer = iota
)

func (c DietComposer) String() string {
	if c == PureGrazer {
		return "PureGrazer"
	}
	return "Unknown"
}

// ValidDietComposers lists valid composer names for config errors.
func ValidDietComposers() []string {
	return []string{"PureGrazer"}
}

// ComposeDiet routes totalEnergyNeedMJ across forage types given each
// type's per-individual energy ceiling (mass ceiling * net energy
// content). PureGrazer allocates all demand to grass up to its ceiling;
// every other forage type receives zero (spec.md §4.2).
func ComposeDiet(composer DietComposer, totalEnergyNeedMJ float64, ceilingEnergy forage.Vector) (forage.Vector, error) {
	switch composer {
	case PureGrazer:
		grassCeiling := ceilingEnergy.Get(forage.Grass)
		allocated := totalEnergyNeedMJ
		if allocated > grassCeiling {
			allocated = grassCeiling
		}
		if allocated < 0 {
			allocated = 0
		}
		return forage.New(map[forage.Type]float64{forage.Grass: allocated}), nil
	default:
		return forage.Vector{}, fmt.Errorf("strategy: unknown diet composer %d", composer)
	}
}
