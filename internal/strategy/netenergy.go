// Package strategy implements the pluggable, enum-selected algorithm
// families named in spec.md §4.2: net energy content, digestive limits,
// intake rate, expenditure components, thermoregulation, reproduction,
// mortality, and diet composition. Every family is a small enum plus a
// pure function or two — no dynamic dispatch inside the daily loop
// (spec.md §9's design note).
package strategy

import (
	"fmt"

	"github.com/savanna-sim/megafauna/internal/forage"
)

// DigestionType selects an HFT's digestive physiology.
type DigestionType uint8

const (
	Ruminant DigestionType = iota
	Hindgut
)

func (d DigestionType) String() string {
	if d == Ruminant {
		return "Ruminant"
	}
	return "Hindgut"
}

// NetEnergyModel selects the net-energy-content algorithm.
type NetEnergyModel uint8

const (
	NetEnergyDefault NetEnergyModel = iota
)

// NetEnergyContent returns the net energy content (MJ/kgDM) per forage
// type, given each type's digestibility and the HFT's digestion type.
// Grass: ME = digestibility * 15 MJ/kgDM; NE = ME * (0.019*ME + 0.503) * e,
// e = 1.0 for ruminants, 0.93 for hindguts. Inedible is always 0.
func NetEnergyContent(model NetEnergyModel, digestion DigestionType, digestibility forage.Vector) (forage.Vector, error) {
	switch model {
	case NetEnergyDefault:
		return defaultNetEnergyContent(digestion, digestibility)
	default:
		return forage.Vector{}, fmt.Errorf("strategy: unknown net energy model %d", model)
	}
}

func defaultNetEnergyContent(digestion DigestionType, digestibility forage.Vector) (forage.Vector, error) {
	d := digestibility.Get(forage.Grass)
	if d < 0 || d > 1 {
		return forage.Vector{}, fmt.Errorf("strategy: grass digestibility %.4f out of [0,1]", d)
	}

	e := 1.0
	if digestion == Hindgut {
		e = 0.93
	}

	me := d * 15.0
	ne := me * (0.019*me + 0.503) * e

	return forage.New(map[forage.Type]float64{
		forage.Grass:    ne,
		forage.Inedible: 0,
	}), nil
}

// ValidNetEnergyModels lists valid model names for config error messages.
func ValidNetEnergyModels() []string {
	return []string{"Default"}
}
