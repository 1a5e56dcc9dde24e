package herbivore

import (
	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/savanna-sim/megafauna/internal/strategy"
)

// Output is one herbivore's per-day snapshot (spec.md §3's
// HerbivoreData, before cross-cohort aggregation into a per-HFT record —
// internal/output does that merge). Reset at the start of every
// simulate_day and filled in by simulate_day and eat.
type Output struct {
	Density       float64 // individuals/km²
	MassDensity   float64 // kg body mass/km²
	BodyFat       float64 // body condition, fat_mass/max_fat_mass
	AgeYears      float64
	Expenditure   float64 // MJ/day
	Offspring     float64 // offspring density produced today
	BoundNitrogen float64 // kg/km², currently in transit

	EatenForagePerInd  forage.Vector // kgDM/individual
	EatenForagePerMass forage.Vector // kgDM/kg body mass
	EnergyIntakePerInd forage.Vector // MJ/individual
	EnergyIntakePerMass forage.Vector // MJ/kg body mass
	EnergyContent      forage.Vector // MJ/kgDM, today's snapshot

	Mortality map[strategy.MortalityFactor]float64
}

// Today returns the current day's accumulated output snapshot.
func (h *Herbivore) Today() Output {
	return h.today
}

func (h *Herbivore) resetToday() {
	h.today = Output{
		Density:       h.Density(),
		MassDensity:   h.Density() * h.BodyMass(),
		BodyFat:       h.BodyCondition(),
		AgeYears:      h.AgeYears(),
		BoundNitrogen: h.nitrogen.Bound(),
		Mortality:     make(map[strategy.MortalityFactor]float64),
	}
	h.demandValid = false
}
