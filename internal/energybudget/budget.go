// Package energybudget implements the per-individual fat-mass energy
// accounting described in spec.md §4.1: needs accrue, fat catabolizes to
// cover them, surplus intake anabolizes into fat up to a daily and an
// absolute cap.
package energybudget

import "fmt"

// Catabolism and anabolism efficiencies, MJ per kg fat. Catabolism is more
// efficient than anabolism: converting stored fat back to usable energy
// loses less to heat than laying new fat down does. CatabolismEfficiency
// is the energy one kg of burned fat yields; AnabolismEfficiency is the
// energy it costs to lay down one kg of fat.
const (
	EnergyPerKgFat        = 39.3
	CatabolismEfficiency  = EnergyPerKgFat * 0.8
	AnabolismEfficiency   = EnergyPerKgFat / 0.75
)

// Budget tracks one herbivore's fat mass and today's energy accounting.
type Budget struct {
	fatMass           float64
	maxFatMass        float64
	energyNeeds       float64
	maxAnabolismToday float64
}

// New constructs a Budget with an initial fat mass and cap.
func New(fatMass, maxFatMass float64) (*Budget, error) {
	if fatMass < 0 || fatMass > maxFatMass {
		return nil, fmt.Errorf("energybudget: initial fat mass %.4f out of [0, %.4f]", fatMass, maxFatMass)
	}
	return &Budget{fatMass: fatMass, maxFatMass: maxFatMass}, nil
}

// FatMass returns current fat mass, kg.
func (b *Budget) FatMass() float64 { return b.fatMass }

// MaxFatMass returns the current cap, kg.
func (b *Budget) MaxFatMass() float64 { return b.maxFatMass }

// EnergyNeeds returns today's unmet energy needs, MJ.
func (b *Budget) EnergyNeeds() float64 { return b.energyNeeds }

// MaxAnabolismToday returns today's anabolism cap, MJ.
func (b *Budget) MaxAnabolismToday() float64 { return b.maxAnabolismToday }

// BodyCondition returns fat_mass / max_fat_mass, the dimensionless body
// condition ratio used by reproduction and starvation mortality. Returns 0
// when max fat mass is 0 (an HFT misconfiguration guarded elsewhere).
func (b *Budget) BodyCondition() float64 {
	if b.maxFatMass == 0 {
		return 0
	}
	return b.fatMass / b.maxFatMass
}

// SetMaxFatmass updates the cap and today's daily anabolism allowance.
// Fails if current fat mass would exceed the new cap.
func (b *Budget) SetMaxFatmass(max, maxDailyGainKg float64) error {
	if b.fatMass > max {
		return fmt.Errorf("energybudget: fat mass %.4f exceeds new max %.4f", b.fatMass, max)
	}
	b.maxFatMass = max
	b.maxAnabolismToday = maxDailyGainKg * EnergyPerKgFat
	return nil
}

// AddEnergyNeeds accumulates today's expenditure into unmet needs.
func (b *Budget) AddEnergyNeeds(mj float64) {
	b.energyNeeds += mj
}

// CatabolizeFat converts fat to energy to cover unmet needs, at
// CatabolismEfficiency, clamped to available fat.
func (b *Budget) CatabolizeFat() {
	if b.energyNeeds <= 0 || b.fatMass <= 0 {
		return
	}
	fatNeeded := b.energyNeeds / CatabolismEfficiency
	if fatNeeded > b.fatMass {
		fatNeeded = b.fatMass
	}
	b.fatMass -= fatNeeded
	b.energyNeeds -= fatNeeded * CatabolismEfficiency
	if b.energyNeeds < 0 {
		b.energyNeeds = 0
	}
}

// MetabolizeEnergy applies mj of ingested energy: first pays down unmet
// needs, then anabolizes any surplus into fat, capped by MaxAnabolismToday
// and by MaxFatMass.
func (b *Budget) MetabolizeEnergy(mj float64) {
	if mj <= 0 {
		return
	}
	if b.energyNeeds > 0 {
		paid := mj
		if paid > b.energyNeeds {
			paid = b.energyNeeds
		}
		b.energyNeeds -= paid
		mj -= paid
	}
	if mj <= 0 {
		return
	}

	fatGain := mj / AnabolismEfficiency
	maxGainByDailyCap := b.maxAnabolismToday / AnabolismEfficiency
	if fatGain > maxGainByDailyCap {
		fatGain = maxGainByDailyCap
	}
	if b.fatMass+fatGain > b.maxFatMass {
		fatGain = b.maxFatMass - b.fatMass
	}
	if fatGain > 0 {
		b.fatMass += fatGain
		b.maxAnabolismToday -= fatGain * AnabolismEfficiency
		if b.maxAnabolismToday < 0 {
			b.maxAnabolismToday = 0
		}
	}
}

// ForceBodyCondition sets fat mass directly from a new body-condition
// ratio, used by the Illius–O'Connor starvation model to redistribute mass
// after starvation deaths shift the cohort's mean condition upward.
func (b *Budget) ForceBodyCondition(newRatio float64) {
	if newRatio < 0 {
		newRatio = 0
	}
	if newRatio > 1 {
		newRatio = 1
	}
	b.fatMass = newRatio * b.maxFatMass
}

// Merge combines this budget with another via density-weighted averaging,
// used when two mergeable cohorts combine (spec.md §4.4).
func (b *Budget) Merge(other *Budget, weightSelf, weightOther float64) {
	total := weightSelf + weightOther
	if total == 0 {
		return
	}
	b.fatMass = (b.fatMass*weightSelf + other.fatMass*weightOther) / total
	b.maxFatMass = (b.maxFatMass*weightSelf + other.maxFatMass*weightOther) / total
	b.energyNeeds = (b.energyNeeds*weightSelf + other.energyNeeds*weightOther) / total
	b.maxAnabolismToday = (b.maxAnabolismToday*weightSelf + other.maxAnabolismToday*weightOther) / total
}
