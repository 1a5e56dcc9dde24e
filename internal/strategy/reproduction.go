package strategy

import (
	"fmt"
	"math"
)

// ReproductionModel selects the offspring-density algorithm.
type ReproductionModel uint8

const (
	IlliusOConnor2000 ReproductionModel = iota
	ConstantMaximum
	Linear
	NoReproduction
)

func (m ReproductionModel) String() string {
	switch m {
	case IlliusOConnor2000:
		return "IlliusOConnor2000"
	case ConstantMaximum:
		return "ConstantMaximum"
	case Linear:
		return "Linear"
	case NoReproduction:
		return "None"
	default:
		return "Unknown"
	}
}

// ValidReproductionModels lists valid model names for config errors.
func ValidReproductionModels() []string {
	return []string{"IlliusOConnor2000", "ConstantMaximum", "Linear", "None"}
}

// ForcesNoJuvenilePhase reports whether this model forces
// physical_maturity = 1 (spec.md §4.2: the None model has no juveniles).
func (m ReproductionModel) ForcesNoJuvenilePhase() bool {
	return m == NoReproduction
}

// BreedingSeason is a start-day/length window that wraps around the
// 365-day year.
type BreedingSeason struct {
	StartDay int // 0-364
	Length   int // days
}

// Contains reports whether dayOfYear falls within the season, handling
// year wraparound.
func (s BreedingSeason) Contains(dayOfYear int) bool {
	if s.Length <= 0 {
		return false
	}
	offset := ((dayOfYear-s.StartDay)%365 + 365) % 365
	return offset < s.Length
}

// ReproductionParams bundles the inputs to an offspring-density
// calculation for one female cohort/individual on one day.
type ReproductionParams struct {
	Model         ReproductionModel
	Season        BreedingSeason
	DayOfYear     int
	AnnualMax     float64 // offspring per individual per year at optimal condition
	BodyCondition float64 // average over the last gestation window, [0,1]
}

// OffspringDensity returns the day's offspring density per individual
// (i.e. multiply by individuals_per_km² to get the cohort's newborns).
// Zero outside the breeding season or for non-reproductive models.
func OffspringDensity(p ReproductionParams) (float64, error) {
	if p.Model == NoReproduction {
		return 0, nil
	}
	if !p.Season.Contains(p.DayOfYear) {
		return 0, nil
	}
	if p.Season.Length <= 0 {
		return 0, fmt.Errorf("strategy: breeding season length must be positive")
	}

	switch p.Model {
	case IlliusOConnor2000:
		return illiusOConnorOffspring(p), nil
	case ConstantMaximum:
		return p.AnnualMax / float64(p.Season.Length), nil
	case Linear:
		return p.AnnualMax / float64(p.Season.Length) * p.BodyCondition, nil
	default:
		return 0, fmt.Errorf("strategy: unknown reproduction model %d", p.Model)
	}
}

// illiusOConnorOffspring implements offspring density per day =
// annual_max / (1 + exp(-15*(C-0.3))) normalized across the breeding
// season so daily outputs sum to annual_max under optimal condition
// (C=1), per spec.md §4.2.
func illiusOConnorOffspring(p ReproductionParams) float64 {
	shape := func(c float64) float64 {
		return 1.0 / (1.0 + math.Exp(-15*(c-0.3)))
	}
	// Normalize by the shape value at optimal condition (C=1) so that a
	// season held at C=1.0 for its whole length integrates to annual_max
	// (spec.md's S3 scenario).
	normalization := shape(1.0) * float64(p.Season.Length)
	if normalization == 0 {
		return 0
	}
	return p.AnnualMax * shape(p.BodyCondition) / normalization
}
