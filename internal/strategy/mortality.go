package strategy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MortalityFactor is one independently-applied, additively-summed source
// of daily mortality (spec.md §4.2). Rates are clamped to [0,1] by the
// caller after summing.
type MortalityFactor uint8

const (
	Background MortalityFactor = iota
	Lifespan
	StarvationThreshold
	StarvationIlliusOConnor2000
)

func (f MortalityFactor) String() string {
	switch f {
	case Background:
		return "Background"
	case Lifespan:
		return "Lifespan"
	case StarvationThreshold:
		return "StarvationThreshold"
	case StarvationIlliusOConnor2000:
		return "StarvationIlliusOConnor2000"
	default:
		return "Unknown"
	}
}

// ValidMortalityFactors lists valid factor names for config errors.
func ValidMortalityFactors() []string {
	return []string{"Background", "Lifespan", "StarvationThreshold", "StarvationIlliusOConnor2000"}
}

// StarvationCriticalFraction is the body-fat fraction of body mass below
// which StarvationThreshold mortality applies (spec.md §4.2 example: 0.2%).
const StarvationCriticalFraction = 0.002

// MortalityParams bundles the inputs any mortality factor might need.
type MortalityParams struct {
	Factors map[MortalityFactor]bool

	AgeDays          int
	IsJuvenile       bool
	AnnualJuvenile   float64 // annual background mortality rate, juveniles
	AnnualAdult      float64 // annual background mortality rate, adults
	LifespanYears    float64

	BodyFatKg          float64
	BodyMassKg         float64
	BodyCondition      float64 // fat_mass / max_fat_mass
	BodyConditionStdev float64 // internal/herbivore passes 0 for juveniles
	CriticalCondition  float64 // threshold body condition for starvation

	// ShiftBodyConditionForStarvation, when true, asks the caller to
	// raise the surviving cohort's mean body condition upward after a
	// StarvationIlliusOConnor2000 die-off (the lowest-condition tail
	// died). This package only reports the flag; internal/herbivore
	// performs the shift via energybudget.ForceBodyCondition.
	ShiftBodyConditionForStarvation bool
}

// Result is the outcome of evaluating all selected mortality factors for
// one herbivore on one day.
type Result struct {
	TotalRate            float64                     // sum of factor rates, clamped to [0,1]
	PerFactor            map[MortalityFactor]float64 // each factor's own rate, unclamped
	ShiftBodyCondition   bool                         // true if StarvationIlliusOConnor2000 fired and shift is enabled
	NewMeanBodyCondition float64                      // valid only if ShiftBodyCondition
}

// Mortality sums every selected factor's daily rate and clamps to [0,1].
func Mortality(p MortalityParams) (Result, error) {
	var total float64
	res := Result{PerFactor: make(map[MortalityFactor]float64, len(p.Factors))}

	for factor, selected := range p.Factors {
		if !selected {
			continue
		}
		switch factor {
		case Background:
			rate := backgroundRate(p)
			res.PerFactor[factor] = rate
			total += rate
		case Lifespan:
			rate := lifespanRate(p)
			res.PerFactor[factor] = rate
			total += rate
		case StarvationThreshold:
			rate := starvationThresholdRate(p)
			res.PerFactor[factor] = rate
			total += rate
		case StarvationIlliusOConnor2000:
			rate, shiftedCondition := starvationIOCRate(p)
			res.PerFactor[factor] = rate
			total += rate
			if rate > 0 && p.ShiftBodyConditionForStarvation {
				res.ShiftBodyCondition = true
				res.NewMeanBodyCondition = shiftedCondition
			}
		default:
			return Result{}, fmt.Errorf("strategy: unknown mortality factor %d", factor)
		}
	}

	if total < 0 {
		total = 0
	}
	if total > 1 {
		total = 1
	}
	res.TotalRate = total
	return res, nil
}

func backgroundRate(p MortalityParams) float64 {
	annual := p.AnnualAdult
	if p.IsJuvenile {
		annual = p.AnnualJuvenile
	}
	return annualToDaily(annual)
}

func annualToDaily(annualRate float64) float64 {
	if annualRate <= 0 {
		return 0
	}
	if annualRate >= 1 {
		return 1
	}
	// Daily rate d such that (1-d)^365 = 1-annualRate.
	return 1 - math.Pow(1-annualRate, 1.0/365.0)
}

func lifespanRate(p MortalityParams) float64 {
	if float64(p.AgeDays) >= p.LifespanYears*365 {
		return 1
	}
	return 0
}

func starvationThresholdRate(p MortalityParams) float64 {
	if p.BodyMassKg <= 0 {
		return 0
	}
	if p.BodyFatKg/p.BodyMassKg < StarvationCriticalFraction {
		return 1
	}
	return 0
}

// starvationIOCRate integrates a normal distribution of body condition
// (mean = BodyCondition, stdev = BodyConditionStdev) below
// CriticalCondition, per the Illius–O'Connor 2000 starvation model. When
// stdev is 0 (typical for juveniles), it degenerates to a step function.
// Returns the mortality rate and, if any mass died, the new mean body
// condition of survivors (mass shifted upward since the low tail died).
func starvationIOCRate(p MortalityParams) (rate float64, newMean float64) {
	if p.BodyConditionStdev <= 0 {
		if p.BodyCondition < p.CriticalCondition {
			return 1, p.BodyCondition
		}
		return 0, p.BodyCondition
	}

	dist := distuv.Normal{Mu: p.BodyCondition, Sigma: p.BodyConditionStdev}
	rate = dist.CDF(p.CriticalCondition)
	if rate <= 0 {
		return 0, p.BodyCondition
	}
	if rate >= 1 {
		return 1, p.BodyCondition
	}

	// Mean of survivors: a left-truncated normal above CriticalCondition.
	// E[X | X > a] = mu + sigma * phi(alpha) / (1 - Phi(alpha)), where
	// phi is the standard normal density and alpha = (a - mu) / sigma.
	alpha := (p.CriticalCondition - p.BodyCondition) / p.BodyConditionStdev
	standardNormal := distuv.Normal{Mu: 0, Sigma: 1}
	survivorMean := p.BodyCondition + p.BodyConditionStdev*standardNormal.Prob(alpha)/(1-rate)
	if survivorMean > 1 {
		survivorMean = 1
	}
	return rate, survivorMean
}
