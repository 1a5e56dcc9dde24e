package strategy

import (
	"fmt"
	"math"

	"github.com/savanna-sim/megafauna/internal/forage"
)

// DigestiveLimitModel selects the per-individual maximum daily
// metabolizable intake algorithm.
type DigestiveLimitModel uint8

const (
	IlliusGordon1992 DigestiveLimitModel = iota
	Allometric
	FixedFraction
	NoDigestiveLimit
)

func (m DigestiveLimitModel) String() string {
	switch m {
	case IlliusGordon1992:
		return "IlliusGordon1992"
	case Allometric:
		return "Allometric"
	case FixedFraction:
		return "FixedFraction"
	case NoDigestiveLimit:
		return "None"
	default:
		return "Unknown"
	}
}

// ValidDigestiveLimitModels lists valid model names for config errors.
func ValidDigestiveLimitModels() []string {
	return []string{"IlliusGordon1992", "Allometric", "FixedFraction", "None"}
}

// illiusGordonCoeffs holds (i, j, k) keyed by digestion type, per Illius &
// Gordon 1992.
var illiusGordonCoeffs = map[DigestionType][3]float64{
	Ruminant: {0.034, 3.565, 0.077},
	Hindgut:  {0.108, 3.284, 0.080},
}

// DigestiveLimitParams bundles the parameters every digestive-limit model
// needs; not every model uses every field.
type DigestiveLimitParams struct {
	Model            DigestiveLimitModel
	Digestion        DigestionType
	BodyMassKg       float64
	AdultBodyMassKg  float64
	Digestibility    forage.Vector // per forage type
	AllometricCoeff  float64
	AllometricExp    float64
	FixedFractionVal float64
}

// DigestiveLimit returns the maximum daily intake as dry-matter mass
// (kgDM/day) per forage type, currently only grass populated (spec.md §4.2).
// Callers convert it to energy by multiplying with net energy content.
func DigestiveLimit(p DigestiveLimitParams) (forage.Vector, error) {
	switch p.Model {
	case IlliusGordon1992:
		return illiusGordonLimit(p)
	case Allometric:
		v := p.AllometricCoeff * math.Pow(p.BodyMassKg, p.AllometricExp)
		return forage.New(map[forage.Type]float64{forage.Grass: v}), nil
	case FixedFraction:
		return forage.New(map[forage.Type]float64{forage.Grass: p.FixedFractionVal * p.BodyMassKg}), nil
	case NoDigestiveLimit:
		return forage.New(map[forage.Type]float64{forage.Grass: math.Inf(1)}), nil
	default:
		return forage.Vector{}, fmt.Errorf("strategy: unknown digestive limit model %d", p.Model)
	}
}

func illiusGordonLimit(p DigestiveLimitParams) (forage.Vector, error) {
	coeffs, ok := illiusGordonCoeffs[p.Digestion]
	if !ok {
		return forage.Vector{}, fmt.Errorf("strategy: no Illius-Gordon coefficients for digestion type %s", p.Digestion)
	}
	i, j, k := coeffs[0], coeffs[1], coeffs[2]
	d := p.Digestibility.Get(forage.Grass)
	if p.AdultBodyMassKg <= 0 {
		return forage.Vector{}, fmt.Errorf("strategy: adult body mass must be positive")
	}

	limit := i * math.Exp(j*d) *
		math.Pow(p.AdultBodyMassKg, k*math.Exp(d)+0.73) *
		math.Pow(p.BodyMassKg/p.AdultBodyMassKg, 0.75)

	return forage.New(map[forage.Type]float64{forage.Grass: limit}), nil
}
