// Package hft defines the Herbivore Functional Type configuration record
// (spec.md §3), together with TOML instruction-file decoding, group
// inheritance, and validation (spec.md §6).
package hft

import "github.com/savanna-sim/megafauna/internal/strategy"

// AgeRange is an inclusive [Min, Max] age window in years, used for
// establishment.
type AgeRange struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

// BodyMass holds body-mass parameters for both sexes and the juvenile
// phase.
type BodyMass struct {
	Birth          int     `toml:"birth"`
	AdultMale      int     `toml:"male"`
	AdultFemale    int     `toml:"female"`
	EmptyFraction  float64 `toml:"empty_fraction"`
}

// BodyFat holds fat-fraction parameters.
type BodyFat struct {
	Birth           float64 `toml:"birth"`
	Maximum         float64 `toml:"maximum"`
	MaxDailyGainKg  float64 `toml:"max_daily_gain"`
}

// LifeHistory holds aging and maturity parameters.
type LifeHistory struct {
	LifespanYears          float64 `toml:"lifespan"`
	SexualMaturityYears    float64 `toml:"sexual_maturity"`
	PhysicalMaturityMale   float64 `toml:"physical_maturity_male"`
	PhysicalMaturityFemale float64 `toml:"physical_maturity_female"`
}

// Reproduction holds reproduction-model parameters.
type Reproduction struct {
	Model             strategy.ReproductionModel `toml:"-"`
	ModelName         string                     `toml:"model"`
	AnnualMaximum     float64                    `toml:"annual_maximum"`
	GestationMonths   int                        `toml:"gestation_months"`
	BreedingStartDay  int                        `toml:"breeding_season_start"`
	BreedingLengthDay int                        `toml:"breeding_season_length"`
}

// Mortality holds mortality-factor selection and parameters.
type Mortality struct {
	Factors               map[string]bool `toml:"factors"`
	BackgroundJuvenile    float64         `toml:"background_juvenile"`
	BackgroundAdult       float64         `toml:"background_adult"`
	BodyfatDeviation      float64         `toml:"bodyfat_deviation"`
	ShiftBodyCondition    bool            `toml:"shift_body_condition_for_starvation"`
	CriticalBodyCondition float64         `toml:"critical_body_condition"`

	resolvedFactors map[strategy.MortalityFactor]bool
}

// Digestion holds digestive-physiology parameters.
type Digestion struct {
	TypeName        string                      `toml:"type"`
	Type            strategy.DigestionType      `toml:"-"`
	LimitName       string                      `toml:"limit"`
	Limit           strategy.DigestiveLimitModel `toml:"-"`
	AllometricCoeff float64                     `toml:"allometric_coefficient"`
	AllometricExp   float64                     `toml:"allometric_exponent"`
	FixedFraction   float64                     `toml:"fixed_fraction"`
}

// Foraging holds foraging-limit and intake-rate parameters.
type Foraging struct {
	Limits                map[string]bool         `toml:"limits"`
	HalfSaturationDensity  float64                 `toml:"half_saturation_density"`
	IntakeRateMaxKg        float64                 `toml:"intake_rate_max"`
	DietComposerName       string                  `toml:"diet_composer"`
	DietComposer           strategy.DietComposer   `toml:"-"`
	NetEnergyModelName     string                  `toml:"net_energy_model"`
	NetEnergyModel         strategy.NetEnergyModel `toml:"-"`
	ForageNitrogenRatio    float64                 `toml:"forage_nitrogen_ratio"`

	resolvedLimits map[strategy.ForagingLimit]bool
}

// Expenditure holds expenditure-component parameters.
type Expenditure struct {
	ComponentNames    []string `toml:"components"`
	Components        map[strategy.ExpenditureComponent]bool `toml:"-"`
	AllometricCoeff   float64  `toml:"allometric_coefficient"`
	AllometricExp     float64  `toml:"allometric_exponent"`
	ConductanceName   string   `toml:"thermoregulation_conductance"`
	Conductance       strategy.ConductanceModel `toml:"-"`
	ConductanceCoeff  float64  `toml:"thermoregulation_conductance_coefficient"`
	ThermoneutralRate float64  `toml:"thermoneutral_rate"`
	CoreTemperatureC  float64  `toml:"core_body_temperature"`
}

// Establishment holds establishment parameters.
type Establishment struct {
	Density float64  `toml:"density"`
	AgeRange AgeRange `toml:"age_range"`
}

// HFT is the immutable, validated configuration for one herbivore
// functional type (spec.md §3). Once Validate succeeds, an HFT is shared
// by reference across every population of that type (spec.md §5).
type HFT struct {
	Name        string   `toml:"name"`
	Groups      []string `toml:"groups"`

	BodyMass      BodyMass      `toml:"body_mass"`
	BodyFat       BodyFat       `toml:"body_fat"`
	LifeHistory   LifeHistory   `toml:"life_history"`
	Reproduction  Reproduction  `toml:"reproduction"`
	Mortality     Mortality     `toml:"mortality"`
	Digestion     Digestion     `toml:"digestion"`
	Foraging      Foraging      `toml:"foraging"`
	Expenditure   Expenditure   `toml:"expenditure"`
	Establishment Establishment `toml:"establishment"`

	MinimumDensityThreshold float64 `toml:"minimum_density_threshold"`
}

// MortalityFactors returns the resolved factor-selection map, populated by
// Validate.
func (h *HFT) MortalityFactors() map[strategy.MortalityFactor]bool {
	return h.Mortality.resolvedFactors
}

// ForagingLimits returns the resolved limit-selection map, populated by
// Validate. Without a foraging.limits table both limits are active; with
// one, only the limits set to true there are active.
func (h *HFT) ForagingLimits() map[strategy.ForagingLimit]bool {
	return h.Foraging.resolvedLimits
}
