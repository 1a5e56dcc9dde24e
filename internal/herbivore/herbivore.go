// Package herbivore implements the shared herbivore agent and its two
// concrete variants, cohort and individual (spec.md §9: a common behavior
// struct plus a tagged variant instead of a class hierarchy).
package herbivore

import (
	"github.com/savanna-sim/megafauna/internal/energybudget"
	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/savanna-sim/megafauna/internal/hft"
	"github.com/savanna-sim/megafauna/internal/nitrogen"
	"github.com/savanna-sim/megafauna/internal/strategy"
)

// Sex is fixed at construction and never changes.
type Sex uint8

const (
	Female Sex = iota
	Male
)

func (s Sex) String() string {
	if s == Female {
		return "Female"
	}
	return "Male"
}

// Kind tags which variant a Herbivore is: a Cohort (a density of
// identical individuals) or an Individual (one animal).
type Kind uint8

const (
	CohortKind Kind = iota
	IndividualKind
)

// Herbivore is the shared behavioral core for both variants. Only the
// fields under "variant state" differ in meaning between Cohort and
// Individual; everything else is common state (spec.md §3's "Herbivore
// invariants (both variants)").
type Herbivore struct {
	hft *hft.HFT
	sex Sex

	ageDays int

	budget    *energybudget.Budget
	nitrogen  *nitrogen.Tracker

	// conditionHistory is a circular buffer of body-condition snapshots
	// over the gestation window, female only (nil for males).
	conditionHistory []float64
	historyPos       int
	historyFilled    int

	// variant state.
	kind    Kind
	density float64 // Cohort: individuals_per_km²
	areaKm2 float64 // Individual: habitat area it inhabits
	dead    bool    // Individual: discrete dead flag

	// today is reset at the start of each simulate_day and accumulated by
	// eat/simulate_day; the driver reads it for output aggregation.
	today Output

	// demand is this day's memoized get_forage_demands result.
	demandValid bool
	demand      forage.Vector
}

// NewCohort constructs a cohort of density individuals/km², all at the
// same age and sex, with an initial body condition equal to the HFT's
// birth fat fraction.
func NewCohort(h *hft.HFT, sex Sex, ageDays int, density float64) (*Herbivore, error) {
	if density <= 0 {
		return nil, &PreconditionError{"density must be positive"}
	}
	return newHerbivore(h, sex, ageDays, CohortKind, density, 0)
}

// NewIndividual constructs a single animal inhabiting areaKm2.
func NewIndividual(h *hft.HFT, sex Sex, ageDays int, areaKm2 float64) (*Herbivore, error) {
	if areaKm2 <= 0 {
		return nil, &PreconditionError{"area must be positive"}
	}
	return newHerbivore(h, sex, ageDays, IndividualKind, 0, areaKm2)
}

func newHerbivore(h *hft.HFT, sex Sex, ageDays int, kind Kind, density, areaKm2 float64) (*Herbivore, error) {
	if ageDays < 0 {
		return nil, &PreconditionError{"age_days must be non-negative"}
	}

	herb := &Herbivore{
		hft:     h,
		sex:     sex,
		ageDays: ageDays,
		kind:    kind,
		density: density,
		areaKm2: areaKm2,
	}

	maxFat := herb.maxFatMass()
	initialFat := h.BodyFat.Birth * maxFat
	budget, err := energybudget.New(initialFat, maxFat)
	if err != nil {
		return nil, err
	}
	herb.budget = budget
	if err := herb.budget.SetMaxFatmass(maxFat, h.BodyFat.MaxDailyGainKg); err != nil {
		return nil, err
	}

	herb.nitrogen = nitrogen.New(nitrogen.RetentionDaysForBodyMass(herb.BodyMass()))

	if sex == Female && h.Reproduction.GestationMonths > 0 {
		herb.conditionHistory = make([]float64, h.Reproduction.GestationMonths*30)
	}

	return herb, nil
}

// HFT returns the shared, immutable configuration this herbivore was
// constructed with.
func (h *Herbivore) HFT() *hft.HFT { return h.hft }

// Sex returns the herbivore's fixed sex.
func (h *Herbivore) Sex() Sex { return h.sex }

// Kind reports which variant this is.
func (h *Herbivore) Kind() Kind { return h.kind }

// AgeDays returns the current age in days.
func (h *Herbivore) AgeDays() int { return h.ageDays }

// AgeYears returns the current age in years.
func (h *Herbivore) AgeYears() float64 { return float64(h.ageDays) / 365.0 }

// Density returns individuals/km² for a Cohort; 1/area for an
// Individual, so population-level sums treat both uniformly.
func (h *Herbivore) Density() float64 {
	if h.kind == CohortKind {
		return h.density
	}
	if h.dead || h.areaKm2 <= 0 {
		return 0
	}
	return 1.0 / h.areaKm2
}

// IsDead reports whether this herbivore no longer counts as alive:
// below the minimum density threshold for a Cohort, or the discrete dead
// flag for an Individual.
func (h *Herbivore) IsDead() bool {
	if h.kind == CohortKind {
		return h.density < h.hft.MinimumDensityThreshold
	}
	return h.dead
}

// Mergeable reports whether two herbivores are mergeable cohorts: same
// HFT, same sex, identical age (spec.md §3).
func (h *Herbivore) Mergeable(other *Herbivore) bool {
	return h.kind == CohortKind && other.kind == CohortKind &&
		h.hft == other.hft && h.sex == other.sex && h.ageDays == other.ageDays
}

// adultBodyMass returns the sex-specific adult body mass, kg.
func (h *Herbivore) adultBodyMass() float64 {
	if h.sex == Male {
		return float64(h.hft.BodyMass.AdultMale)
	}
	return float64(h.hft.BodyMass.AdultFemale)
}

// physicalMaturityYears returns the sex-specific age at which potential
// body mass stops growing.
func (h *Herbivore) physicalMaturityYears() float64 {
	if h.sex == Male {
		return h.hft.LifeHistory.PhysicalMaturityMale
	}
	return h.hft.LifeHistory.PhysicalMaturityFemale
}

// PotentialBodyMass interpolates linearly from birth to adult body mass
// over [0, physical_maturity*365] days, then holds constant (spec.md §3).
func (h *Herbivore) PotentialBodyMass() float64 {
	adult := h.adultBodyMass()
	birth := float64(h.hft.BodyMass.Birth)
	maturityDays := h.physicalMaturityYears() * 365
	if maturityDays <= 0 || float64(h.ageDays) >= maturityDays {
		return adult
	}
	frac := float64(h.ageDays) / maturityDays
	return birth + frac*(adult-birth)
}

func (h *Herbivore) maxFatMass() float64 {
	return h.hft.BodyFat.Maximum * h.PotentialBodyMass()
}

// LeanBodyMass is potential body mass scaled by (1 - bodyfat_max)
// (spec.md §3).
func (h *Herbivore) LeanBodyMass() float64 {
	return h.PotentialBodyMass() * (1 - h.hft.BodyFat.Maximum)
}

// BodyMass is lean body mass plus current fat mass.
func (h *Herbivore) BodyMass() float64 {
	return h.LeanBodyMass() + h.budget.FatMass()
}

// BodyCondition is fat_mass / max_fat_mass, in [0,1].
func (h *Herbivore) BodyCondition() float64 {
	return h.budget.BodyCondition()
}

// IsJuvenile reports whether this herbivore is under one year old, the
// threshold the Background mortality factor uses (spec.md §4.2).
func (h *Herbivore) IsJuvenile() bool {
	return h.ageDays < 365
}

// IsSexuallyMature reports whether age_years >= the sex-specific sexual
// maturity age, the precondition for reproduction (spec.md §4.2).
func (h *Herbivore) IsSexuallyMature() bool {
	return h.AgeYears() >= h.hft.LifeHistory.SexualMaturityYears
}

// meanBodyConditionOverGestation returns the average body condition over
// the recorded gestation window, or the current condition if the window
// hasn't filled yet.
func (h *Herbivore) meanBodyConditionOverGestation() float64 {
	if len(h.conditionHistory) == 0 || h.historyFilled == 0 {
		return h.BodyCondition()
	}
	n := h.historyFilled
	if n > len(h.conditionHistory) {
		n = len(h.conditionHistory)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += h.conditionHistory[i]
	}
	return sum / float64(n)
}

func (h *Herbivore) pushConditionHistory() {
	if len(h.conditionHistory) == 0 {
		return
	}
	h.conditionHistory[h.historyPos] = h.BodyCondition()
	h.historyPos = (h.historyPos + 1) % len(h.conditionHistory)
	if h.historyFilled < len(h.conditionHistory) {
		h.historyFilled++
	}
}

// digestionType resolves the strategy digestion type for this HFT.
func (h *Herbivore) digestionType() strategy.DigestionType {
	return h.hft.Digestion.Type
}
