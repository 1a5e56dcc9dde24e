package herbivore

import (
	"testing"

	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/savanna-sim/megafauna/internal/habitat"
	"github.com/savanna-sim/megafauna/internal/hft"
	"github.com/savanna-sim/megafauna/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHFT(t *testing.T, mutate func(*hft.HFT)) *hft.HFT {
	t.Helper()
	h := &hft.HFT{
		Name: "test-grazer",
		BodyMass: hft.BodyMass{
			Birth:         30,
			AdultMale:     120,
			AdultFemale:   100,
			EmptyFraction: 0.9,
		},
		BodyFat: hft.BodyFat{
			Birth:          0.3,
			Maximum:        0.25,
			MaxDailyGainKg: 0.5,
		},
		LifeHistory: hft.LifeHistory{
			LifespanYears:          20,
			SexualMaturityYears:    2,
			PhysicalMaturityMale:   3,
			PhysicalMaturityFemale: 3,
		},
		Reproduction: hft.Reproduction{
			ModelName:         "ConstantMaximum",
			AnnualMaximum:     0.5,
			GestationMonths:   9,
			BreedingStartDay:  121,
			BreedingLengthDay: 30,
		},
		Mortality: hft.Mortality{
			Factors:            map[string]bool{"Background": true},
			BackgroundJuvenile: 0.3,
			BackgroundAdult:    0.1,
		},
		Digestion: hft.Digestion{
			TypeName:  "Ruminant",
			LimitName: "IlliusGordon1992",
		},
		Foraging: hft.Foraging{
			DietComposerName:     "PureGrazer",
			NetEnergyModelName:   "Default",
			HalfSaturationDensity: 50,
			IntakeRateMaxKg:      10,
			ForageNitrogenRatio:  0.02,
		},
		Expenditure: hft.Expenditure{
			ComponentNames: []string{"Taylor1981"},
		},
		Establishment: hft.Establishment{
			Density:  1.0,
			AgeRange: hft.AgeRange{Min: 1, Max: 15},
		},
		MinimumDensityThreshold: 0.0001,
	}
	if mutate != nil {
		mutate(h)
	}
	require.NoError(t, hft.Validate(h))
	return h
}

func TestPotentialBodyMassInterpolatesThenHolds(t *testing.T) {
	h := newTestHFT(t, nil)
	herb, err := NewCohort(h, Female, 0, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 30, herb.PotentialBodyMass(), 1e-9)

	adult, err := NewCohort(h, Female, 365*10, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 100, adult.PotentialBodyMass(), 1e-9)

	halfway, err := NewCohort(h, Female, 365, 1.0) // 1/3 of a 3-year maturity
	require.NoError(t, err)
	want := 30 + (100-30)/3.0
	assert.InDelta(t, want, halfway.PotentialBodyMass(), 1e-6)
}

func TestNewCohortRejectsNonPositiveDensity(t *testing.T) {
	h := newTestHFT(t, nil)
	_, err := NewCohort(h, Female, 0, 0)
	require.Error(t, err)
}

// TestStarvationThresholdKillsCohortInOneDay mirrors spec.md's S1
// boundary scenario: a cohort with only StarvationThreshold mortality and
// a very low initial body condition dies on its first simulated day.
func TestStarvationThresholdKillsCohortInOneDay(t *testing.T) {
	h := newTestHFT(t, func(h *hft.HFT) {
		h.Mortality.Factors = map[string]bool{"StarvationThreshold": true}
		h.BodyFat.Birth = 0.0001 // well below the 0.2% critical fraction
	})
	herb, err := NewCohort(h, Female, 365*5, 1.0)
	require.NoError(t, err)

	source := rng.New(1)
	env := habitat.Environment{AirTemperatureC: 20}
	_, err = herb.SimulateDay(0, env, source)
	require.NoError(t, err)

	assert.True(t, herb.IsDead())
	assert.InDelta(t, 0, herb.Density(), 1e-9)
}

// TestCohortMergeSumsDensityAndAveragesCondition mirrors spec.md's S6
// boundary scenario.
func TestCohortMergeSumsDensityAndAveragesCondition(t *testing.T) {
	h := newTestHFT(t, nil)
	a, err := NewCohort(h, Female, 365*3, 1.0)
	require.NoError(t, err)
	b, err := NewCohort(h, Female, 365*3, 3.0)
	require.NoError(t, err)

	// Give b a different body condition so the merge must average, not
	// just copy a's state.
	b.budget.ForceBodyCondition(0.8)
	aCondition := a.BodyCondition()
	bCondition := b.BodyCondition()

	require.NoError(t, MergeCohorts(a, b))

	assert.InDelta(t, 4.0, a.density, 1e-9)
	want := (aCondition*1.0 + bCondition*3.0) / 4.0
	assert.InDelta(t, want, a.BodyCondition(), 1e-6)
}

func TestMergeCohortsRejectsMismatchedAge(t *testing.T) {
	h := newTestHFT(t, nil)
	a, err := NewCohort(h, Female, 100, 1.0)
	require.NoError(t, err)
	b, err := NewCohort(h, Female, 200, 1.0)
	require.NoError(t, err)

	err = MergeCohorts(a, b)
	require.Error(t, err)
}

func TestGetForageDemandsIsMemoizedPerDay(t *testing.T) {
	h := newTestHFT(t, nil)
	herb, err := NewCohort(h, Female, 365*5, 1.0)
	require.NoError(t, err)

	available := forage.HabitatForage{
		Mass:          forage.New(map[forage.Type]float64{forage.Grass: 1e6}),
		Digestibility: forage.New(map[forage.Type]float64{forage.Grass: 0.5}),
	}

	source := rng.New(1)
	env := habitat.Environment{AirTemperatureC: 20}
	_, err = herb.SimulateDay(0, env, source)
	require.NoError(t, err)

	first, err := herb.GetForageDemands(available)
	require.NoError(t, err)
	second, err := herb.GetForageDemands(available)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Greater(t, first.Get(forage.Grass), 0.0)
}

// TestEatRejectsMoreThanDemand exercises spec.md's hard-enforced eat
// precondition.
func TestEatRejectsMoreThanDemand(t *testing.T) {
	h := newTestHFT(t, nil)
	herb, err := NewCohort(h, Female, 365*5, 1.0)
	require.NoError(t, err)

	available := forage.HabitatForage{
		Mass:          forage.New(map[forage.Type]float64{forage.Grass: 1e6}),
		Digestibility: forage.New(map[forage.Type]float64{forage.Grass: 0.5}),
	}

	source := rng.New(1)
	env := habitat.Environment{AirTemperatureC: 20}
	_, err = herb.SimulateDay(0, env, source)
	require.NoError(t, err)
	_, err = herb.GetForageDemands(available)
	require.NoError(t, err)

	tooMuch := forage.New(map[forage.Type]float64{forage.Grass: 1e9})
	err = herb.Eat(tooMuch, available.Digestibility, 0)
	require.Error(t, err)
}

func TestEatWithinDemandMetabolizesEnergyAndNitrogen(t *testing.T) {
	h := newTestHFT(t, nil)
	herb, err := NewCohort(h, Female, 365*5, 1.0)
	require.NoError(t, err)

	available := forage.HabitatForage{
		Mass:          forage.New(map[forage.Type]float64{forage.Grass: 1e6}),
		Digestibility: forage.New(map[forage.Type]float64{forage.Grass: 0.5}),
	}

	source := rng.New(1)
	env := habitat.Environment{AirTemperatureC: 20}
	_, err = herb.SimulateDay(0, env, source)
	require.NoError(t, err)
	demand, err := herb.GetForageDemands(available)
	require.NoError(t, err)
	require.Greater(t, demand.Get(forage.Grass), 0.0)

	require.NoError(t, herb.Eat(demand, available.Digestibility, 1.0))
	assert.Greater(t, herb.Today().EatenForagePerInd.Get(forage.Grass), 0.0)
	assert.Greater(t, herb.nitrogen.Bound(), 0.0)
}

func TestIndividualMortalityRollsAgainstRNG(t *testing.T) {
	h := newTestHFT(t, func(h *hft.HFT) {
		h.Mortality.Factors = map[string]bool{"StarvationThreshold": true}
		h.BodyFat.Birth = 0.0001
	})
	herb, err := NewIndividual(h, Male, 365*5, 1.0)
	require.NoError(t, err)

	source := rng.New(1)
	env := habitat.Environment{AirTemperatureC: 20}
	_, err = herb.SimulateDay(0, env, source)
	require.NoError(t, err)
	assert.True(t, herb.IsDead())
}
