package population

import (
	"testing"

	"github.com/savanna-sim/megafauna/internal/herbivore"
	"github.com/savanna-sim/megafauna/internal/hft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHFT(t *testing.T) *hft.HFT {
	t.Helper()
	h := &hft.HFT{
		Name:     "test-grazer",
		BodyMass: hft.BodyMass{Birth: 30, AdultMale: 120, AdultFemale: 100, EmptyFraction: 0.9},
		BodyFat:  hft.BodyFat{Birth: 0.3, Maximum: 0.25, MaxDailyGainKg: 0.5},
		LifeHistory: hft.LifeHistory{
			LifespanYears: 20, SexualMaturityYears: 2,
			PhysicalMaturityMale: 3, PhysicalMaturityFemale: 3,
		},
		Reproduction: hft.Reproduction{
			ModelName: "ConstantMaximum", AnnualMaximum: 0.5,
			GestationMonths: 9, BreedingStartDay: 121, BreedingLengthDay: 30,
		},
		Mortality: hft.Mortality{
			Factors:            map[string]bool{"Background": true},
			BackgroundJuvenile: 0.3,
			BackgroundAdult:    0.1,
		},
		Digestion: hft.Digestion{TypeName: "Ruminant", LimitName: "IlliusGordon1992"},
		Foraging: hft.Foraging{
			DietComposerName: "PureGrazer", NetEnergyModelName: "Default",
			HalfSaturationDensity: 50, IntakeRateMaxKg: 10, ForageNitrogenRatio: 0.02,
		},
		Expenditure:             hft.Expenditure{ComponentNames: []string{"Taylor1981"}},
		Establishment:           hft.Establishment{Density: 1.0, AgeRange: hft.AgeRange{Min: 1, Max: 3}},
		MinimumDensityThreshold: 0.0001,
	}
	require.NoError(t, hft.Validate(h))
	return h
}

func TestCreateSplitsEvenlyAcrossSexAndAgeYears(t *testing.T) {
	h := newTestHFT(t)
	p := New(h)
	require.NoError(t, p.Create(6.0, 1, 3))

	live := p.Live()
	assert.Len(t, live, 6) // 3 age-years x 2 sexes

	var total float64
	for _, herb := range live {
		total += herb.Density()
	}
	assert.InDelta(t, 6.0, total, 1e-9)
}

func TestCreateOffspringMergesIntoExistingAgeZeroCohort(t *testing.T) {
	h := newTestHFT(t)
	p := New(h)
	require.NoError(t, p.CreateOffspring(2.0))
	require.NoError(t, p.CreateOffspring(4.0))

	live := p.Live()
	assert.Len(t, live, 2) // one female, one male age-0 cohort, merged not duplicated

	var total float64
	for _, herb := range live {
		total += herb.Density()
	}
	assert.InDelta(t, 6.0, total, 1e-9) // (2/2 + 4/2) per sex, both sexes summed
}

func TestPurgeDeadDropsBelowThreshold(t *testing.T) {
	h := newTestHFT(t)
	p := New(h)
	require.NoError(t, p.Create(2.0, 1, 1))
	assert.Len(t, p.Live(), 2)

	// PurgeDead is a no-op while every cohort is above threshold.
	p.PurgeDead()
	assert.Len(t, p.Live(), 2)

	dying, err := herbivore.NewCohort(h, herbivore.Female, 100, h.MinimumDensityThreshold/2)
	require.NoError(t, err)
	p.herbivores = append(p.herbivores, dying)
	p.PurgeDead()
	assert.Len(t, p.herbivores, 2)
}

func TestIsExtinctTrueForEmptyPopulation(t *testing.T) {
	h := newTestHFT(t)
	p := New(h)
	assert.True(t, p.IsExtinct())

	require.NoError(t, p.Create(1.0, 1, 1))
	assert.False(t, p.IsExtinct())
}

func TestInsertMergesMergeableCohorts(t *testing.T) {
	h := newTestHFT(t)
	p := New(h)
	a, err := herbivore.NewCohort(h, herbivore.Female, 100, 1.0)
	require.NoError(t, err)
	b, err := herbivore.NewCohort(h, herbivore.Female, 100, 2.0)
	require.NoError(t, err)

	require.NoError(t, p.insert(a))
	require.NoError(t, p.insert(b))

	live := p.Live()
	require.Len(t, live, 1)
	assert.InDelta(t, 3.0, live[0].Density(), 1e-9)
}
