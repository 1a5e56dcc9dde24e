package energybudget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsOutOfRangeFatMass(t *testing.T) {
	_, err := New(10, 5)
	require.Error(t, err)
}

func TestCatabolizeFatClampsToAvailable(t *testing.T) {
	b, err := New(2, 10)
	require.NoError(t, err)
	b.AddEnergyNeeds(1000) // way more than 2kg of fat can cover
	b.CatabolizeFat()

	assert.Equal(t, 0.0, b.FatMass())
	assert.Greater(t, b.EnergyNeeds(), 0.0)
}

func TestCatabolizeFatCoversNeedsExactly(t *testing.T) {
	b, err := New(5, 10)
	require.NoError(t, err)
	needs := 39.3 * 0.8 * 2 // exactly 2kg worth
	b.AddEnergyNeeds(needs)
	b.CatabolizeFat()

	assert.InDelta(t, 3.0, b.FatMass(), 1e-9)
	assert.InDelta(t, 0.0, b.EnergyNeeds(), 1e-9)
}

func TestMetabolizeEnergyPaysNeedsBeforeAnabolizing(t *testing.T) {
	b, err := New(0, 10)
	require.NoError(t, err)
	require.NoError(t, b.SetMaxFatmass(10, 5))
	b.AddEnergyNeeds(50)

	b.MetabolizeEnergy(50)
	assert.InDelta(t, 0.0, b.EnergyNeeds(), 1e-9)
	assert.Equal(t, 0.0, b.FatMass())
}

func TestMetabolizeEnergySurplusAnabolizesCappedByDailyGain(t *testing.T) {
	b, err := New(0, 100)
	require.NoError(t, err)
	require.NoError(t, b.SetMaxFatmass(100, 1)) // max daily gain 1kg

	b.MetabolizeEnergy(1000000) // huge surplus
	assert.LessOrEqual(t, b.FatMass(), 1.0+1e-9)
}

func TestMetabolizeEnergyCappedByMaxFatMass(t *testing.T) {
	b, err := New(9, 10)
	require.NoError(t, err)
	require.NoError(t, b.SetMaxFatmass(10, 100))

	b.MetabolizeEnergy(1000000)
	assert.InDelta(t, 10.0, b.FatMass(), 1e-9)
}

func TestBodyConditionRatio(t *testing.T) {
	b, err := New(5, 20)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, b.BodyCondition(), 1e-9)
}

func TestForceBodyConditionClamps(t *testing.T) {
	b, err := New(5, 20)
	require.NoError(t, err)
	b.ForceBodyCondition(1.5)
	assert.InDelta(t, 20.0, b.FatMass(), 1e-9)
	b.ForceBodyCondition(-1)
	assert.InDelta(t, 0.0, b.FatMass(), 1e-9)
}

func TestMergeIsWeightedAverage(t *testing.T) {
	a, _ := New(2, 10)
	b, _ := New(6, 10)
	a.Merge(b, 1, 3)
	assert.InDelta(t, 5.0, a.FatMass(), 1e-9)
}

func TestInvariantsHoldAfterOperations(t *testing.T) {
	b, err := New(1, 10)
	require.NoError(t, err)
	require.NoError(t, b.SetMaxFatmass(10, 2))
	b.AddEnergyNeeds(30)
	b.CatabolizeFat()
	b.MetabolizeEnergy(500)

	assert.GreaterOrEqual(t, b.FatMass(), 0.0)
	assert.LessOrEqual(t, b.FatMass(), b.MaxFatMass())
	assert.GreaterOrEqual(t, b.EnergyNeeds(), 0.0)
}
