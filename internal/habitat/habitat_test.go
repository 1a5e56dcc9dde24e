package habitat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoProducesValidForageEveryDay(t *testing.T) {
	d := NewDemo(DefaultDemoConfig())
	for day := 1; day <= 365; day++ {
		require.NoError(t, d.InitDay(day))
		f := d.AvailableForage()
		require.NoError(t, f.Validate())
		assert.GreaterOrEqual(t, f.TotalMass(), 0.0)
	}
}

func TestDemoGrassPeaksNearSummer(t *testing.T) {
	d := NewDemo(DefaultDemoConfig())
	require.NoError(t, d.InitDay(172))
	summerMass := d.AvailableForage().Mass.Get(forage.Grass)

	require.NoError(t, d.InitDay(355))
	winterMass := d.AvailableForage().Mass.Get(forage.Grass)

	assert.Greater(t, summerMass, winterMass)
}

func TestDemoRemoveEatenForageNeverGoesNegative(t *testing.T) {
	d := NewDemo(DefaultDemoConfig())
	require.NoError(t, d.InitDay(1))
	var huge forage.Vector
	huge = huge.Set(forage.Grass, 1e12)
	require.NoError(t, d.RemoveEatenForage(huge))
	assert.Equal(t, 0.0, d.AvailableForage().Mass.Get(forage.Grass))
}

func TestDemoSnowOnlyBelowThreshold(t *testing.T) {
	cfg := DefaultDemoConfig()
	d := NewDemo(cfg)
	require.NoError(t, d.InitDay(172)) // northern summer: should be warm
	env := d.Environment()
	if env.AirTemperatureC >= cfg.SnowThresholdC {
		assert.Equal(t, 0.0, env.SnowDepthCm)
	}
}

func TestCSVForcingRoundTripsRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forcing.csv")
	contents := "day_of_year,grass_mass,digestibility,fpc,air_temperature,snow_depth\n" +
		"1,500,0.4,0.3,-5,10\n" +
		"180,2000,0.7,0.8,18,0\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	f, err := LoadCSVForcing(path)
	require.NoError(t, err)

	require.NoError(t, f.InitDay(180))
	assert.InDelta(t, 2000, f.AvailableForage().Mass.Get(forage.Grass), 1e-9)
	assert.InDelta(t, 18, f.Environment().AirTemperatureC, 1e-9)
}

func TestCSVForcingFallsBackToNearestEarlierDay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forcing.csv")
	contents := "day_of_year,grass_mass,digestibility,fpc,air_temperature,snow_depth\n" +
		"1,500,0.4,0.3,-5,10\n" +
		"180,2000,0.7,0.8,18,0\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	f, err := LoadCSVForcing(path)
	require.NoError(t, err)

	require.NoError(t, f.InitDay(90)) // between recorded rows; falls back to day 1
	assert.InDelta(t, 500, f.AvailableForage().Mass.Get(forage.Grass), 1e-9)
}

func TestLoadCSVForcingRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("day_of_year,grass_mass,digestibility,fpc,air_temperature,snow_depth\n"), 0o644))

	_, err := LoadCSVForcing(path)
	assert.Error(t, err)
}
