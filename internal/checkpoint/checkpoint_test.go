package checkpoint

import (
	"path/filepath"
	"testing"

	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/savanna-sim/megafauna/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadDayRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sqlite")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	var eaten forage.Vector
	eaten = eaten.Set(forage.Grass, 12.5)

	c := output.NewCombinedData(3)
	c.ByHFT["wildebeest"] = output.HerbivoreData{
		HFTName:           "wildebeest",
		Density:           2.5,
		MassDensity:       250,
		BodyFat:           0.4,
		EatenForagePerInd: eaten,
		DatapointCount:    2.5,
	}
	c.Habitat = output.HabitatData{TotalMass: 1000, AvgDigestibility: 0.6, DatapointCount: 1}

	require.NoError(t, store.SaveDay("unit-1", c))

	loaded, err := store.LoadDay("unit-1", 3)
	require.NoError(t, err)
	require.Contains(t, loaded.ByHFT, "wildebeest")
	assert.InDelta(t, 2.5, loaded.ByHFT["wildebeest"].Density, 1e-9)
	assert.InDelta(t, 12.5, loaded.ByHFT["wildebeest"].EatenForagePerInd.Get(forage.Grass), 1e-9)
	assert.InDelta(t, 1000, loaded.Habitat.TotalMass, 1e-9)
}

func TestSaveDayOverwritesExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sqlite")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	c1 := output.NewCombinedData(1)
	c1.ByHFT["zebra"] = output.HerbivoreData{Density: 1, DatapointCount: 1}
	require.NoError(t, store.SaveDay("unit-1", c1))

	c2 := output.NewCombinedData(1)
	c2.ByHFT["zebra"] = output.HerbivoreData{Density: 9, DatapointCount: 1}
	require.NoError(t, store.SaveDay("unit-1", c2))

	loaded, err := store.LoadDay("unit-1", 1)
	require.NoError(t, err)
	assert.InDelta(t, 9, loaded.ByHFT["zebra"].Density, 1e-9)
}

func TestLoadDayWithNoDataReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sqlite")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	loaded, err := store.LoadDay("unit-1", 99)
	require.NoError(t, err)
	assert.Empty(t, loaded.ByHFT)
}

func TestMetaRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sqlite")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveMeta("last_day", "42"))
	value, err := store.GetMeta("last_day")
	require.NoError(t, err)
	assert.Equal(t, "42", value)
}
