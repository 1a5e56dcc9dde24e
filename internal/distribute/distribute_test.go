package distribute

import (
	"testing"

	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/stretchr/testify/assert"
)

func vec(grass float64) forage.Vector {
	var v forage.Vector
	return v.Set(forage.Grass, grass)
}

func TestEquallyGivesFullDemandWhenSupplyAbundant(t *testing.T) {
	available := vec(100)
	demands := []Demand{
		{Key: "a", Mass: vec(10)},
		{Key: "b", Mass: vec(20)},
	}

	res := Equally(available, demands)
	assert.InDelta(t, 10, res.Allocations["a"].Get(forage.Grass), 1e-9)
	assert.InDelta(t, 20, res.Allocations["b"].Get(forage.Grass), 1e-9)
	assert.InDelta(t, 30, res.Total.Get(forage.Grass), 1e-9)
}

func TestEquallyScalesDownProportionallyWhenScarce(t *testing.T) {
	available := vec(30)
	demands := []Demand{
		{Key: "a", Mass: vec(10)},
		{Key: "b", Mass: vec(20)},
	}

	res := Equally(available, demands)
	// total demand 30 > available 30? equal, no scarcity
	assert.InDelta(t, 10, res.Allocations["a"].Get(forage.Grass), 1e-9)
	assert.InDelta(t, 20, res.Allocations["b"].Get(forage.Grass), 1e-9)

	// now genuinely scarce: 60 demanded, 30 available, scale 0.5
	demands = []Demand{
		{Key: "a", Mass: vec(20)},
		{Key: "b", Mass: vec(40)},
	}
	res = Equally(available, demands)
	assert.InDelta(t, 10, res.Allocations["a"].Get(forage.Grass), 1e-9)
	assert.InDelta(t, 20, res.Allocations["b"].Get(forage.Grass), 1e-9)
	assert.InDelta(t, 30, res.Total.Get(forage.Grass), 1e-9)
}

func TestEquallyZeroDemandAllocatesNothing(t *testing.T) {
	available := vec(100)
	demands := []Demand{{Key: "a", Mass: forage.Vector{}}}

	res := Equally(available, demands)
	assert.InDelta(t, 0, res.Allocations["a"].Get(forage.Grass), 1e-9)
	assert.InDelta(t, 0, res.Total.Get(forage.Grass), 1e-9)
}

func TestEquallyZeroAvailableAllocatesNothing(t *testing.T) {
	res := Equally(forage.Vector{}, []Demand{{Key: "a", Mass: vec(10)}})
	assert.InDelta(t, 0, res.Allocations["a"].Get(forage.Grass), 1e-9)
}

func TestEquallyNeverExceedsAvailable(t *testing.T) {
	available := vec(5)
	demands := make([]Demand, 0, 20)
	for i := 0; i < 20; i++ {
		demands = append(demands, Demand{Key: i, Mass: vec(3)})
	}
	res := Equally(available, demands)
	assert.InDelta(t, 5, res.Total.Get(forage.Grass), 1e-9)
	for _, alloc := range res.Allocations {
		assert.LessOrEqual(t, alloc.Get(forage.Grass), 3.0000001)
	}
}
