package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedProducesSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestBernoulliBoundaries(t *testing.T) {
	s := New(1)
	assert.False(t, s.Bernoulli(0))
	assert.True(t, s.Bernoulli(1))
}

func TestNormalFloat64CentersOnMean(t *testing.T) {
	s := New(7)
	var sum float64
	const n = 10000
	for i := 0; i < n; i++ {
		sum += s.NormalFloat64(0.5, 0.1)
	}
	mean := sum / n
	assert.InDelta(t, 0.5, mean, 0.02)
}

func TestShufflePermutesInPlace(t *testing.T) {
	s := New(3)
	items := []int{0, 1, 2, 3, 4, 5, 6, 7}
	original := append([]int(nil), items...)

	s.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	assert.ElementsMatch(t, original, items)
}

func TestSeedReportsConstructorValue(t *testing.T) {
	s := New(123)
	assert.Equal(t, int64(123), s.Seed())
}
