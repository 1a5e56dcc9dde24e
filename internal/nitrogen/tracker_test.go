package nitrogen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngestThenDigestReleasesAfterRetention(t *testing.T) {
	tr := New(3)
	tr.Ingest(10)
	assert.Equal(t, 10.0, tr.Bound())

	tr.Digest()
	tr.Digest()
	assert.Equal(t, 0.0, tr.TakeExcreta())

	tr.Digest()
	assert.Equal(t, 10.0, tr.TakeExcreta())
	assert.Equal(t, 0.0, tr.Bound())
}

func TestTakeExcretaClearsAfterRead(t *testing.T) {
	tr := New(1)
	tr.Ingest(5)
	tr.Digest()
	assert.Equal(t, 5.0, tr.TakeExcreta())
	assert.Equal(t, 0.0, tr.TakeExcreta())
}

func TestRetentionDaysForBodyMassIncreasesWithMass(t *testing.T) {
	small := RetentionDaysForBodyMass(20)
	large := RetentionDaysForBodyMass(2000)
	assert.GreaterOrEqual(t, large, small)
}

func TestMergeSumsBoundAcrossCohorts(t *testing.T) {
	a := New(2)
	b := New(2)
	a.Ingest(10)
	b.Ingest(30)
	a.Merge(b, 1, 1)
	assert.InDelta(t, 40.0, a.Bound(), 1e-9)
}

func TestMergeSumsExcretaAndPendingAcrossCohorts(t *testing.T) {
	a := New(2)
	b := New(2)
	a.Ingest(10)
	b.Ingest(30)
	a.Digest()
	b.Digest()
	a.Merge(b, 3, 1)
	assert.InDelta(t, 0.0, a.TakeExcreta(), 1e-9)
	a.Digest()
	assert.InDelta(t, 40.0, a.TakeExcreta(), 1e-9)
}
