// Package nitrogen implements the per-cohort nitrogen tracker: ingested
// nitrogen is bound for a retention period derived from body mass, then
// released as excreta (spec.md §4.3 step 1, GLOSSARY).
package nitrogen

import "math"

// Tracker accumulates ingested nitrogen and releases it on a delay.
// The retention buffer is a simple ring keyed by day-offset rather than a
// full distribution — the model only needs "how much comes out today",
// not the exact residence-time curve.
type Tracker struct {
	retentionDays int
	pending       []float64 // pending[i] releases in i days
	bound         float64   // currently bound (in transit) nitrogen, kg/km²
	excreta       float64   // nitrogen released and not yet collected, kg/km²
}

// New creates a Tracker with the given retention time in days. Retention
// time must be >= 1.
func New(retentionDays int) *Tracker {
	if retentionDays < 1 {
		retentionDays = 1
	}
	return &Tracker{
		retentionDays: retentionDays,
		pending:       make([]float64, retentionDays),
	}
}

// RetentionDaysForBodyMass derives a retention time from body mass: larger
// animals retain nitrogen longer, following the mean-retention-time
// allometry MRT = 32.8 * mass^0.07 hours, converted to days.
func RetentionDaysForBodyMass(bodyMassKg float64) int {
	const a, b = 32.8, 0.07
	if bodyMassKg <= 0 {
		return 1
	}
	days := a * math.Pow(bodyMassKg, b) / 24.0
	rounded := int(days + 0.5)
	if rounded < 1 {
		return 1
	}
	return rounded
}

// Ingest registers newly ingested nitrogen; it becomes bound immediately
// and is scheduled for release after RetentionDays.
func (t *Tracker) Ingest(kgPerKm2 float64) {
	if kgPerKm2 <= 0 {
		return
	}
	t.bound += kgPerKm2
	t.pending[t.retentionDays-1] += kgPerKm2
}

// Digest advances the tracker by one day: the oldest pending amount is
// released as excreta, and the schedule shifts.
func (t *Tracker) Digest() {
	released := t.pending[0]
	copy(t.pending, t.pending[1:])
	t.pending[len(t.pending)-1] = 0

	t.bound -= released
	if t.bound < 0 {
		t.bound = 0
	}
	t.excreta += released
}

// Bound returns nitrogen currently bound (ingested, not yet released).
func (t *Tracker) Bound() float64 { return t.bound }

// TakeExcreta returns and clears the nitrogen released and not yet
// collected — the simulation driver calls this exactly once per cohort per
// day (spec.md §4.6's "exactly once" guarantee).
func (t *Tracker) TakeExcreta() float64 {
	e := t.excreta
	t.excreta = 0
	return e
}

// Merge combines two trackers by summing their state, used when cohorts
// merge. bound/excreta/pending are per-area totals (already scaled by each
// cohort's density), so a merged cohort's totals are the sum of its two
// disjoint sub-populations', not a weighted average of them — density
// itself is summed the same way. weightSelf/weightOther are accepted to
// match the merge signature used elsewhere but play no part in the sum.
func (t *Tracker) Merge(other *Tracker, weightSelf, weightOther float64) {
	t.bound += other.bound
	t.excreta += other.excreta
	n := len(t.pending)
	if len(other.pending) < n {
		n = len(other.pending)
	}
	for i := 0; i < n; i++ {
		t.pending[i] += other.pending[i]
	}
}
