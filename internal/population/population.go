// Package population implements the per-HFT herbivore container (spec.md
// §4.4): establishment, cohort merging, offspring insertion, and
// dead-pruning, over a stable insertion-ordered list.
package population

import (
	"github.com/savanna-sim/megafauna/internal/herbivore"
	"github.com/savanna-sim/megafauna/internal/hft"
)

// Population holds every live herbivore of one HFT within one habitat.
// Invariant: no two live cohorts share the same (age, sex) — Insert
// merges them (spec.md §3).
type Population struct {
	hft        *hft.HFT
	herbivores []*herbivore.Herbivore
}

// New creates an empty population for the given HFT.
func New(h *hft.HFT) *Population {
	return &Population{hft: h}
}

// HFT returns the shared configuration this population's herbivores use.
func (p *Population) HFT() *hft.HFT { return p.hft }

// IterateLive calls fn for every live herbivore, in stable insertion
// order (spec.md §4.4/§5's determinism requirement).
func (p *Population) IterateLive(fn func(*herbivore.Herbivore)) {
	for _, h := range p.herbivores {
		if !h.IsDead() {
			fn(h)
		}
	}
}

// Live returns every live herbivore, in stable insertion order.
func (p *Population) Live() []*herbivore.Herbivore {
	live := make([]*herbivore.Herbivore, 0, len(p.herbivores))
	p.IterateLive(func(h *herbivore.Herbivore) {
		live = append(live, h)
	})
	return live
}

// IsExtinct reports whether the population has no live herbivore.
func (p *Population) IsExtinct() bool {
	for _, h := range p.herbivores {
		if !h.IsDead() {
			return false
		}
	}
	return true
}

// insert adds a cohort, merging into an existing mergeable cohort if one
// exists rather than appending a duplicate (age, sex) entry.
func (p *Population) insert(newCohort *herbivore.Herbivore) error {
	for _, existing := range p.herbivores {
		if existing.IsDead() {
			continue
		}
		if existing.Mergeable(newCohort) {
			return herbivore.MergeCohorts(existing, newCohort)
		}
	}
	p.herbivores = append(p.herbivores, newCohort)
	return nil
}

// PurgeDead drops every herbivore that no longer counts as alive
// (spec.md §4.4).
func (p *Population) PurgeDead() {
	live := p.herbivores[:0]
	for _, h := range p.herbivores {
		if !h.IsDead() {
			live = append(live, h)
		}
	}
	p.herbivores = live
}
