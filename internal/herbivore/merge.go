package herbivore

// MergeCohorts combines two mergeable cohorts (same HFT, sex, age;
// spec.md §3/§4.4) into a = density-weighted average of body-condition
// state, densities summed. b is left unmodified; callers should discard
// it after merging.
func MergeCohorts(a, b *Herbivore) error {
	if !a.Mergeable(b) {
		return &PreconditionError{"cohorts are not mergeable: differing HFT, sex, or age"}
	}

	weightA, weightB := a.density, b.density
	a.budget.Merge(b.budget, weightA, weightB)
	a.nitrogen.Merge(b.nitrogen, weightA, weightB)

	if a.sex == Female {
		mergeConditionHistory(a, b, weightA, weightB)
	}

	a.density = weightA + weightB
	return nil
}

func mergeConditionHistory(a, b *Herbivore, weightA, weightB float64) {
	total := weightA + weightB
	if total == 0 || len(a.conditionHistory) == 0 || len(b.conditionHistory) == 0 {
		return
	}
	n := len(a.conditionHistory)
	if len(b.conditionHistory) < n {
		n = len(b.conditionHistory)
	}
	for i := 0; i < n; i++ {
		a.conditionHistory[i] = (a.conditionHistory[i]*weightA + b.conditionHistory[i]*weightB) / total
	}
	if b.historyFilled > a.historyFilled {
		a.historyFilled = b.historyFilled
	}
}
