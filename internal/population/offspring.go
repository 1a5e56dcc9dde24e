package population

import "github.com/savanna-sim/megafauna/internal/herbivore"

// CreateOffspring inserts a newborn (age 0) cohort at a 50:50 sex split
// of massDensity, merging into any existing age-0 cohort of the same sex
// rather than adding a duplicate entry (spec.md §4.4).
func (p *Population) CreateOffspring(massDensity float64) error {
	if massDensity <= 0 {
		return nil
	}

	half := massDensity / 2
	for _, sex := range []herbivore.Sex{herbivore.Female, herbivore.Male} {
		newborn, err := herbivore.NewCohort(p.hft, sex, 0, half)
		if err != nil {
			return err
		}
		if err := p.insert(newborn); err != nil {
			return err
		}
	}
	return nil
}
