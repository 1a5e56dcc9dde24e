package population

import "github.com/savanna-sim/megafauna/internal/herbivore"

// Create (re-)establishes this population: totalDensity individuals/km²
// split 50:50 by sex and evenly across every whole age-year in
// [ageRange.Min, ageRange.Max] (spec.md §4.4); both ends of the range are
// included.
func (p *Population) Create(totalDensity float64, ageRangeMinYears, ageRangeMaxYears int) error {
	if totalDensity <= 0 {
		return &herbivore.PreconditionError{Reason: "establishment density must be positive"}
	}
	if ageRangeMaxYears < ageRangeMinYears {
		return &herbivore.PreconditionError{Reason: "establishment age range max below min"}
	}

	numAgeYears := ageRangeMaxYears - ageRangeMinYears + 1
	perSexPerAge := totalDensity / float64(2*numAgeYears)

	for ageYear := ageRangeMinYears; ageYear <= ageRangeMaxYears; ageYear++ {
		ageDays := ageYear * 365
		for _, sex := range []herbivore.Sex{herbivore.Female, herbivore.Male} {
			cohort, err := herbivore.NewCohort(p.hft, sex, ageDays, perSexPerAge)
			if err != nil {
				return err
			}
			if err := p.insert(cohort); err != nil {
				return err
			}
		}
	}
	return nil
}
