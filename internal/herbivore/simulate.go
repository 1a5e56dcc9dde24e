package herbivore

import (
	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/savanna-sim/megafauna/internal/habitat"
	"github.com/savanna-sim/megafauna/internal/rng"
	"github.com/savanna-sim/megafauna/internal/strategy"
)

// SimulateDay advances this herbivore by one day (spec.md §4.3's
// simulate_day contract) and returns the offspring density it produced
// (0 unless this is a sexually mature female within her breeding season).
func (h *Herbivore) SimulateDay(dayOfYear int, env habitat.Environment, source *rng.Source) (float64, error) {
	if h.IsDead() {
		return 0, &PreconditionError{"simulate_day called on a dead herbivore"}
	}
	if dayOfYear < 0 || dayOfYear >= 365 {
		return 0, &PreconditionError{"day_of_year out of [0,365)"}
	}

	h.nitrogen.Digest()

	h.ageDays++

	if h.sex == Female {
		h.pushConditionHistory()
	}

	if err := h.budget.SetMaxFatmass(h.maxFatMass(), h.hft.BodyFat.MaxDailyGainKg); err != nil {
		return 0, err
	}

	h.resetToday()

	h.budget.CatabolizeFat()

	expenditure, err := strategy.Expenditure(strategy.ExpenditureParams{
		Components:          h.hft.Expenditure.Components,
		BodyMassKg:          h.BodyMass(),
		AdultBodyMassKg:     h.adultBodyMass(),
		AllometricCoeff:     h.hft.Expenditure.AllometricCoeff,
		AllometricExp:       h.hft.Expenditure.AllometricExp,
		Conductance:         h.hft.Expenditure.Conductance,
		ConductanceCoeff:    h.hft.Expenditure.ConductanceCoeff,
		ThermoneutralRateMJ: h.hft.Expenditure.ThermoneutralRate,
		CoreTempC:           h.hft.Expenditure.CoreTemperatureC,
		AirTempC:            env.AirTemperatureC,
		DayOfYear:           dayOfYear,
	})
	if err != nil {
		return 0, err
	}
	h.budget.AddEnergyNeeds(expenditure)
	h.today.Expenditure = expenditure

	offspring, err := h.reproduce(dayOfYear)
	if err != nil {
		return 0, err
	}
	h.today.Offspring = offspring

	if err := h.applyMortality(source); err != nil {
		return 0, err
	}

	return offspring, nil
}

func (h *Herbivore) reproduce(dayOfYear int) (float64, error) {
	if h.sex != Female || !h.IsSexuallyMature() {
		return 0, nil
	}
	season := strategy.BreedingSeason{
		StartDay: h.hft.Reproduction.BreedingStartDay,
		Length:   h.hft.Reproduction.BreedingLengthDay,
	}
	rate, err := strategy.OffspringDensity(strategy.ReproductionParams{
		Model:         h.hft.Reproduction.Model,
		Season:        season,
		DayOfYear:     dayOfYear,
		AnnualMax:     h.hft.Reproduction.AnnualMaximum,
		BodyCondition: h.meanBodyConditionOverGestation(),
	})
	if err != nil {
		return 0, err
	}
	return rate * h.Density(), nil
}

func (h *Herbivore) applyMortality(source *rng.Source) error {
	res, err := strategy.Mortality(strategy.MortalityParams{
		Factors:                         h.hft.MortalityFactors(),
		AgeDays:                         h.ageDays,
		IsJuvenile:                      h.IsJuvenile(),
		AnnualJuvenile:                  h.hft.Mortality.BackgroundJuvenile,
		AnnualAdult:                     h.hft.Mortality.BackgroundAdult,
		LifespanYears:                   h.hft.LifeHistory.LifespanYears,
		BodyFatKg:                       h.budget.FatMass(),
		BodyMassKg:                      h.BodyMass(),
		BodyCondition:                   h.BodyCondition(),
		BodyConditionStdev:              h.conditionStdev(),
		CriticalCondition:               h.hft.Mortality.CriticalBodyCondition,
		ShiftBodyConditionForStarvation: h.hft.Mortality.ShiftBodyCondition,
	})
	if err != nil {
		return err
	}

	for factor, rate := range res.PerFactor {
		h.today.Mortality[factor] = rate
	}

	switch h.kind {
	case CohortKind:
		h.density *= 1 - res.TotalRate
	case IndividualKind:
		if source.Bernoulli(res.TotalRate) {
			h.dead = true
		}
	}

	if res.ShiftBodyCondition {
		h.budget.ForceBodyCondition(res.NewMeanBodyCondition)
	}
	return nil
}

func (h *Herbivore) conditionStdev() float64 {
	if h.IsJuvenile() {
		return 0
	}
	return h.hft.Mortality.BodyfatDeviation
}

// Eat applies allocated forage (population-level mass per type,
// digestibility, and the nitrogen carried by the eaten biomass) to this
// herbivore (spec.md §4.3's eat contract). mass must not exceed today's
// memoized demand — violation is a precondition error, never recovered.
func (h *Herbivore) Eat(mass forage.Vector, digestibility forage.Vector, nitrogenKgPerKm2 float64) error {
	if h.Density() <= 0 {
		return &PreconditionError{"eat called with zero density"}
	}
	if !h.demandValid {
		return &PreconditionError{"eat called before get_forage_demands"}
	}
	if err := requireWithinDemand(mass, h.demand); err != nil {
		return err
	}

	density := h.Density()
	massPerInd := mass.Scale(1 / density)

	netEnergy, err := strategy.NetEnergyContent(h.hft.Foraging.NetEnergyModel, h.digestionType(), digestibility)
	if err != nil {
		return err
	}

	energyPerInd := massPerInd.Mul(netEnergy)
	h.budget.MetabolizeEnergy(energyPerInd.Sum())

	h.nitrogen.Ingest(nitrogenKgPerKm2)

	h.today.EatenForagePerInd = h.today.EatenForagePerInd.Add(massPerInd)
	h.today.EnergyIntakePerInd = h.today.EnergyIntakePerInd.Add(energyPerInd)
	bodyMass := h.BodyMass()
	if bodyMass > 0 {
		h.today.EatenForagePerMass = h.today.EatenForagePerInd.Scale(1 / bodyMass)
		h.today.EnergyIntakePerMass = h.today.EnergyIntakePerInd.Scale(1 / bodyMass)
	}

	return nil
}

// TakeNitrogenExcreta returns and clears today's released nitrogen for
// this herbivore, so the driver can return it to the habitat exactly once
// per cohort per day (spec.md §4.6).
func (h *Herbivore) TakeNitrogenExcreta() float64 {
	return h.nitrogen.TakeExcreta()
}

// requireWithinDemand checks mass does not exceed demand on any forage
// type beyond floating-point tolerance (spec.md §4.3's hard-enforced
// precondition).
func requireWithinDemand(mass, demand forage.Vector) error {
	const relTol = 1e-6
	for t := forage.Grass; int(t) < len(mass); t++ {
		m, d := mass.Get(t), demand.Get(t)
		if m > d+d*relTol+1e-9 {
			return &PreconditionError{"eat: requested mass exceeds today's demand for " + t.String()}
		}
	}
	return nil
}
