package hft

import "github.com/savanna-sim/megafauna/internal/strategy"

// Validate resolves every enum string on h into its typed strategy
// constant, checks mandatory keys, and checks keys that become mandatory
// only when a particular model is selected (spec.md §6/§7). It mutates h
// in place (filling the typed fields alongside the raw strings the TOML
// decoder populated) and returns the first error found, naming the
// offending key.
func Validate(h *HFT) error {
	if h.Name == "" {
		return missingKey("", "name")
	}

	if err := validateBodyMass(h); err != nil {
		return err
	}
	if err := validateBodyFat(h); err != nil {
		return err
	}
	if err := validateDigestion(h); err != nil {
		return err
	}
	if err := validateForaging(h); err != nil {
		return err
	}
	if err := validateExpenditure(h); err != nil {
		return err
	}
	if err := validateReproduction(h); err != nil {
		return err
	}
	if err := validateMortality(h); err != nil {
		return err
	}
	if h.Establishment.Density <= 0 {
		return missingKey(h.Name, "establishment.density")
	}
	return nil
}

func validateBodyMass(h *HFT) error {
	if h.BodyMass.AdultMale <= 0 {
		return missingKey(h.Name, "body_mass.male")
	}
	if h.BodyMass.AdultFemale <= 0 {
		return missingKey(h.Name, "body_mass.female")
	}
	return nil
}

func validateBodyFat(h *HFT) error {
	if h.BodyFat.Maximum <= 0 {
		return missingKey(h.Name, "body_fat.maximum")
	}
	return nil
}

func validateDigestion(h *HFT) error {
	switch h.Digestion.TypeName {
	case "Ruminant":
		h.Digestion.Type = strategy.Ruminant
	case "Hindgut":
		h.Digestion.Type = strategy.Hindgut
	default:
		return invalidEnum(h.Name, "digestion.type", h.Digestion.TypeName, []string{"Ruminant", "Hindgut"})
	}

	switch h.Digestion.LimitName {
	case "IlliusGordon1992":
		h.Digestion.Limit = strategy.IlliusGordon1992
	case "Allometric":
		h.Digestion.Limit = strategy.Allometric
		if h.Digestion.AllometricCoeff <= 0 {
			return missingKey(h.Name, "digestion.allometric_coefficient")
		}
	case "FixedFraction":
		h.Digestion.Limit = strategy.FixedFraction
		if h.Digestion.FixedFraction <= 0 {
			return missingKey(h.Name, "digestion.fixed_fraction")
		}
	case "None":
		h.Digestion.Limit = strategy.NoDigestiveLimit
	default:
		return invalidEnum(h.Name, "digestion.limit", h.Digestion.LimitName, strategy.ValidDigestiveLimitModels())
	}
	return nil
}

func validateForaging(h *HFT) error {
	switch h.Foraging.DietComposerName {
	case "PureGrazer":
		h.Foraging.DietComposer = strategy.PureGrazer
	case "":
		return missingKey(h.Name, "foraging.diet_composer")
	default:
		return invalidEnum(h.Name, "foraging.diet_composer", h.Foraging.DietComposerName, strategy.ValidDietComposers())
	}

	switch h.Foraging.NetEnergyModelName {
	case "Default":
		h.Foraging.NetEnergyModel = strategy.NetEnergyDefault
	case "":
		return missingKey(h.Name, "foraging.net_energy_model")
	default:
		return invalidEnum(h.Name, "foraging.net_energy_model", h.Foraging.NetEnergyModelName, strategy.ValidNetEnergyModels())
	}

	if len(h.Foraging.Limits) == 0 {
		h.Foraging.resolvedLimits = map[strategy.ForagingLimit]bool{
			strategy.DigestiveLimitActive:  true,
			strategy.IntakeRateLimitActive: true,
		}
		return nil
	}

	resolved := make(map[strategy.ForagingLimit]bool, len(h.Foraging.Limits))
	for name, selected := range h.Foraging.Limits {
		if !selected {
			continue
		}
		switch name {
		case "Digestive":
			resolved[strategy.DigestiveLimitActive] = true
		case "IntakeRate":
			resolved[strategy.IntakeRateLimitActive] = true
		default:
			return invalidEnum(h.Name, "foraging.limits", name, strategy.ValidForagingLimits())
		}
	}
	h.Foraging.resolvedLimits = resolved
	return nil
}

func validateExpenditure(h *HFT) error {
	if len(h.Expenditure.ComponentNames) == 0 {
		return missingKey(h.Name, "expenditure.components")
	}

	components := make(map[strategy.ExpenditureComponent]bool, len(h.Expenditure.ComponentNames))
	wantsThermoreg := false
	for _, name := range h.Expenditure.ComponentNames {
		switch name {
		case "Taylor1981":
			components[strategy.Taylor1981] = true
		case "Allometric":
			components[strategy.AllometricExpenditure] = true
			if h.Expenditure.AllometricCoeff <= 0 {
				return missingKey(h.Name, "expenditure.allometric_coefficient")
			}
		case "Zhu2018":
			components[strategy.Zhu2018] = true
		case "Thermoregulation":
			components[strategy.Thermoregulation] = true
			wantsThermoreg = true
		default:
			return invalidEnum(h.Name, "expenditure.components", name, strategy.ValidExpenditureComponents())
		}
	}
	h.Expenditure.Components = components

	if !wantsThermoreg {
		return nil
	}

	switch h.Expenditure.ConductanceName {
	case "BradleyDeavers1980":
		h.Expenditure.Conductance = strategy.BradleyDeavers1980
	case "CuylerOeritsland2004":
		h.Expenditure.Conductance = strategy.CuylerOeritsland2004
	default:
		return invalidEnum(h.Name, "expenditure.thermoregulation_conductance", h.Expenditure.ConductanceName, strategy.ValidConductanceModels())
	}
	if h.Expenditure.ConductanceCoeff <= 0 {
		return missingKey(h.Name, "expenditure.thermoregulation_conductance_coefficient")
	}
	if h.Expenditure.CoreTemperatureC == 0 {
		return missingKey(h.Name, "expenditure.core_body_temperature")
	}
	return nil
}

func validateReproduction(h *HFT) error {
	switch h.Reproduction.ModelName {
	case "IlliusOConnor2000":
		h.Reproduction.Model = strategy.IlliusOConnor2000
	case "ConstantMaximum":
		h.Reproduction.Model = strategy.ConstantMaximum
	case "Linear":
		h.Reproduction.Model = strategy.Linear
	case "None":
		h.Reproduction.Model = strategy.NoReproduction
		if h.Reproduction.Model.ForcesNoJuvenilePhase() {
			h.LifeHistory.PhysicalMaturityMale = 1
			h.LifeHistory.PhysicalMaturityFemale = 1
		}
		return nil
	default:
		return invalidEnum(h.Name, "reproduction.model", h.Reproduction.ModelName, strategy.ValidReproductionModels())
	}

	if h.Reproduction.AnnualMaximum <= 0 {
		return missingKey(h.Name, "reproduction.annual_maximum")
	}
	if h.Reproduction.BreedingLengthDay <= 0 {
		return missingKey(h.Name, "reproduction.breeding_season_length")
	}
	return nil
}

func validateMortality(h *HFT) error {
	if len(h.Mortality.Factors) == 0 {
		return missingKey(h.Name, "mortality.factors")
	}

	resolved := make(map[strategy.MortalityFactor]bool, len(h.Mortality.Factors))
	wantsStarvationIOC := false
	for name, selected := range h.Mortality.Factors {
		if !selected {
			continue
		}
		switch name {
		case "Background":
			resolved[strategy.Background] = true
		case "Lifespan":
			resolved[strategy.Lifespan] = true
		case "StarvationThreshold":
			resolved[strategy.StarvationThreshold] = true
		case "StarvationIlliusOConnor2000":
			resolved[strategy.StarvationIlliusOConnor2000] = true
			wantsStarvationIOC = true
		default:
			return invalidEnum(h.Name, "mortality.factors", name, strategy.ValidMortalityFactors())
		}
	}
	h.Mortality.resolvedFactors = resolved

	if wantsStarvationIOC && h.Mortality.CriticalBodyCondition <= 0 {
		return missingKey(h.Name, "mortality.critical_body_condition")
	}
	return nil
}
