// Package output implements the aggregated per-day datapoints (spec.md
// §3/§8): HerbivoreData, HabitatData, CombinedData, their weighted-average
// merge rule, and a TSV table writer for multi-day runs.
package output

import (
	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/savanna-sim/megafauna/internal/herbivore"
	"github.com/savanna-sim/megafauna/internal/strategy"
)

// HerbivoreData is one HFT's daily output record. Continuous state fields
// merge by weighted average (weight DatapointCount); eaten forage and
// offspring are flows and merge by sum (spec.md §8).
type HerbivoreData struct {
	HFTName string

	Density       float64
	MassDensity   float64
	BodyFat       float64
	AgeYears      float64
	Expenditure   float64
	BoundNitrogen float64

	Offspring         float64
	EatenForagePerInd forage.Vector

	EatenForagePerMass  forage.Vector
	EnergyIntakePerInd  forage.Vector
	EnergyIntakePerMass forage.Vector
	EnergyContent       forage.Vector

	Mortality map[strategy.MortalityFactor]float64

	DatapointCount float64
}

// FromHerbivoreOutput converts one cohort's daily Output into a
// single-datapoint HerbivoreData record ready to merge with others.
func FromHerbivoreOutput(hftName string, o herbivore.Output) HerbivoreData {
	mortality := make(map[strategy.MortalityFactor]float64, len(o.Mortality))
	for k, v := range o.Mortality {
		mortality[k] = v
	}
	return HerbivoreData{
		HFTName:             hftName,
		Density:             o.Density,
		MassDensity:         o.MassDensity,
		BodyFat:             o.BodyFat,
		AgeYears:            o.AgeYears,
		Expenditure:         o.Expenditure,
		BoundNitrogen:       o.BoundNitrogen,
		Offspring:           o.Offspring,
		EatenForagePerInd:   o.EatenForagePerInd,
		EatenForagePerMass:  o.EatenForagePerMass,
		EnergyIntakePerInd:  o.EnergyIntakePerInd,
		EnergyIntakePerMass: o.EnergyIntakePerMass,
		EnergyContent:       o.EnergyContent,
		Mortality:           mortality,
		DatapointCount:      1,
	}
}

// Merge combines h with other by weighted average on continuous fields
// and sum on flow fields. merge(x, empty) == x since an empty record
// carries DatapointCount 0 and contributes no weight.
func (h HerbivoreData) Merge(other HerbivoreData) HerbivoreData {
	if h.DatapointCount == 0 {
		return other
	}
	if other.DatapointCount == 0 {
		return h
	}

	total := h.DatapointCount + other.DatapointCount
	wSelf := h.DatapointCount / total
	wOther := other.DatapointCount / total

	name := h.HFTName
	if name == "" {
		name = other.HFTName
	}

	merged := HerbivoreData{
		HFTName:       name,
		Density:       h.Density*wSelf + other.Density*wOther,
		MassDensity:   h.MassDensity*wSelf + other.MassDensity*wOther,
		BodyFat:       h.BodyFat*wSelf + other.BodyFat*wOther,
		AgeYears:      h.AgeYears*wSelf + other.AgeYears*wOther,
		Expenditure:   h.Expenditure*wSelf + other.Expenditure*wOther,
		BoundNitrogen: h.BoundNitrogen*wSelf + other.BoundNitrogen*wOther,

		Offspring:           h.Offspring + other.Offspring,
		EatenForagePerInd:   h.EatenForagePerInd.Add(other.EatenForagePerInd),
		EatenForagePerMass:  h.EatenForagePerMass.Add(other.EatenForagePerMass),
		EnergyIntakePerInd:  h.EnergyIntakePerInd.Add(other.EnergyIntakePerInd),
		EnergyIntakePerMass: h.EnergyIntakePerMass.Add(other.EnergyIntakePerMass),
		EnergyContent:       h.EnergyContent.Scale(wSelf).Add(other.EnergyContent.Scale(wOther)),

		Mortality:      mergeMortality(h.Mortality, other.Mortality, wSelf, wOther),
		DatapointCount: total,
	}
	return merged
}

func mergeMortality(a, b map[strategy.MortalityFactor]float64, wa, wb float64) map[strategy.MortalityFactor]float64 {
	merged := make(map[strategy.MortalityFactor]float64, len(a)+len(b))
	for factor, rate := range a {
		merged[factor] = rate * wa
	}
	for factor, rate := range b {
		merged[factor] += rate * wb
	}
	return merged
}

// HabitatData is one habitat's daily output record. AirTemperatureC and
// TotalMass/AvgDigestibility are continuous state and merge by weighted
// average; ExcretedNitrogenKgKm2 is a flow and merges by sum.
type HabitatData struct {
	TotalMass       float64
	AvgDigestibility float64
	AirTemperatureC float64
	SnowDepthCm     float64

	ExcretedNitrogenKgKm2 float64

	DatapointCount float64
}

// FromHabitatForage builds a single-datapoint HabitatData record from a
// day's forage state and environment reading.
func FromHabitatForage(f forage.HabitatForage, airTempC, snowDepthCm, excretedNitrogen float64) HabitatData {
	return HabitatData{
		TotalMass:             f.TotalMass(),
		AvgDigestibility:      f.AvgDigestibility(),
		AirTemperatureC:       airTempC,
		SnowDepthCm:           snowDepthCm,
		ExcretedNitrogenKgKm2: excretedNitrogen,
		DatapointCount:        1,
	}
}

// Merge combines h with other by weighted average on continuous fields
// and sum on the excreted-nitrogen flow.
func (h HabitatData) Merge(other HabitatData) HabitatData {
	if h.DatapointCount == 0 {
		return other
	}
	if other.DatapointCount == 0 {
		return h
	}

	total := h.DatapointCount + other.DatapointCount
	wSelf := h.DatapointCount / total
	wOther := other.DatapointCount / total

	return HabitatData{
		TotalMass:             h.TotalMass*wSelf + other.TotalMass*wOther,
		AvgDigestibility:      h.AvgDigestibility*wSelf + other.AvgDigestibility*wOther,
		AirTemperatureC:       h.AirTemperatureC*wSelf + other.AirTemperatureC*wOther,
		SnowDepthCm:           h.SnowDepthCm*wSelf + other.SnowDepthCm*wOther,
		ExcretedNitrogenKgKm2: h.ExcretedNitrogenKgKm2 + other.ExcretedNitrogenKgKm2,
		DatapointCount:        total,
	}
}

// CombinedData is one day's full snapshot across every HFT and the
// habitat, the unit of output the driver flushes at a reporting-interval
// boundary.
type CombinedData struct {
	Day      int
	Habitat  HabitatData
	ByHFT    map[string]HerbivoreData
}

// NewCombinedData builds an empty combined record for the given day.
func NewCombinedData(day int) CombinedData {
	return CombinedData{Day: day, ByHFT: make(map[string]HerbivoreData)}
}

// Merge combines c with other field-by-field. Day is taken from c unless
// c is an empty placeholder (no HFT data and no habitat datapoint), in which case
// other's Day is kept — this lets an empty accumulator merge with the
// first real record without special-casing the caller.
func (c CombinedData) Merge(other CombinedData) CombinedData {
	day := c.Day
	if len(c.ByHFT) == 0 && c.Habitat.DatapointCount == 0 {
		day = other.Day
	}

	merged := CombinedData{Day: day, Habitat: c.Habitat.Merge(other.Habitat), ByHFT: make(map[string]HerbivoreData, len(c.ByHFT)+len(other.ByHFT))}
	for name, d := range c.ByHFT {
		merged.ByHFT[name] = d
	}
	for name, d := range other.ByHFT {
		if existing, ok := merged.ByHFT[name]; ok {
			merged.ByHFT[name] = existing.Merge(d)
		} else {
			merged.ByHFT[name] = d
		}
	}
	return merged
}
