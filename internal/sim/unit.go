// Package sim implements the simulation driver: SimulationUnit owns one
// habitat and its per-HFT populations and advances them one day at a
// time; World owns the shared, validated HFT list and creates units
// (spec.md §4.7, §5).
package sim

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/savanna-sim/megafauna/internal/distribute"
	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/savanna-sim/megafauna/internal/habitat"
	"github.com/savanna-sim/megafauna/internal/herbivore"
	"github.com/savanna-sim/megafauna/internal/hft"
	"github.com/savanna-sim/megafauna/internal/output"
	"github.com/savanna-sim/megafauna/internal/population"
	"github.com/savanna-sim/megafauna/internal/rng"
)

// SimulationUnit owns one (habitat, populations) pair for the whole run
// (spec.md §3's "Simulation unit"). Every daily operation on a unit is
// sequential and single-threaded; different units share nothing mutable
// (spec.md §5).
type SimulationUnit struct {
	ID uuid.UUID

	habitat     habitat.Habitat
	hfts        []*hft.HFT
	populations map[string]*population.Population
	rng         *rng.Source

	establishIntervalDays  int
	establishedOnce        bool
	daysSinceEstablishment int

	runDay                 int
	todayExcretedNitrogen  float64
	accumulator            output.CombinedData
}

// NewSimulationUnit creates a unit over the given habitat and HFT list,
// with an empty population per HFT.
func NewSimulationUnit(h habitat.Habitat, hfts []*hft.HFT, seed int64, establishIntervalDays int) *SimulationUnit {
	populations := make(map[string]*population.Population, len(hfts))
	for _, hf := range hfts {
		populations[hf.Name] = population.New(hf)
	}
	return &SimulationUnit{
		ID:                    uuid.New(),
		habitat:               h,
		hfts:                  hfts,
		populations:           populations,
		rng:                   rng.New(seed),
		establishIntervalDays: establishIntervalDays,
		accumulator:           output.NewCombinedData(0),
	}
}

// Population returns the population for the named HFT, or nil if unknown.
func (u *SimulationUnit) Population(hftName string) *population.Population {
	return u.populations[hftName]
}

// Accumulator returns the output accumulated since the last Flush.
func (u *SimulationUnit) Accumulator() output.CombinedData { return u.accumulator }

// Today returns a fresh CombinedData snapshot of the day just simulated,
// without touching the interval accumulator — used by callers (e.g. a
// per-day checkpoint) that need every day's record regardless of the
// reporting interval.
func (u *SimulationUnit) Today() output.CombinedData { return u.snapshot() }

// Flush returns the accumulated output and resets the accumulator,
// called by the driver at a reporting-interval boundary (spec.md §4.8).
func (u *SimulationUnit) Flush() output.CombinedData {
	acc := u.accumulator
	u.accumulator = output.NewCombinedData(u.runDay)
	return acc
}

// SimulateDay advances this unit by one day (spec.md §4.7): environment
// refresh, then — if the HFT list is non-empty and doHerbivores — the
// establishment policy, per-cohort simulate_day/purge, and the foraging
// and nitrogen-return phases; finally the day's output is merged into the
// accumulator.
func (u *SimulationUnit) SimulateDay(dayOfYear int, doHerbivores bool) error {
	if err := u.habitat.InitDay(dayOfYear); err != nil {
		return err
	}
	u.todayExcretedNitrogen = 0

	if doHerbivores && len(u.hfts) > 0 {
		u.applyEstablishmentPolicy()

		for _, hf := range u.hfts {
			if err := u.advancePopulation(hf, dayOfYear); err != nil {
				return err
			}
		}

		if err := u.forage(); err != nil {
			return err
		}
	}

	u.accumulator = u.accumulator.Merge(u.snapshot())
	u.runDay++
	return nil
}

// applyEstablishmentPolicy re-seeds every extinct population when initial
// establishment hasn't happened yet, or the cadence interval has elapsed
// (spec.md §4.7 step 2.1).
func (u *SimulationUnit) applyEstablishmentPolicy() {
	due := !u.establishedOnce ||
		(u.establishIntervalDays > 0 && u.daysSinceEstablishment >= u.establishIntervalDays)
	if !due {
		u.daysSinceEstablishment++
		return
	}

	reestablishedAny := false
	for _, hf := range u.hfts {
		pop := u.populations[hf.Name]
		if !pop.IsExtinct() {
			continue
		}
		if err := pop.Create(hf.Establishment.Density, hf.Establishment.AgeRange.Min, hf.Establishment.AgeRange.Max); err != nil {
			slog.Warn("sim: establishment failed", "unit", u.ID, "hft", hf.Name, "error", err)
			continue
		}
		slog.Info("sim: population established", "unit", u.ID, "hft", hf.Name, "density", hf.Establishment.Density)
		reestablishedAny = true
	}
	u.establishedOnce = true
	if reestablishedAny {
		u.daysSinceEstablishment = 0
	}
}

// advancePopulation runs simulate_day on every live herbivore of one HFT,
// inserts accumulated offspring, and purges the dead (spec.md §4.7 step
// 2.2).
func (u *SimulationUnit) advancePopulation(hf *hft.HFT, dayOfYear int) error {
	pop := u.populations[hf.Name]
	env := u.habitat.Environment()

	var totalOffspring float64
	var firstErr error
	pop.IterateLive(func(h *herbivore.Herbivore) {
		if firstErr != nil {
			return
		}
		offspring, err := h.SimulateDay(dayOfYear, env, u.rng)
		if err != nil {
			firstErr = err
			return
		}
		totalOffspring += offspring
	})
	if firstErr != nil {
		return firstErr
	}

	if totalOffspring > 0 {
		if err := pop.CreateOffspring(totalOffspring); err != nil {
			return err
		}
	}
	pop.PurgeDead()
	return nil
}

// forage runs the distributor over every live cohort's demand across all
// HFTs sharing this habitat, feeds the allocation back to each cohort,
// and closes the forage-mass and nitrogen loops with the habitat
// (spec.md §4.7 step 2.3–2.4, §4.6).
func (u *SimulationUnit) forage() error {
	available := u.habitat.AvailableForage()

	var demands []distribute.Demand
	var firstErr error
	for _, hf := range u.hfts {
		u.populations[hf.Name].IterateLive(func(h *herbivore.Herbivore) {
			if firstErr != nil {
				return
			}
			demand, err := h.GetForageDemands(available)
			if err != nil {
				firstErr = err
				return
			}
			demands = append(demands, distribute.Demand{Key: h, Mass: demand})
		})
	}
	if firstErr != nil {
		return firstErr
	}

	result := distribute.Equally(available.Mass, demands)

	var grandTotal forage.Vector
	var totalExcreta float64
	for _, hf := range u.hfts {
		ratio := hf.Foraging.ForageNitrogenRatio
		u.populations[hf.Name].IterateLive(func(h *herbivore.Herbivore) {
			if firstErr != nil {
				return
			}
			allocated := result.Allocations[h]
			nitrogenKg := allocated.Sum() * ratio
			if err := h.Eat(allocated, available.Digestibility, nitrogenKg); err != nil {
				firstErr = err
				return
			}
			grandTotal = grandTotal.Add(allocated)
			totalExcreta += h.TakeNitrogenExcreta()
		})
	}
	if firstErr != nil {
		return firstErr
	}

	if err := u.habitat.RemoveEatenForage(grandTotal); err != nil {
		return err
	}
	u.habitat.AddExcretedNitrogen(totalExcreta)
	u.todayExcretedNitrogen = totalExcreta
	return nil
}

// snapshot builds today's CombinedData: one density-weighted HerbivoreData
// per HFT (cohorts of the same HFT merge by Density as the weight, so a
// bigger cohort counts more toward the day's average body condition) plus
// the habitat's reading.
func (u *SimulationUnit) snapshot() output.CombinedData {
	combined := output.NewCombinedData(u.runDay)

	for _, hf := range u.hfts {
		var hftData output.HerbivoreData
		u.populations[hf.Name].IterateLive(func(h *herbivore.Herbivore) {
			rec := output.FromHerbivoreOutput(hf.Name, h.Today())
			rec.DatapointCount = h.Density()
			hftData = hftData.Merge(rec)
		})
		if hftData.DatapointCount > 0 {
			combined.ByHFT[hf.Name] = hftData
		}
	}

	env := u.habitat.Environment()
	combined.Habitat = output.FromHabitatForage(u.habitat.AvailableForage(), env.AirTemperatureC, env.SnowDepthCm, u.todayExcretedNitrogen)
	return combined
}
