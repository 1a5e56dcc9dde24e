package sim

import (
	"fmt"
	"log/slog"

	"github.com/savanna-sim/megafauna/internal/habitat"
	"github.com/savanna-sim/megafauna/internal/hft"
	"github.com/savanna-sim/megafauna/internal/output"
)

// World owns the instruction-file-derived, read-only HFT list shared by
// every unit it creates (spec.md §6's host integration contract:
// World::new, World::create_simulation_unit, World::simulate_day).
type World struct {
	instruction *hft.Instruction
	hfts        []*hft.HFT
	units       []*SimulationUnit
}

// New loads and validates an instruction file and returns a World ready
// to create simulation units.
func New(instructionPath string) (*World, error) {
	instr, hfts, err := hft.Load(instructionPath)
	if err != nil {
		return nil, fmt.Errorf("sim: load instruction file: %w", err)
	}
	return &World{instruction: instr, hfts: hfts}, nil
}

// Instruction returns the decoded instruction file.
func (w *World) Instruction() *hft.Instruction { return w.instruction }

// HFTs returns the resolved, validated HFT list shared by every unit.
func (w *World) HFTs() []*hft.HFT { return w.hfts }

// Units returns every simulation unit created so far.
func (w *World) Units() []*SimulationUnit { return w.units }

// CreateSimulationUnit creates and registers a new unit over h, seeded
// from the instruction file's simulation.seed (offset per unit so
// multiple units over the same instruction file don't share a PRNG
// sequence) and establish_interval_days.
func (w *World) CreateSimulationUnit(h habitat.Habitat) *SimulationUnit {
	seed := w.instruction.Simulation.Seed + int64(len(w.units))
	unit := NewSimulationUnit(h, w.hfts, seed, w.instruction.Simulation.EstablishIntervalDays)
	w.units = append(w.units, unit)
	return unit
}

// SimulateDay advances every unit by one day, in registration order
// (spec.md §5: units are independent, so this order has no effect on any
// individual unit's result — it only fixes iteration order for callers
// that want determinism across a multi-unit run).
func (w *World) SimulateDay(dayOfYear int, doHerbivores bool) error {
	for _, unit := range w.units {
		if err := unit.SimulateDay(dayOfYear, doHerbivores); err != nil {
			return fmt.Errorf("sim: unit %s day %d: %w", unit.ID, dayOfYear, err)
		}
	}
	return nil
}

// Run advances every unit for the given number of days starting at
// startDayOfYear (wrapping at 365), flushing each unit's accumulator to
// its table writer every intervalDays days and on the final day
// (spec.md §4.8's "driver flushes and resets ... at the reporting
// interval boundary"). tables maps a unit's index (in Units() order) to
// its writer; a unit without an entry is simulated but not written.
func (w *World) Run(days int, startDayOfYear int, doHerbivores bool, intervalDays int, tables map[int]*output.Table) error {
	if intervalDays <= 0 {
		intervalDays = 1
	}

	for day := 0; day < days; day++ {
		dayOfYear := (startDayOfYear + day) % 365

		for _, unit := range w.units {
			if err := unit.SimulateDay(dayOfYear, doHerbivores); err != nil {
				return fmt.Errorf("sim: unit %s day %d: %w", unit.ID, dayOfYear, err)
			}
		}

		boundary := (day+1)%intervalDays == 0 || day == days-1
		if !boundary {
			continue
		}
		for i, unit := range w.units {
			tbl, ok := tables[i]
			if !ok {
				unit.Flush()
				continue
			}
			acc := unit.Flush()
			if err := tbl.WriteRow(acc); err != nil {
				return fmt.Errorf("sim: write output row: %w", err)
			}
			slog.Info(output.SummaryLine(acc), "unit", unit.ID)
		}
	}
	return nil
}
