package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/savanna-sim/megafauna/internal/checkpoint"
	"github.com/savanna-sim/megafauna/internal/habitat"
	"github.com/savanna-sim/megafauna/internal/output"
	"github.com/savanna-sim/megafauna/internal/sim"
)

var (
	runInstructionPath string
	runForcingCSVPath  string
	runCheckpointDB    string
	runSeedOverride    int64
	runDays            int
	runStartDayOfYear  int
	runOutPath         string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a multi-day simulation from an instruction file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSimulation(); err != nil {
			slog.Error("run failed", "error", err)
			os.Exit(1)
		}
	},
}

func runSimulation() error {
	world, err := sim.New(runInstructionPath)
	if err != nil {
		return err
	}
	if runSeedOverride != 0 {
		world.Instruction().Simulation.Seed = runSeedOverride
	}

	h, err := buildHabitat()
	if err != nil {
		return err
	}
	unit := world.CreateSimulationUnit(h)
	slog.Info("simulation unit created", "unit", unit.ID, "hft_count", len(world.HFTs()))

	var store *checkpoint.Store
	if runCheckpointDB != "" {
		store, err = checkpoint.Open(runCheckpointDB)
		if err != nil {
			return fmt.Errorf("open checkpoint db: %w", err)
		}
		defer store.Close()
	}

	out, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()

	dateFormat := world.Instruction().Output.DateFormat
	epoch := time.Now().UTC()
	table := output.NewTable(out, epoch, dateFormat)

	intervalDays := world.Instruction().Output.IntervalDays
	if intervalDays <= 0 {
		intervalDays = 1
	}

	days := runDays
	if days <= 0 {
		days = world.Instruction().Simulation.Days
	}

	for day := 0; day < days; day++ {
		dayOfYear := (runStartDayOfYear + day) % 365
		if err := world.SimulateDay(dayOfYear, true); err != nil {
			return err
		}

		if store != nil {
			if err := store.SaveDay(unit.ID.String(), unit.Today()); err != nil {
				slog.Warn("checkpoint write failed", "day", day, "error", err)
			}
		}

		boundary := (day+1)%intervalDays == 0 || day == days-1
		if !boundary {
			continue
		}
		acc := unit.Flush()
		if err := table.WriteRow(acc); err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
		slog.Info(output.SummaryLine(acc))
	}

	return nil
}

func buildHabitat() (habitat.Habitat, error) {
	if runForcingCSVPath != "" {
		return habitat.LoadCSVForcing(runForcingCSVPath)
	}
	return habitat.NewDemo(habitat.DefaultDemoConfig()), nil
}

func openOutput() (*os.File, error) {
	if runOutPath == "" || runOutPath == "-" {
		return os.Stdout, nil
	}
	return os.Create(runOutPath)
}

func init() {
	runCmd.Flags().StringVar(&runInstructionPath, "instruction", "", "path to the TOML instruction file (required)")
	runCmd.MarkFlagRequired("instruction")
	runCmd.Flags().StringVar(&runForcingCSVPath, "forcing-csv", "", "day-indexed forage/weather forcing table (default: synthetic demo habitat)")
	runCmd.Flags().StringVar(&runCheckpointDB, "checkpoint-db", "", "optional SQLite path for a daily snapshot checkpoint")
	runCmd.Flags().Int64Var(&runSeedOverride, "seed", 0, "override the instruction file's simulation.seed (0 = use file value)")
	runCmd.Flags().IntVar(&runDays, "days", 0, "number of days to simulate (0 = use instruction file's simulation.days)")
	runCmd.Flags().IntVar(&runStartDayOfYear, "start-day", 0, "day of year (0-364) the run starts on")
	runCmd.Flags().StringVar(&runOutPath, "out", "-", "output TSV path (- for stdout)")
}
