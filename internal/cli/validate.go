package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/savanna-sim/megafauna/internal/hft"
)

var validateConfigInstructionPath string

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Load and validate an instruction file without running a simulation",
	Run: func(cmd *cobra.Command, args []string) {
		instr, hfts, err := hft.Load(validateConfigInstructionPath)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			os.Exit(1)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d HFT(s) valid, %d group(s), output interval %d day(s)\n",
			validateConfigInstructionPath, len(hfts), len(instr.Groups), instr.Output.IntervalDays)
		for _, h := range hfts {
			fmt.Fprintf(out, "  - %s\n", h.Name)
		}
	},
}

func init() {
	validateConfigCmd.Flags().StringVar(&validateConfigInstructionPath, "instruction", "", "path to the TOML instruction file (required)")
	validateConfigCmd.MarkFlagRequired("instruction")
}
