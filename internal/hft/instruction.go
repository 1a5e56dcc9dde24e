package hft

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// OutputConfig mirrors the instruction file's [output] table (spec.md §6).
type OutputConfig struct {
	Directory         string   `toml:"directory"`
	IntervalDays      int      `toml:"interval_days"`
	DateFormat        string   `toml:"date_format"`
	Variables         []string `toml:"variables"`
}

// SimulationConfig mirrors the instruction file's [simulation] table.
type SimulationConfig struct {
	Seed                int64 `toml:"seed"`
	Days                int   `toml:"days"`
	EstablishIntervalDays int `toml:"establish_interval_days"`
}

// Instruction is the decoded instruction file: output.*, simulation.*,
// group.* tables, and an [[hft]] array (spec.md §6).
type Instruction struct {
	Output     OutputConfig          `toml:"output"`
	Simulation SimulationConfig      `toml:"simulation"`
	Groups     map[string]HFT        `toml:"group"`
	HFTs       []HFT                 `toml:"hft"`
}

// Load reads and decodes a TOML instruction file, resolves group
// inheritance, validates every HFT, and returns the resolved, immutable
// list. Configuration errors (spec.md §7) name the offending key.
func Load(path string) (*Instruction, []*HFT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("hft: read instruction file: %w", err)
	}

	var instr Instruction
	if _, err := toml.Decode(string(data), &instr); err != nil {
		return nil, nil, fmt.Errorf("hft: decode instruction file: %w", err)
	}

	hfts := make([]*HFT, 0, len(instr.HFTs))
	for i := range instr.HFTs {
		h := instr.HFTs[i]
		resolved, err := resolveGroups(&h, instr.Groups)
		if err != nil {
			return nil, nil, err
		}
		if err := Validate(resolved); err != nil {
			return nil, nil, err
		}
		hfts = append(hfts, resolved)
	}

	return &instr, hfts, nil
}
