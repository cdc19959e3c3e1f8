package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ametel/bfcc/internal/emitter"
)

// EmissionFlags are the per-command flags mirroring emitter.Config. They
// are registered by every command that emits or interprets a program.
type EmissionFlags struct {
	ConfigFile  string
	CellWidth   int
	MemSize     int
	InitialCell int
}

// Register adds the emission config flags to a flag set.
func (ef *EmissionFlags) Register(flags *pflag.FlagSet) {
	flags.StringVar(&ef.ConfigFile, "config", "", "YAML file with cell_width, mem_size and initial_cell")
	flags.IntVar(&ef.CellWidth, "cell-width", 8, "cell width in bits (8|16|32|64)")
	flags.IntVar(&ef.MemSize, "mem-size", 30000, "number of cells on the tape")
	flags.IntVar(&ef.InitialCell, "initial-cell", 0, "starting cursor index")
}

// Resolve builds the emission config: defaults, then the config file if
// given, then any flag the user set explicitly. Flags always win over the
// file so a config file can be shared and overridden per invocation.
func (ef *EmissionFlags) Resolve(flags *pflag.FlagSet) (emitter.Config, error) {
	cfg := emitter.DefaultConfig()

	if ef.ConfigFile != "" {
		data, err := os.ReadFile(ef.ConfigFile)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", ef.ConfigFile, err)
		}
	}

	if flags.Changed("cell-width") {
		cfg.CellWidth = ef.CellWidth
	}
	if flags.Changed("mem-size") {
		cfg.MemorySize = ef.MemSize
	}
	if flags.Changed("initial-cell") {
		cfg.InitialCell = ef.InitialCell
	}

	return cfg, nil
}
