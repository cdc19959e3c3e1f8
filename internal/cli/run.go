package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ametel/bfcc/internal/interp"
	"github.com/ametel/bfcc/internal/scanner"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Emission EmissionFlags
	MaxSteps int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <program.b>",
		Short: "Interpret a program directly",
		Long: `Interpret a Brainfuck program with the reference interpreter instead of
translating it. Input bytes come from stdin, output bytes go to stdout.
The interpreter has the same observable semantics as the generated C:
wrapping cells at the configured width, and input that leaves the
current cell unchanged at end of input.

Example:
  bfcc run hello.b
  echo -n hi | bfcc run --max-steps 100000 cat.b`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(opts, args[0], cmd)
		},
	}

	opts.Emission.Register(cmd.Flags())
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", 0, "stop after this many instructions (0 = unlimited)")

	return cmd
}

func runProgram(opts *RunOptions, path string, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)

	cfg, err := opts.Emission.Resolve(cmd.Flags())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", path), err)
	}

	stream, err := scanner.Scan(src)
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("invalid program %s", path), err)
	}
	logger.Debug("program scanned", "path", path, "instructions", len(stream), "loops", scanner.CountLoops(stream))

	m, err := interp.New(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid config", err)
	}

	logger.Debug("starting interpreter", "cell_width", cfg.CellWidth, "mem_size", cfg.MemorySize, "initial_cell", cfg.InitialCell)
	if err := m.Run(stream, opts.MaxSteps); err != nil {
		var runtimeErr *interp.RuntimeError
		if errors.As(err, &runtimeErr) {
			return WrapExitError(ExitFailure, "program stopped", err)
		}
		return WrapExitError(ExitCommandError, "interpreter I/O failed", err)
	}
	logger.Debug("program finished")

	return nil
}
