package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ametel/bfcc/internal/emitter"
	"github.com/ametel/bfcc/internal/scanner"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Emission EmissionFlags
	Output   string // output file path; "-" writes the C to stdout
}

// TranslationSummary describes one completed translation.
type TranslationSummary struct {
	Source       string `json:"source"`
	Instructions int    `json:"instructions"`
	Loops        int    `json:"loops"`
	CellWidth    int    `json:"cell_width"`
	MemorySize   int    `json:"mem_size"`
	InitialCell  int    `json:"initial_cell"`
	Output       string `json:"output,omitempty"`
	Bytes        int    `json:"bytes"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <program.b>",
		Short: "Translate a Brainfuck program to C",
		Long: `Translate a Brainfuck program into a standalone C source file.

The program is scanned and bracket-validated, then each instruction is
emitted as one C statement inside the fixed runtime wrapper. The output
file defaults to the input path with a .c extension; pass -o - to write
the C to stdout.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // errors are reported through the formatter
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (- for stdout)")
	opts.Emission.Register(cmd.Flags())

	return cmd
}

func runTranslate(opts *TranslateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := opts.Emission.Resolve(cmd.Flags())
	if err != nil {
		return outputTranslateError(formatter, ExitCommandError, ErrCodeConfigFile, err.Error())
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return outputTranslateError(formatter, ExitCommandError, ErrCodeReadFailed,
			fmt.Sprintf("reading %s: %v", path, err))
	}
	formatter.VerboseLog("Read %d byte(s) from %s", len(src), path)

	stream, err := scanner.Scan(src)
	if err != nil {
		var structErr *scanner.StructuralError
		if errors.As(err, &structErr) {
			// Defect in the source program, not in the invocation.
			return outputTranslateError(formatter, ExitFailure, structErr.Code,
				fmt.Sprintf("%s:%s: %s", path, structErr.Pos, structErr.Message))
		}
		return outputTranslateError(formatter, ExitFailure, ErrCodeGeneric, err.Error())
	}
	formatter.VerboseLog("Scanned %d instruction(s), %d loop(s)", len(stream), scanner.CountLoops(stream))

	prog, err := emitter.Emit(stream, cfg)
	if err != nil {
		var cfgErr *emitter.ConfigError
		if errors.As(err, &cfgErr) {
			return outputTranslateError(formatter, ExitCommandError, cfgErr.Code, cfgErr.Message)
		}
		return outputTranslateError(formatter, ExitCommandError, ErrCodeGeneric, err.Error())
	}

	text := prog.Render()
	outPath := opts.Output
	if outPath == "" {
		outPath = derivedOutputPath(path)
	}

	if outPath == "-" {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), text); err != nil {
			return outputTranslateError(formatter, ExitCommandError, ErrCodeWrite, err.Error())
		}
		return nil
	}

	if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
		return outputTranslateError(formatter, ExitCommandError, ErrCodeWrite,
			fmt.Sprintf("writing %s: %v", outPath, err))
	}

	summary := TranslationSummary{
		Source:       path,
		Instructions: prog.Statements,
		Loops:        scanner.CountLoops(stream),
		CellWidth:    cfg.CellWidth,
		MemorySize:   cfg.MemorySize,
		InitialCell:  cfg.InitialCell,
		Output:       outPath,
		Bytes:        len(text),
	}
	return outputTranslateSuccess(formatter, summary)
}

// derivedOutputPath swaps the source extension for .c.
func derivedOutputPath(path string) string {
	for _, ext := range []string{".b", ".bf"} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext) + ".c"
		}
	}
	return path + ".c"
}

func outputTranslateSuccess(formatter *OutputFormatter, summary TranslationSummary) error {
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	fmt.Fprintf(formatter.Writer, "✓ Translated %s: %d instruction(s), %d loop(s)\n",
		summary.Source, summary.Instructions, summary.Loops)
	fmt.Fprintf(formatter.Writer, "Wrote %d byte(s) to %s\n", summary.Bytes, summary.Output)
	return nil
}

func outputTranslateError(formatter *OutputFormatter, exitCode int, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}
