package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ametel/bfcc/internal/scanner"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid        bool      `json:"valid"`
	Instructions int       `json:"instructions"`
	Loops        int       `json:"loops"`
	Error        *CLIError `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <program.b>",
		Short: "Check bracket balance without emitting C",
		Long: `Scan a Brainfuck program and verify that its loop brackets form a
properly nested, balanced sequence. No output file is produced. Faster
feedback than translate when editing a program.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	src, err := os.ReadFile(path)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", path, err), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: reading %s: %v", ErrCodeReadFailed, path, err))
	}
	formatter.VerboseLog("Read %d byte(s) from %s", len(src), path)

	stream, err := scanner.Scan(src)
	if err != nil {
		var structErr *scanner.StructuralError
		if errors.As(err, &structErr) {
			return outputValidateFailure(formatter, path, structErr)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	result := ValidationResult{
		Valid:        true,
		Instructions: len(stream),
		Loops:        scanner.CountLoops(stream),
	}
	return outputValidateSuccess(formatter, result)
}

func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d instruction(s), %d loop(s), brackets balanced\n",
		result.Instructions, result.Loops)
	return nil
}

func outputValidateFailure(formatter *OutputFormatter, path string, structErr *scanner.StructuralError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid: false,
			Error: &CLIError{Code: structErr.Code, Message: structErr.Message, Details: structErr.Pos},
		}
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error:  result.Error,
		}
		enc := json.NewEncoder(formatter.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, structErr.Error())
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintf(formatter.Writer, "%s:%s\n", path, structErr.Pos)
	fmt.Fprintf(formatter.Writer, "  %s: %s\n", structErr.Code, structErr.Message)
	return NewExitError(ExitFailure, structErr.Error())
}
