// =============================================================================
// Stundennachweis Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It reads an input file and reports
// every finding with its row number, without writing any document.
//
// COMMAND USAGE:
//   stundennachweis validate <input> [--strict] [--fail-fast] [--error-log FILE]
//
// FLAGS:
//   --strict     : Warnings fail the command too
//   --fail-fast  : Stop checking at the first error
//   --error-log  : Also write the findings to this file
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/stundennachweis/internal/timesheet"
	"github.com/ginjaninja78/stundennachweis/internal/validation"
	"github.com/spf13/cobra"
)

// errorLog is the optional file receiving the findings.
var errorLog string

// strict makes warnings fail the command.
var strict bool

// failFast stops at the first error.
var failFast bool

var validateCmd = &cobra.Command{
	Use:   "validate <input>",
	Short: "Check a time tracking export without generating documents",
	Long: `The validate command reads a CSV or XLSX time tracking export and checks
every entry. Unlike generate, it does not stop at the first problem but lists
all of them with their row numbers.

Errors (unparseable dates, project identifiers without "_") make the command
fail. Warnings (entries outside the period, empty fields, durations of zero
or less) are reported only, unless --strict is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&errorLog, "error-log", "", "Also write the findings to this file")
	validateCmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	validateCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first error")
}

func runValidate(cmd *cobra.Command, inputPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	entries, err := timesheet.Load(inputPath, cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to load input: %w", err)
	}
	logger.Debug("Loaded time entries", "file", inputPath, "count", len(entries))

	validator := validation.NewValidatorWithOptions(validation.ValidationOptions{
		StopOnFirstError:      failFast,
		TreatWarningsAsErrors: strict,
	})
	result := validator.ValidateAll(entries)

	out := cmd.OutOrStdout()
	if len(result.Errors) > 0 {
		fmt.Fprint(out, validation.FormatErrors(result.Errors))
	}
	fmt.Fprintf(out, "%d entries checked: %d error(s), %d warning(s)\n",
		result.EntriesValidated, result.ErrorCount, result.WarningCount)

	if errorLog != "" && len(result.Errors) > 0 {
		if err := validation.WriteErrorLog(result.Errors, errorLog); err != nil {
			return err
		}
		logger.Info("Wrote error log", "file", errorLog)
	}

	if !result.IsValid {
		if fatal := result.Fatal(); len(fatal) > 0 {
			return fmt.Errorf("%s: %d error(s), first in row %d", inputPath, len(fatal), fatal[0].RowNumber)
		}
		return fmt.Errorf("%s: %d warning(s) in strict mode", inputPath, result.WarningCount)
	}
	return nil
}
