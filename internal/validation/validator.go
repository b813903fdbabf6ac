// =============================================================================
// Stundennachweis Generator - Validation Engine
// =============================================================================
//
// This module checks time entries before any document is produced, so that
// every problem in an input file can be reported at once instead of stopping
// at the first malformed row.
//
// CHECKS:
//   Errors (a document for the row's project could not be generated):
//     - start is not a "YYYY-MM-DD HH:MM:SS" timestamp
//     - project has no "_" between reference and name
//   Warnings (documents are generated, but probably not as intended):
//     - empty client or task
//     - zero or negative duration
//     - entry outside the reporting month taken from the first row
//
// ERROR HANDLING:
//   - Findings are collected, not returned one by one
//   - Each finding includes the source row, field and value
//
// =============================================================================

package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/stundennachweis/internal/fields"
	"github.com/ginjaninja78/stundennachweis/internal/types"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Field is the name of the field that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable error message.
	Message string

	// RowNumber is the source row number.
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] Row %d, Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.RowNumber,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal errors.
	IsValid bool

	// Errors contains all findings, warnings included, in row order.
	Errors []*ValidationError

	// ErrorCount is the number of fatal errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// EntriesValidated is the number of entries checked.
	EntriesValidated int
}

// Warnings returns only the warnings.
func (r *ValidationResult) Warnings() []*ValidationError {
	return r.bySeverity(SeverityWarning)
}

// Fatal returns only the errors.
func (r *ValidationResult) Fatal() []*ValidationError {
	return r.bySeverity(SeverityError)
}

func (r *ValidationResult) bySeverity(severity string) []*ValidationError {
	var out []*ValidationError
	for _, e := range r.Errors {
		if e.Severity == severity {
			out = append(out, e)
		}
	}
	return out
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator performs validation on time entries.
type Validator struct {
	options ValidationOptions
}

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// StopOnFirstError stops validation after the first fatal error.
	// Default: false
	StopOnFirstError bool

	// TreatWarningsAsErrors makes any warning invalidate the result.
	// Default: false
	TreatWarningsAsErrors bool
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{}
}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{options: DefaultValidationOptions()}
}

// NewValidatorWithOptions creates a new Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	return &Validator{options: options}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks all entries with the default options.
func Validate(entries []types.TimeEntry) *ValidationResult {
	return NewValidator().ValidateAll(entries)
}

// ValidateAll validates all entries and returns a detailed result.
func (v *Validator) ValidateAll(entries []types.TimeEntry) *ValidationResult {
	result := &ValidationResult{
		IsValid:          true,
		Errors:           make([]*ValidationError, 0),
		EntriesValidated: len(entries),
	}

	// The reporting month every entry is compared against.
	period, _ := fields.PeriodLabel(entries)

	for _, entry := range entries {
		for _, err := range v.ValidateEntry(entry, period) {
			result.Errors = append(result.Errors, err)

			if err.Severity == SeverityError {
				result.ErrorCount++
				result.IsValid = false

				if v.options.StopOnFirstError {
					return result
				}
			} else {
				result.WarningCount++

				if v.options.TreatWarningsAsErrors {
					result.IsValid = false
				}
			}
		}
	}

	return result
}

// ValidateEntry validates a single entry. period is the expected MM.YYYY
// label; an empty period disables the month check.
func (v *Validator) ValidateEntry(entry types.TimeEntry, period string) []*ValidationError {
	var errors []*ValidationError

	add := func(severity, field, value, rule, message string) {
		errors = append(errors, &ValidationError{
			Severity:  severity,
			Field:     field,
			Value:     value,
			Rule:      rule,
			Message:   message,
			RowNumber: entry.Row,
		})
	}

	// =========================================================================
	// START TIMESTAMP
	// =========================================================================

	if start, err := fields.ParseStart(entry.Start); err != nil {
		add(SeverityError, "start", entry.Start, "date_format",
			fmt.Sprintf("Value is not a timestamp of the form %s", fields.SourceLayout))
	} else if period != "" && start.Format(fields.PeriodLayout) != period {
		add(SeverityWarning, "start", entry.Start, "period",
			fmt.Sprintf("Entry lies outside the reporting period %s", period))
	}

	// =========================================================================
	// PROJECT IDENTIFIER
	// =========================================================================

	if _, _, err := fields.SplitProjectIdentifier(entry.Project); err != nil {
		add(SeverityError, "project", entry.Project, "project_identifier",
			"Project identifier must have the form <reference>_<name>")
	}

	// =========================================================================
	// REQUIRED TEXT
	// =========================================================================

	if strings.TrimSpace(entry.Client) == "" {
		add(SeverityWarning, "client", entry.Client, "required", "Client is empty")
	}
	if strings.TrimSpace(entry.Task) == "" {
		add(SeverityWarning, "task", entry.Task, "required", "Task is empty")
	}

	// =========================================================================
	// DURATION
	// =========================================================================

	switch {
	case entry.Duration.IsNegative():
		add(SeverityWarning, "duration", entry.Duration.String(), "range", "Duration is negative")
	case entry.Duration.IsZero():
		add(SeverityWarning, "duration", entry.Duration.String(), "range", "Duration is zero")
	}

	return errors
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes the formatted findings to filePath.
func WriteErrorLog(errors []*ValidationError, filePath string) error {
	if err := os.WriteFile(filePath, []byte(FormatErrors(errors)), 0o644); err != nil {
		return &types.IOError{Op: "write", Path: filePath, Err: err}
	}
	return nil
}
