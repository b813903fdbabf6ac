// =============================================================================
// Stundennachweis Generator - Field Derivation
// =============================================================================
//
// Pure functions that derive display values from raw input fields:
//   - German date formatting of start timestamps
//   - Splitting composite project identifiers into reference and name
//   - Filename-safe project names
//   - The reporting period label of an input set
//   - Duration rendering without rounding
//
// None of these functions keep state; every failure is returned as a
// *types.InputFormatError and must be propagated by the caller.
//
// =============================================================================

package fields

import (
	"errors"
	"strings"
	"time"

	"github.com/ginjaninja78/stundennachweis/internal/types"
	"github.com/shopspring/decimal"
)

// =============================================================================
// FORMATS
// =============================================================================

const (
	// SourceLayout is the timestamp layout of the "start" column.
	SourceLayout = "2006-01-02 15:04:05"

	// DisplayDateLayout is the German day.month.year layout.
	DisplayDateLayout = "02.01.2006"

	// PeriodLayout is the month.year layout of the period label.
	PeriodLayout = "01.2006"

	// FilenameDateLayout is used for the generation date in file names.
	FilenameDateLayout = "2006-01-02"
)

// forbiddenFilenameChars are replaced by '_' in SanitizeFilename.
const forbiddenFilenameChars = `<>:"/\|?*`

// errMissingSeparator is wrapped when a project identifier has no '_'.
var errMissingSeparator = errors.New("project identifier has no '_' separator")

// =============================================================================
// DATES
// =============================================================================

// ParseStart parses a raw start timestamp in SourceLayout.
func ParseStart(raw string) (time.Time, error) {
	t, err := time.Parse(SourceLayout, raw)
	if err != nil {
		return time.Time{}, &types.InputFormatError{Field: "start", Value: raw, Err: err}
	}
	return t, nil
}

// FormatDate re-renders a start timestamp as DD.MM.YYYY.
//
// EXAMPLE:
//
//	FormatDate("2024-03-05 09:00:00") // "05.03.2024"
func FormatDate(raw string) (string, error) {
	t, err := ParseStart(raw)
	if err != nil {
		return "", err
	}
	return t.Format(DisplayDateLayout), nil
}

// PeriodLabel returns the MM.YYYY label of the first entry in input order.
// Later entries are never consulted, so a set spanning several months still
// reports the month of its first row.
func PeriodLabel(entries []types.TimeEntry) (string, error) {
	if len(entries) == 0 {
		return "", types.ErrEmptyInput
	}
	first := entries[0]
	t, err := ParseStart(first.Start)
	if err != nil {
		var fe *types.InputFormatError
		if errors.As(err, &fe) {
			fe.Row = first.Row
		}
		return "", err
	}
	return t.Format(PeriodLayout), nil
}

// =============================================================================
// PROJECT IDENTIFIERS
// =============================================================================

// SplitProjectIdentifier splits "<reference>_<name_with_underscores>" on the
// first underscore. The name has every remaining underscore replaced by a
// space.
//
// EXAMPLE:
//
//	SplitProjectIdentifier("X1_Name_With_Underscores") // "X1", "Name With Underscores"
func SplitProjectIdentifier(id string) (reference, name string, err error) {
	reference, rest, found := strings.Cut(id, "_")
	if !found {
		return "", "", &types.InputFormatError{Field: "project", Value: id, Err: errMissingSeparator}
	}
	return reference, strings.ReplaceAll(rest, "_", " "), nil
}

// =============================================================================
// FILE NAMES
// =============================================================================

// SanitizeFilename replaces every character that is invalid in file names on
// common platforms with '_'. The result has the same number of characters as
// the input; distinct inputs may collide.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenFilenameChars, r) {
			return '_'
		}
		return r
	}, name)
}

// =============================================================================
// DURATIONS
// =============================================================================

// FormatHours renders a duration with the number of fraction digits it was
// given in, so "1.0" stays "1.0" and "2.5" stays "2.5".
func FormatHours(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
