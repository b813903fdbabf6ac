// =============================================================================
// Stundennachweis Generator - Timesheet Loader
// =============================================================================
//
// This module turns an input file into typed time entries. It selects the
// parser by file extension, checks that every mapped column is present and
// parses durations as exact decimals.
//
// SUPPORTED INPUT:
//   - .xlsx  Excel workbook (see internal/xlsxparser)
//   - other  delimited text (see internal/csvparser)
//
// =============================================================================

package timesheet

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/stundennachweis/internal/config"
	"github.com/ginjaninja78/stundennachweis/internal/csvparser"
	"github.com/ginjaninja78/stundennachweis/internal/types"
	"github.com/ginjaninja78/stundennachweis/internal/xlsxparser"
	"github.com/shopspring/decimal"
)

var errMissingColumn = errors.New("column not found in input header")

// Load reads filePath and returns its entries in input order.
//
// RETURNS:
//   - The time entries, never empty on success.
//   - types.ErrEmptyInput when the file holds no data rows, an
//     *types.InputFormatError for a missing column or a bad duration, or an
//     *types.IOError when the file cannot be opened.
func Load(filePath string, settings config.InputSettings) ([]types.TimeEntry, error) {
	table, err := ReadTable(filePath, settings)
	if err != nil {
		return nil, err
	}
	return Entries(table, settings.Columns)
}

// ReadTable parses filePath with the parser matching its extension.
func ReadTable(filePath string, settings config.InputSettings) (*types.RecordTable, error) {
	if IsWorkbook(filePath) {
		return xlsxparser.Parse(filePath, settings)
	}
	return csvparser.Parse(filePath, settings)
}

// IsWorkbook reports whether filePath names an Excel workbook.
func IsWorkbook(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".xlsx")
}

// Entries converts table rows into time entries using the column mapping.
func Entries(table *types.RecordTable, cols config.ColumnMapping) ([]types.TimeEntry, error) {
	for _, col := range cols.Required() {
		if !table.HasColumn(col) {
			return nil, &types.InputFormatError{Field: col, Err: errMissingColumn}
		}
	}

	if len(table.Rows) == 0 {
		return nil, types.ErrEmptyInput
	}

	entries := make([]types.TimeEntry, 0, len(table.Rows))
	for i, row := range table.Rows {
		rowNum := i + 1
		if i < len(table.RowNumbers) {
			rowNum = table.RowNumbers[i]
		}

		duration, err := ParseDuration(row[cols.Duration])
		if err != nil {
			return nil, &types.InputFormatError{Row: rowNum, Field: cols.Duration, Value: row[cols.Duration], Err: err}
		}

		entries = append(entries, types.TimeEntry{
			Row:      rowNum,
			Start:    row[cols.Start],
			Client:   row[cols.Client],
			Project:  row[cols.Project],
			Task:     row[cols.Task],
			Duration: duration,
		})
	}

	return entries, nil
}

// ParseDuration parses an hour count such as "2.5". A decimal comma ("2,5")
// is accepted when the value contains no point.
func ParseDuration(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return decimal.NewFromString(raw)
}
