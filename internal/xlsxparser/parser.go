// =============================================================================
// Stundennachweis Generator - XLSX Parser
// =============================================================================
//
// This module reads time-tracking exports saved as Excel workbooks. The first
// row of the sheet holds the column headers; every following non-empty row is
// one time entry.
//
// CELL VALUES:
//   Cells are read raw (unformatted). A start cell that holds an Excel serial
//   date is converted to the "YYYY-MM-DD HH:MM:SS" text used by CSV exports,
//   so both sources feed the same derivation code. Text cells are kept as-is,
//   surrounding spaces included.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/stundennachweis/internal/config"
	"github.com/ginjaninja78/stundennachweis/internal/fields"
	"github.com/ginjaninja78/stundennachweis/internal/types"
	"github.com/xuri/excelize/v2"
)

// Parse reads the configured (or first) sheet of an XLSX workbook.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//   - settings: The input settings; Sheet selects the worksheet and
//     Columns.Start names the column holding start timestamps.
//
// RETURNS:
//   - A pointer to the RecordTable containing the parsed data.
//   - An error if the workbook cannot be opened or read.
func Parse(filePath string, settings config.InputSettings) (*types.RecordTable, error) {
	// Open the XLSX file.
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, &types.IOError{Op: "open workbook", Path: filePath, Err: err}
	}
	defer f.Close()

	sheetName := settings.Sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	// Get all rows from the sheet, unformatted.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheetName, err)
	}

	if len(rows) == 0 {
		return nil, types.ErrEmptyInput
	}

	table := &types.RecordTable{
		Headers:    cleanHeaders(rows[0]),
		SourceFile: filePath,
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]

		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(table.Headers))
		for col, header := range table.Headers {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			if header == settings.Columns.Start {
				value = normalizeStart(value)
			}
			rowMap[header] = value
		}

		table.Rows = append(table.Rows, rowMap)
		table.RowNumbers = append(table.RowNumbers, i+1)
	}

	return table, nil
}

// normalizeStart converts an Excel serial date to the CSV timestamp layout.
// Anything that is not a number is returned unchanged.
func normalizeStart(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return t.Round(time.Second).Format(fields.SourceLayout)
}

// cleanHeaders trims header values and names empty headers by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
