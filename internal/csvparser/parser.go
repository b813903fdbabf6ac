// =============================================================================
// Stundennachweis Generator - CSV Parser Module
// =============================================================================
//
// This module is responsible for parsing CSV exports of time-tracking tools.
// It handles:
//   - Different delimiters (comma, semicolon, tab, pipe)
//   - A leading UTF-8 byte order mark (as written by spreadsheet tools)
//   - Quoted fields and ragged rows
//   - Blank lines between records
//
// Data cells are kept exactly as written. Only headers are trimmed.
//
// The result is a types.RecordTable: headers plus one header -> value map per
// data row, with the source line number of every row for error reporting.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/stundennachweis/internal/config"
	"github.com/ginjaninja78/stundennachweis/internal/types"
)

// utf8BOM is stripped from the first header cell.
const utf8BOM = "\ufeff"

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The input settings from the configuration.
//
// RETURNS:
//   - A pointer to the RecordTable containing the parsed data.
//   - An error if the file cannot be read or parsed.
func Parse(filePath string, settings config.InputSettings) (*types.RecordTable, error) {
	// Open the file.
	file, err := os.Open(filePath)
	if err != nil {
		return nil, &types.IOError{Op: "open input", Path: filePath, Err: err}
	}
	defer file.Close()

	table, err := ParseReader(file, settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath
	return table, nil
}

// ParseReader parses CSV data from r.
func ParseReader(r io.Reader, settings config.InputSettings) (*types.RecordTable, error) {
	// Create the CSV reader.
	csvReader := csv.NewReader(bufio.NewReader(r))

	// Configure the CSV reader based on settings.
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	// Read the header row.
	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, types.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	table := &types.RecordTable{
		Headers: cleanHeaders(header),
	}

	// Read data rows one at a time to keep line numbers.
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}

		line, _ := csvReader.FieldPos(0)
		table.Rows = append(table.Rows, rowToMap(table.Headers, row))
		table.RowNumbers = append(table.RowNumbers, line)
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.InputSettings) error {
	comma, err := config.DelimiterRune(settings.Delimiter)
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Allow variable number of fields per row.
	// Missing trailing cells are read as empty values.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	return nil
}

// cleanHeaders trims header values and removes a byte order mark.
//
// CLEANING OPERATIONS:
//   - Strip a leading UTF-8 BOM from the first header
//   - Trim whitespace
//   - Name empty headers by position
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		if i == 0 {
			header = strings.TrimPrefix(header, utf8BOM)
		}
		header = strings.TrimSpace(header)

		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}

		cleaned[i] = header
	}

	return cleaned
}

// rowToMap converts a row to a header -> value map. Values are not trimmed;
// missing cells are empty.
func rowToMap(headers []string, row []string) map[string]string {
	rowMap := make(map[string]string, len(headers))

	for colIndex, header := range headers {
		if colIndex < len(row) {
			rowMap[header] = row[colIndex]
		} else {
			rowMap[header] = ""
		}
	}

	return rowMap
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
