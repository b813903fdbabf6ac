// =============================================================================
// Stundennachweis Generator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (RecordTable)
//   - timesheet (TimeEntry)
//   - grouper, assembler, converter (InvoiceUnit)
//   - validation
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT TABLE
// =============================================================================

// RecordTable is the in-memory form of an input file, independent of whether
// it was read from CSV or XLSX.
type RecordTable struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// RowNumbers holds the 1-indexed source line/row of each entry in Rows.
	RowNumbers []int

	// SourceFile is the path to the file the table was read from.
	SourceFile string
}

// HasColumn reports whether the table has a column with the given header.
func (t *RecordTable) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

// TimeEntry is a single tracked block of work. It is immutable once read.
type TimeEntry struct {
	// Row is the source row number, used for error reporting.
	Row int

	// Start is the raw start timestamp (YYYY-MM-DD HH:MM:SS). It is kept as
	// text so that date errors surface while the document is being built.
	Start string

	// Client is the customer the work was done for.
	Client string

	// Project is the composite project identifier "<reference>_<name>".
	Project string

	// Task is the free-text description of the work.
	Task string

	// Duration is the number of hours, exactly as given in the input.
	Duration decimal.Decimal
}

// =============================================================================
// INVOICE UNITS
// =============================================================================

// InvoiceUnit is the set of entries for one (client, project) pair and is
// rendered as exactly one output document.
type InvoiceUnit struct {
	// Client is the grouping client value.
	Client string

	// Project is the raw project identifier used as grouping key.
	Project string

	// ProjectName is the human readable part of the project identifier.
	ProjectName string

	// ProjectReference is the short reference code of the project.
	ProjectReference string

	// PeriodLabel is the reporting month as MM.YYYY.
	PeriodLabel string

	// Entries are the unit's time entries in input order.
	Entries []TimeEntry
}

// TotalHours returns the exact sum of all entry durations. An empty unit sums
// to zero.
func (u InvoiceUnit) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for _, e := range u.Entries {
		total = total.Add(e.Duration)
	}
	return total
}
