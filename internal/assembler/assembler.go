// =============================================================================
// Stundennachweis Generator - Invoice Assembler
// =============================================================================
//
// This module turns one invoice unit into a document plan: the ordered list of
// layout blocks handed to a renderer.
//
// BLOCK ORDER:
//   1. Title           "Stundennachweis <MM.YYYY>"
//   2. Metadata        Auftraggeber / Projekt / Projektreferenz
//   3. Data table      Datum | Anzahl Stunden | Aufgabe, one row per entry
//   4. Total           "Summe" + exact sum of durations        (optional)
//   5. Footer          static sender details                   (optional)
//   6. Barcode         identifier code, top right corner        (optional)
//
// A single malformed entry aborts the whole plan. Partial documents are never
// produced.
//
// =============================================================================

package assembler

import (
	"fmt"

	"github.com/ginjaninja78/stundennachweis/internal/fields"
	"github.com/ginjaninja78/stundennachweis/internal/plan"
	"github.com/ginjaninja78/stundennachweis/internal/types"
)

// =============================================================================
// LABELS
// =============================================================================

const (
	TitlePrefix = "Stundennachweis "

	LabelClient    = "Auftraggeber"
	LabelProject   = "Projekt"
	LabelReference = "Projektreferenz"

	ColumnDate  = "Datum"
	ColumnHours = "Anzahl Stunden"
	ColumnTask  = "Aufgabe"

	LabelTotal = "Summe"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options selects the optional blocks of a plan. The zero value yields title,
// metadata table and data table only.
type Options struct {
	// MetadataStyle selects table or paragraph layout. Empty means table.
	MetadataStyle plan.MetadataStyle

	// Totals appends the "Summe" row.
	Totals bool

	// FooterLines is the static footer text. Empty disables the footer.
	FooterLines []string

	// Barcode selects an identifier code symbology. Empty disables it.
	Barcode plan.Symbology

	// Author is written into the document properties.
	Author string

	// RunID is written into the document keywords.
	RunID string
}

// =============================================================================
// ASSEMBLY
// =============================================================================

// Assemble builds the document plan for one invoice unit.
//
// PARAMETERS:
//   - unit: The invoice unit, entries in input order.
//   - opts: The optional block selection.
//
// RETURNS:
//   - The document plan.
//   - An *types.InputFormatError if any entry's date cannot be parsed.
func Assemble(unit types.InvoiceUnit, opts Options) (*plan.Document, error) {
	title := TitlePrefix + unit.PeriodLabel

	table, err := buildDataTable(unit.Entries)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", unit.Project, err)
	}

	style := opts.MetadataStyle
	if style == "" {
		style = plan.MetadataTable
	}

	doc := &plan.Document{
		Info: plan.Info{
			Title:    title,
			Subject:  fmt.Sprintf("%s / %s", unit.Client, unit.ProjectName),
			Author:   opts.Author,
			Keywords: keywords(unit, opts.RunID),
		},
		Blocks: []plan.Block{
			plan.Title{Text: title},
			plan.Metadata{
				Style: style,
				Fields: []plan.Field{
					{Label: LabelClient, Value: unit.Client},
					{Label: LabelProject, Value: unit.ProjectName},
					{Label: LabelReference, Value: unit.ProjectReference},
				},
			},
			table,
		},
	}

	if opts.Totals {
		doc.Blocks = append(doc.Blocks, plan.Total{Label: LabelTotal, Hours: unit.TotalHours()})
	}
	if len(opts.FooterLines) > 0 {
		lines := make([]string, len(opts.FooterLines))
		copy(lines, opts.FooterLines)
		doc.Blocks = append(doc.Blocks, plan.Footer{Lines: lines})
	}
	if opts.Barcode != "" {
		doc.Blocks = append(doc.Blocks, plan.Barcode{
			Symbology: opts.Barcode,
			Content:   unit.ProjectReference + " " + unit.PeriodLabel,
		})
	}

	return doc, nil
}

// buildDataTable renders each entry as [date, hours, task].
func buildDataTable(entries []types.TimeEntry) (plan.DataTable, error) {
	table := plan.DataTable{
		Header: []string{ColumnDate, ColumnHours, ColumnTask},
		Rows:   make([][]string, 0, len(entries)),
	}

	for _, e := range entries {
		date, err := fields.FormatDate(e.Start)
		if err != nil {
			if fe, ok := err.(*types.InputFormatError); ok {
				fe.Row = e.Row
			}
			return plan.DataTable{}, err
		}
		table.Rows = append(table.Rows, []string{date, fields.FormatHours(e.Duration), e.Task})
	}

	return table, nil
}

func keywords(unit types.InvoiceUnit, runID string) string {
	if runID == "" {
		return unit.ProjectReference
	}
	return unit.ProjectReference + " " + runID
}
