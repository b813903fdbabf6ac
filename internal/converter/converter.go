// =============================================================================
// Stundennachweis Generator - Converter Module
// =============================================================================
//
// This module contains the core pipeline. It orchestrates a complete run for
// a single input file, from reading the time entries to writing one PDF per
// invoice unit.
//
// CONVERSION PIPELINE:
//   1. Load the time entries (CSV or XLSX)
//   2. Validate the entries and log warnings
//   3. Group the entries into invoice units
//   4. Create the output directory
//   5. For each unit: assemble the document plan, render it, lay the
//      backdrop under the first page
//   6. Write the run summary
//
// CONCURRENCY:
//   None. Units are processed one after the other and each file is written
//   before the next unit starts.
//
// FAILURES:
//   The first error aborts the run. Documents written before the failure stay
//   on disk.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/stundennachweis/internal/assembler"
	"github.com/ginjaninja78/stundennachweis/internal/background"
	"github.com/ginjaninja78/stundennachweis/internal/config"
	"github.com/ginjaninja78/stundennachweis/internal/fields"
	"github.com/ginjaninja78/stundennachweis/internal/grouper"
	"github.com/ginjaninja78/stundennachweis/internal/pdfwriter"
	"github.com/ginjaninja78/stundennachweis/internal/plan"
	"github.com/ginjaninja78/stundennachweis/internal/timesheet"
	"github.com/ginjaninja78/stundennachweis/internal/validation"
	"github.com/ginjaninja78/stundennachweis/pkg/utils"
	"github.com/google/uuid"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Renderer writes a document plan to a file.
type Renderer interface {
	Render(doc *plan.Document, path string) error
}

// Compositor lays a backdrop under the first page of a document file,
// rewriting it in place.
type Compositor interface {
	Overlay(path, backdrop string) error
}

// Logger is the logging interface used by the pipeline. *log.Logger from
// charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a run.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// RunID identifies the run in logs, document keywords and the summary.
	RunID string

	// OutputDir is the directory that received the documents.
	OutputDir string

	// Documents lists every document produced, in unit order. In a dry run
	// the paths are the ones that would have been written.
	Documents []Document

	// SummaryFile is the path to summary.csv, empty if none was written.
	SummaryFile string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// Document describes one generated file.
type Document struct {
	Client           string
	ProjectReference string
	ProjectName      string
	Period           string
	Entries          int
	Hours            string
	Path             string
	Plan             *plan.Document
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// EntriesRead is the number of time entries read from the input.
	EntriesRead int

	// UnitsCreated is the number of invoice units the entries were grouped into.
	UnitsCreated int

	// DocumentsWritten is the number of PDF files written.
	DocumentsWritten int

	// ValidationWarnings is the number of non-fatal findings in the input.
	ValidationWarnings int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the pipeline for one input file.
type Converter struct {
	inputPath  string
	cfg        *config.Config
	renderer   Renderer
	compositor Compositor
	logger     Logger
	now        func() time.Time
	dryRun     bool
	runID      string
}

// Option configures a Converter.
type Option func(*Converter)

// WithRenderer replaces the PDF renderer.
func WithRenderer(r Renderer) Option {
	return func(c *Converter) { c.renderer = r }
}

// WithCompositor replaces the backdrop compositor.
func WithCompositor(comp Compositor) Option {
	return func(c *Converter) { c.compositor = comp }
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithClock sets the source of the generation date used in file names.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) { c.now = now }
}

// WithDryRun builds every document plan without writing any file.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) { c.dryRun = dryRun }
}

// WithRunID sets the run id instead of generating one.
func WithRunID(id string) Option {
	return func(c *Converter) { c.runID = id }
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the input CSV or XLSX file.
//   - cfg: The application configuration.
//   - opts: Optional collaborators and settings.
//
// RETURNS:
//   - A new Converter instance. Unless replaced, it renders with gofpdf using
//     the configured style and fonts and composites with the gofpdi backend.
func New(inputPath string, cfg *config.Config, opts ...Option) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Converter{
		inputPath: inputPath,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.renderer == nil {
		var writerOpts []pdfwriter.Option
		if bold, medium, ok := cfg.FontPaths(); ok {
			writerOpts = append(writerOpts, pdfwriter.WithFonts(bold, medium))
		}
		c.renderer = pdfwriter.New(pdfwriter.NewStyle(cfg.Style), writerOpts...)
	}
	if c.compositor == nil {
		c.compositor = background.New()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.runID == "" {
		c.runID = uuid.NewString()
	}

	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline.
//
// RETURNS:
//   - A Result describing what was produced. It is returned even on failure
//     and then lists the documents written before the error.
//   - The first error encountered, if any.
func (c *Converter) Run() (*Result, error) {
	startTime := time.Now()
	result := &Result{
		FilePath: c.inputPath,
		RunID:    c.runID,
	}
	defer func() { result.Stats.ProcessingTime = time.Since(startTime) }()

	c.logger.Info("Processing file", "file", c.inputPath, "run", c.runID)

	// =========================================================================
	// STEP 1: LOAD ENTRIES
	// =========================================================================

	entries, err := timesheet.Load(c.inputPath, c.cfg.Input)
	if err != nil {
		return result, fmt.Errorf("failed to load input: %w", err)
	}

	result.Stats.EntriesRead = len(entries)
	c.logger.Debug("Loaded time entries", "count", len(entries))

	// =========================================================================
	// STEP 2: VALIDATE ENTRIES
	// =========================================================================
	// Warnings are logged only. Malformed values that prevent a document
	// from being built are reported by the steps below.

	findings := validation.Validate(entries)
	for _, w := range findings.Warnings() {
		c.logger.Warn(w.Message, "row", w.RowNumber, "field", w.Field, "value", w.Value)
	}
	result.Stats.ValidationWarnings = findings.WarningCount

	// =========================================================================
	// STEP 3: GROUP INTO INVOICE UNITS
	// =========================================================================

	units, err := grouper.Group(entries)
	if err != nil {
		return result, fmt.Errorf("failed to group entries: %w", err)
	}

	result.Stats.UnitsCreated = len(units)
	c.logger.Debug("Grouped into invoice units", "count", len(units))

	// =========================================================================
	// STEP 4: PREPARE OUTPUT DIRECTORY
	// =========================================================================

	fm := utils.NewFileManager(c.inputPath, c.cfg.Output.DirName)
	result.OutputDir = fm.OutputDir

	if !c.dryRun {
		if err := fm.EnsureDirectories(); err != nil {
			return result, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	backdrop := c.cfg.BackgroundPath()
	switch {
	case backdrop != "":
		c.logger.Debug("Using backdrop", "file", backdrop)
	case c.cfg.Document.AssetsDir != "":
		c.logger.Warn("No "+config.BackgroundFileName+" in assets directory, documents have no backdrop",
			"dir", c.cfg.Document.AssetsDir)
	}

	// =========================================================================
	// STEP 5: GENERATE DOCUMENTS
	// =========================================================================

	opts := c.assemblerOptions()
	generated := c.now()
	seen := make(map[string]bool, len(units))

	for _, unit := range units {
		doc, err := assembler.Assemble(unit, opts)
		if err != nil {
			return result, fmt.Errorf("failed to assemble document for client %q: %w", unit.Client, err)
		}

		outputPath := fm.InvoicePath(generated, unit.ProjectName)
		if seen[outputPath] {
			c.logger.Warn("Output file name used twice, earlier document is overwritten", "file", outputPath)
		}
		seen[outputPath] = true

		entry := Document{
			Client:           unit.Client,
			ProjectReference: unit.ProjectReference,
			ProjectName:      unit.ProjectName,
			Period:           unit.PeriodLabel,
			Entries:          len(unit.Entries),
			Hours:            fields.FormatHours(unit.TotalHours()),
			Path:             outputPath,
			Plan:             doc,
		}

		if c.dryRun {
			c.logger.Info("Would write document", "file", outputPath, "entries", entry.Entries)
			result.Documents = append(result.Documents, entry)
			continue
		}

		if err := c.renderer.Render(doc, outputPath); err != nil {
			return result, fmt.Errorf("failed to render %s: %w", outputPath, err)
		}

		if backdrop != "" {
			if err := c.compositor.Overlay(outputPath, backdrop); err != nil {
				return result, fmt.Errorf("failed to apply backdrop to %s: %w", outputPath, err)
			}
		}

		result.Documents = append(result.Documents, entry)
		result.Stats.DocumentsWritten++
		c.logger.Info("Wrote document", "file", outputPath, "entries", entry.Entries, "hours", entry.Hours)
	}

	// =========================================================================
	// STEP 6: WRITE SUMMARY
	// =========================================================================

	if c.cfg.Output.Summary && !c.dryRun {
		summaryPath, err := fm.WriteSummary(c.summaryRows(result.Documents))
		if err != nil {
			return result, fmt.Errorf("failed to write summary: %w", err)
		}
		result.SummaryFile = summaryPath
		c.logger.Debug("Wrote summary", "file", summaryPath)
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// assemblerOptions maps the document settings to assembler options.
func (c *Converter) assemblerOptions() assembler.Options {
	d := c.cfg.Document
	return assembler.Options{
		MetadataStyle: plan.MetadataStyle(d.MetadataStyle),
		Totals:        d.Totals,
		FooterLines:   d.Footer,
		Barcode:       plan.Symbology(d.Barcode),
		Author:        d.Author,
		RunID:         c.runID,
	}
}

func (c *Converter) summaryRows(docs []Document) []utils.SummaryRow {
	rows := make([]utils.SummaryRow, len(docs))
	for i, d := range docs {
		rows[i] = utils.SummaryRow{
			RunID:            c.runID,
			Client:           d.Client,
			ProjectReference: d.ProjectReference,
			ProjectName:      d.ProjectName,
			Period:           d.Period,
			Entries:          d.Entries,
			Hours:            d.Hours,
			File:             filepath.Base(d.Path),
		}
	}
	return rows
}
