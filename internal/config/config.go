// =============================================================================
// Stundennachweis Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading and validating the application
// configuration. The configuration enumerates which optional document blocks
// are active (totals, footer, background, barcode), how the input table is
// read, and the immutable styling values handed to the PDF renderer.
//
// CONFIGURATION FILE:
//   stundennachweis.yaml (path overridable with --config). The file is
//   optional; every setting has a default matching the classic layout.
//
// OVERRIDES:
//   Environment variables and command-line flags are applied on top of the
//   file by the cmd package (see cmd/root.go).
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// ASSET NAMES
// =============================================================================
// These files are looked up inside the assets directory.

const (
	BackgroundFileName = "background.pdf"
	BoldFontFileName   = "font-bold.ttf"
	MediumFontFileName = "font-medium.ttf"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the complete application configuration.
type Config struct {
	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// Input contains settings for reading the time-tracking export.
	Input InputSettings `yaml:"input"`

	// Output contains settings for the generated files.
	Output OutputSettings `yaml:"output"`

	// Document selects the optional blocks of every document.
	Document DocumentSettings `yaml:"document"`

	// Style contains fonts sizes, margins and column widths.
	Style StyleSettings `yaml:"style"`
}

// =============================================================================
// INPUT SETTINGS
// =============================================================================

// InputSettings contains settings for reading the input table.
type InputSettings struct {
	// Delimiter is the character used to separate fields in CSV input.
	// Common values: "," (comma), ";" (semicolon), "\t" or "tab"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Sheet is the worksheet read from XLSX input.
	// Default: "" (first sheet)
	Sheet string `yaml:"sheet"`

	// Columns maps the logical fields to the input's column headers.
	Columns ColumnMapping `yaml:"columns"`
}

// ColumnMapping names the input columns holding each field.
type ColumnMapping struct {
	Client   string `yaml:"client"`
	Project  string `yaml:"project"`
	Start    string `yaml:"start"`
	Duration string `yaml:"duration"`
	Task     string `yaml:"task"`
}

// Required returns the column headers every input must contain.
func (m ColumnMapping) Required() []string {
	return []string{m.Client, m.Project, m.Start, m.Duration, m.Task}
}

// =============================================================================
// OUTPUT SETTINGS
// =============================================================================

// OutputSettings contains settings for generated files.
type OutputSettings struct {
	// DirName is the subdirectory of the input's directory that receives the
	// generated documents. It is created if absent.
	// Default: "invoices"
	DirName string `yaml:"dir_name"`

	// Summary writes summary.csv listing every generated document.
	// Default: false
	Summary bool `yaml:"summary"`
}

// =============================================================================
// DOCUMENT SETTINGS
// =============================================================================

// DocumentSettings selects the optional document blocks.
type DocumentSettings struct {
	// Totals appends a "Summe" row below the data table.
	// Default: true
	Totals bool `yaml:"totals"`

	// MetadataStyle is "table" (two columns) or "paragraphs".
	// Default: "table"
	MetadataStyle string `yaml:"metadata_style"`

	// Author is written into the PDF document properties.
	Author string `yaml:"author"`

	// Footer is static sender contact and banking text, one entry per line,
	// repeated on every page. Empty disables the footer.
	Footer []string `yaml:"footer"`

	// Barcode adds an identifier code to the first page.
	// Valid values: "" (off), "qr", "pdf417"
	Barcode string `yaml:"barcode"`

	// AssetsDir holds font-bold.ttf, font-medium.ttf and background.pdf.
	// Missing fonts fall back to Helvetica.
	AssetsDir string `yaml:"assets_dir"`

	// Background is an explicit backdrop PDF. When empty, background.pdf in
	// AssetsDir is used if it exists.
	Background string `yaml:"background"`
}

// =============================================================================
// STYLE SETTINGS
// =============================================================================

// StyleSettings contains layout values in points.
type StyleSettings struct {
	PageSize string `yaml:"page_size"`

	MarginTopBottom float64 `yaml:"margin_top_bottom"`
	MarginLeftRight float64 `yaml:"margin_left_right"`

	TitleFontSize   float64 `yaml:"title_font_size"`
	TitleLeading    float64 `yaml:"title_leading"`
	TitleSpaceAfter float64 `yaml:"title_space_after"`

	BodyFontSize float64 `yaml:"body_font_size"`
	BodyLeading  float64 `yaml:"body_leading"`

	TableFontSize    float64 `yaml:"table_font_size"`
	TableLeading     float64 `yaml:"table_leading"`
	TableCellPadding float64 `yaml:"table_cell_padding"`
	GridLineWidth    float64 `yaml:"grid_line_width"`
	SpaceBeforeTable float64 `yaml:"space_before_table"`

	LabelColumnWidth float64 `yaml:"label_column_width"`
	DateColumnWidth  float64 `yaml:"date_column_width"`
	HoursColumnWidth float64 `yaml:"hours_column_width"`

	FooterFontSize float64 `yaml:"footer_font_size"`
	BarcodeSize    float64 `yaml:"barcode_size"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Document: DocumentSettings{Totals: true},
	}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct. Keys absent from the file keep their
//     default values.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML on top of the defaults.
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill in anything the file blanked out.
	applyDefaults(config)

	// Relative asset paths are relative to the configuration file.
	config.resolvePaths(filepath.Dir(configPath))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	// Input defaults.
	if config.Input.Delimiter == "" {
		config.Input.Delimiter = ","
	}
	cols := &config.Input.Columns
	if cols.Client == "" {
		cols.Client = "client"
	}
	if cols.Project == "" {
		cols.Project = "project"
	}
	if cols.Start == "" {
		cols.Start = "start"
	}
	if cols.Duration == "" {
		cols.Duration = "duration"
	}
	if cols.Task == "" {
		cols.Task = "task"
	}

	// Output defaults.
	if config.Output.DirName == "" {
		config.Output.DirName = "invoices"
	}

	// Document defaults.
	if config.Document.MetadataStyle == "" {
		config.Document.MetadataStyle = "table"
	}

	// Style defaults. These reproduce the classic A4 layout.
	s := &config.Style
	if s.PageSize == "" {
		s.PageSize = "A4"
	}
	setDefault(&s.MarginTopBottom, 72)
	setDefault(&s.MarginLeftRight, 54)
	setDefault(&s.TitleFontSize, 18)
	setDefault(&s.TitleLeading, 22)
	setDefault(&s.TitleSpaceAfter, 20)
	setDefault(&s.BodyFontSize, 12)
	setDefault(&s.BodyLeading, 14)
	setDefault(&s.TableFontSize, 10)
	setDefault(&s.TableLeading, 12)
	setDefault(&s.TableCellPadding, 3)
	setDefault(&s.GridLineWidth, 0.5)
	setDefault(&s.SpaceBeforeTable, 20)
	setDefault(&s.LabelColumnWidth, 100)
	setDefault(&s.DateColumnWidth, 100)
	setDefault(&s.HoursColumnWidth, 100)
	setDefault(&s.FooterFontSize, 8)
	setDefault(&s.BarcodeSize, 60)
}

func setDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

// resolvePaths makes relative asset paths relative to baseDir.
func (c *Config) resolvePaths(baseDir string) {
	if c.Document.AssetsDir != "" && !filepath.IsAbs(c.Document.AssetsDir) {
		c.Document.AssetsDir = filepath.Join(baseDir, c.Document.AssetsDir)
	}
	if c.Document.Background != "" && !filepath.IsAbs(c.Document.Background) {
		c.Document.Background = filepath.Join(baseDir, c.Document.Background)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: must be debug, info, warn or error", c.LogLevel)
	}

	if _, err := DelimiterRune(c.Input.Delimiter); err != nil {
		return err
	}

	for _, col := range c.Input.Columns.Required() {
		if strings.TrimSpace(col) == "" {
			return fmt.Errorf("input.columns: column names must not be blank")
		}
	}

	if strings.ContainsAny(c.Output.DirName, `/\`) || c.Output.DirName == "." || c.Output.DirName == ".." {
		return fmt.Errorf("output.dir_name %q: must be a single directory name", c.Output.DirName)
	}

	switch c.Document.MetadataStyle {
	case "table", "paragraphs":
	default:
		return fmt.Errorf("document.metadata_style %q: must be table or paragraphs", c.Document.MetadataStyle)
	}

	switch c.Document.Barcode {
	case "", "qr", "pdf417":
	default:
		return fmt.Errorf("document.barcode %q: must be empty, qr or pdf417", c.Document.Barcode)
	}

	s := c.Style
	switch strings.ToUpper(s.PageSize) {
	case "A3", "A4", "A5", "LETTER", "LEGAL":
	default:
		return fmt.Errorf("style.page_size %q: unsupported", s.PageSize)
	}
	for name, v := range map[string]float64{
		"margin_top_bottom":  s.MarginTopBottom,
		"margin_left_right":  s.MarginLeftRight,
		"title_font_size":    s.TitleFontSize,
		"body_font_size":     s.BodyFontSize,
		"table_font_size":    s.TableFontSize,
		"label_column_width": s.LabelColumnWidth,
		"date_column_width":  s.DateColumnWidth,
		"hours_column_width": s.HoursColumnWidth,
	} {
		if v < 0 {
			return fmt.Errorf("style.%s: must not be negative", name)
		}
	}

	return nil
}

// DelimiterRune converts the configured delimiter to the rune used by the CSV
// reader.
func DelimiterRune(delimiter string) (rune, error) {
	switch delimiter {
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	case ",", "comma":
		return ',', nil
	}
	r := []rune(delimiter)
	if len(r) != 1 || r[0] == '"' || r[0] == '\n' || r[0] == '\r' {
		return 0, fmt.Errorf("input.delimiter %q: must be a single character", delimiter)
	}
	return r[0], nil
}

// =============================================================================
// ASSET RESOLUTION
// =============================================================================

// BackgroundPath returns the backdrop PDF to composite, or "" when none is
// configured. An explicit Background wins over AssetsDir/background.pdf.
func (c *Config) BackgroundPath() string {
	if c.Document.Background != "" {
		return c.Document.Background
	}
	if c.Document.AssetsDir == "" {
		return ""
	}
	candidate := filepath.Join(c.Document.AssetsDir, BackgroundFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

// FontPaths returns the bold and medium TTF font paths when both exist in
// AssetsDir.
func (c *Config) FontPaths() (bold, medium string, ok bool) {
	if c.Document.AssetsDir == "" {
		return "", "", false
	}
	bold = filepath.Join(c.Document.AssetsDir, BoldFontFileName)
	medium = filepath.Join(c.Document.AssetsDir, MediumFontFileName)
	for _, p := range []string{bold, medium} {
		if _, err := os.Stat(p); err != nil {
			return "", "", false
		}
	}
	return bold, medium, true
}
