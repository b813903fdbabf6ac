// =============================================================================
// Stundennachweis Generator - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the generator, including:
//   - Output directory management
//   - Output file naming
//   - The run summary (summary.csv)
//
// OUTPUT LAYOUT:
//   <input directory>/<dir name>/
//       2024-04-02_Stundennachweis_Website Redesign_RNR.pdf
//       ...
//       summary.csv   (optional)
//
// Existing files with the same name are overwritten.
//
// =============================================================================

package utils

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/stundennachweis/internal/fields"
	"github.com/ginjaninja78/stundennachweis/internal/types"
	"github.com/gocarina/gocsv"
)

// SummaryFileName is the name of the run summary inside the output directory.
const SummaryFileName = "summary.csv"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for one run.
type FileManager struct {
	// OutputDir is the directory where generated documents are placed.
	OutputDir string
}

// NewFileManager returns a FileManager writing into dirName next to the
// input file.
func NewFileManager(inputPath, dirName string) *FileManager {
	return &FileManager{
		OutputDir: filepath.Join(filepath.Dir(inputPath), dirName),
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.OutputDir, 0o755); err != nil {
		return &types.IOError{Op: "mkdir", Path: fm.OutputDir, Err: err}
	}
	return nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// InvoiceFileName returns the document file name for a project.
//
// FORMAT:
//
//	{YYYY-MM-DD}_Stundennachweis_{project name}_RNR.pdf
//
// The date is the generation date; characters that are invalid in file names
// are replaced in the project name.
//
// EXAMPLE:
//
//	InvoiceFileName(2024-04-02, "Re/Design: v2?")
//	// "2024-04-02_Stundennachweis_Re_Design_ v2__RNR.pdf"
func InvoiceFileName(generated time.Time, projectName string) string {
	return generated.Format(fields.FilenameDateLayout) +
		"_Stundennachweis_" + fields.SanitizeFilename(projectName) + "_RNR.pdf"
}

// InvoicePath returns the full output path for a project's document.
func (fm *FileManager) InvoicePath(generated time.Time, projectName string) string {
	return filepath.Join(fm.OutputDir, InvoiceFileName(generated, projectName))
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// SummaryRow is one line of summary.csv.
type SummaryRow struct {
	RunID            string `csv:"run_id"`
	Client           string `csv:"client"`
	ProjectReference string `csv:"project_reference"`
	ProjectName      string `csv:"project_name"`
	Period           string `csv:"period"`
	Entries          int    `csv:"entries"`
	Hours            string `csv:"hours"`
	File             string `csv:"file"`
}

// WriteSummary writes rows to summary.csv in the output directory.
//
// RETURNS:
//   - The path to the summary file.
//   - An *types.IOError if writing fails.
func (fm *FileManager) WriteSummary(rows []SummaryRow) (string, error) {
	summaryPath := filepath.Join(fm.OutputDir, SummaryFileName)

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", &types.IOError{Op: "create", Path: summaryPath, Err: err}
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		file.Close()
		return "", &types.IOError{Op: "write", Path: summaryPath, Err: err}
	}

	if err := file.Close(); err != nil {
		return "", &types.IOError{Op: "write", Path: summaryPath, Err: err}
	}

	return summaryPath, nil
}

// ReadSummary reads a summary.csv written by WriteSummary.
func ReadSummary(summaryPath string) ([]SummaryRow, error) {
	file, err := os.Open(summaryPath)
	if err != nil {
		return nil, &types.IOError{Op: "open", Path: summaryPath, Err: err}
	}
	defer file.Close()

	var rows []SummaryRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, &types.IOError{Op: "read", Path: summaryPath, Err: err}
	}
	return rows, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
