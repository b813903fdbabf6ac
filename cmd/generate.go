// =============================================================================
// Stundennachweis Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, the main command of the tool. It
// runs the full pipeline for one input file.
//
// COMMAND USAGE:
//   stundennachweis generate <input> [flags]
//
// FLAGS:
//   --assets      : Directory with fonts and background.pdf
//   --background  : Backdrop PDF laid under the first page
//   --output-dir  : Name of the output directory next to the input
//   --no-totals   : Omit the total hours row
//   --dry-run     : Build every document without writing files
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/stundennachweis/internal/converter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun builds the documents without writing output files.
var dryRun bool

// noTotals omits the total hours row.
var noTotals bool

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

var generateCmd = &cobra.Command{
	Use:   "generate <input>",
	Short: "Generate one PDF per client and project from a time tracking export",
	Long: `The generate command reads a CSV or XLSX time tracking export, groups the
entries by client and project and writes one "Stundennachweis" PDF per group
into the output directory next to the input file.

Output files are named {date}_Stundennachweis_{project}_RNR.pdf. Existing
files with the same name are overwritten.

The first error stops the run. Documents written before it stay on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("assets", "", "Directory with fonts and background.pdf")
	generateCmd.Flags().String("background", "", "Backdrop PDF laid under the first page")
	generateCmd.Flags().String("output-dir", "", "Name of the output directory next to the input")
	generateCmd.Flags().BoolVar(&noTotals, "no-totals", false, "Omit the total hours row")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build every document without writing files")

	viper.BindPFlag("assets_dir", generateCmd.Flags().Lookup("assets"))
	viper.BindPFlag("background", generateCmd.Flags().Lookup("background"))
	viper.BindPFlag("output_dir", generateCmd.Flags().Lookup("output-dir"))
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runGenerate(cmd *cobra.Command, inputPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noTotals {
		cfg.Document.Totals = false
	}

	logger := newLogger(cfg)

	result, err := converter.New(inputPath, cfg,
		converter.WithLogger(logger),
		converter.WithDryRun(dryRun),
	).Run()
	if err != nil {
		return err
	}

	logger.Info("Run finished",
		"run", result.RunID,
		"entries", result.Stats.EntriesRead,
		"documents", result.Stats.DocumentsWritten,
		"warnings", result.Stats.ValidationWarnings,
		"duration", result.Stats.ProcessingTime,
	)

	out := cmd.OutOrStdout()
	if dryRun {
		for _, doc := range result.Documents {
			fmt.Fprintf(out, "%s (%d entries, %s h)\n", doc.Path, doc.Entries, doc.Hours)
		}
		fmt.Fprintf(out, "Dry run: %d document(s) would be written.\n", len(result.Documents))
		return nil
	}

	fmt.Fprintln(out, "PDF invoices successfully generated.")
	return nil
}
