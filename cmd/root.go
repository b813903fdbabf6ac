// =============================================================================
// Stundennachweis Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'generate', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (stundennachweis)
//   ├── generateCmd (stundennachweis generate <input>)
//   ├── validateCmd (stundennachweis validate <input>)
//   └── versionCmd (stundennachweis version)
//
// CONFIGURATION:
//   Settings are resolved in this order, later sources winning:
//   1. Built-in defaults
//   2. The YAML configuration file (--config)
//   3. STUNDENNACHWEIS_* environment variables, also read from .env
//   4. Command line flags
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/stundennachweis/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// defaultConfigFile is used when --config is not given. It may be absent.
const defaultConfigFile = "stundennachweis.yaml"

// envPrefix is the prefix of environment variable overrides.
const envPrefix = "STUNDENNACHWEIS"

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// logLevel overrides the configured log level.
var logLevel string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "stundennachweis",

	Short: "Stundennachweis Generator - Turn time tracking exports into PDF proofs of hours",

	Long: `Stundennachweis Generator reads a time tracking export (CSV or XLSX) and
writes one PDF "Stundennachweis" per client and project, ready to be attached
to an invoice.

Key Features:
  - CSV and XLSX input with configurable columns
  - One document per (client, project) with a table of all entries
  - Optional letterhead backdrop, custom fonts, footer and barcode
  - Validation of the input with row numbers for every finding

Example Usage:
  stundennachweis generate times.csv                  # Write PDFs next to times.csv
  stundennachweis generate times.xlsx --assets ./pdf  # Use fonts and letterhead
  stundennachweis validate times.csv                  # Check the input only`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initEnv()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		defaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"Log level: debug, info, warn or error",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initEnv loads .env and enables STUNDENNACHWEIS_* environment overrides.
// A missing .env file is fine, an unreadable or malformed one is not.
func initEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig reads the configuration file and applies environment and flag
// overrides. A missing default configuration file yields the defaults; a
// missing file named explicitly with --config is an error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || rootCmd.PersistentFlags().Changed("config") {
			return nil, err
		}
		cfg = config.Default()
	}

	applyOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyOverrides copies set environment variables and flags onto cfg.
func applyOverrides(cfg *config.Config) {
	if v := viper.GetString("log_level"); v != "" {
		cfg.LogLevel = v
	}
	if v := viper.GetString("assets_dir"); v != "" {
		cfg.Document.AssetsDir = v
	}
	if v := viper.GetString("background"); v != "" {
		cfg.Document.Background = v
	}
	if v := viper.GetString("output_dir"); v != "" {
		cfg.Output.DirName = v
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
}

// newLogger builds the logger for a run from the configured level.
func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "stundennachweis",
	})
	if level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
