// =============================================================================
// Stundennachweis Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Stundennachweis Generator CLI. It
// delegates command execution to the cmd package.
//
// USAGE:
//   stundennachweis generate <input>   - Write one PDF per client and project
//   stundennachweis validate <input>   - Check the input without writing PDFs
//   stundennachweis version            - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core pipeline (parsers, grouping, documents, PDF)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/stundennachweis/cmd"
)

func main() {
	cmd.Execute()
}
