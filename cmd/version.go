// =============================================================================
// Stundennachweis Generator - Version Command
// =============================================================================
//
// Prints the release the binary was built from. Release builds stamp the
// version, commit and date through the linker:
//
//   go build -ldflags "\
//     -X github.com/ginjaninja78/stundennachweis/cmd.Version=1.2.0 \
//     -X github.com/ginjaninja78/stundennachweis/cmd.Commit=$(git rev-parse --short HEAD) \
//     -X github.com/ginjaninja78/stundennachweis/cmd.BuildDate=$(date -u +%F)"
//
// Local builds report "dev".
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Build metadata, stamped at link time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the release this binary was built from",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "Stundennachweis Generator %s\n", Version)
	fmt.Fprintf(w, "  commit: %s\n  built:  %s\n  go:     %s %s/%s\n",
		Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
