// Package cli implements the metromap command-line interface.
//
// This package provides commands for compiling a metro network description
// into a solver-ready constraint model, fetching station identifiers from
// the transit authority API, rendering the parsed network for inspection,
// and managing the HTTP response cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - generate: Parse the network DSL and compile the AMPL model
//   - fetch: Fetch station identifiers and write naptan.json
//   - preview: Render the parsed network as SVG or PNG
//   - cache: Manage the HTTP response cache
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the metromap CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree. The
// logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "metromap",
		Short:        "metromap compiles metro network descriptions into layout constraints",
		Long:         `metromap parses a line-oriented description of a metro network, builds and validates the network model, and compiles its alignment declarations into a constraint model for the external layout solver.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("metromap %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
