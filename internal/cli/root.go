// Package cli provides the Cobra command structure for aster.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/aster/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root aster command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "aster",
		Short: "A live markdown document editor core",
		Long: `aster maintains an editable markdown document with undo history and
keeps a structured, render-ready preview continuously synchronized
with edits. The CLI offers one-shot rendering and document statistics
on top of the same engine.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
