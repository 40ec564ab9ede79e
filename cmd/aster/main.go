// Package main is the entry point for the aster CLI.
package main

import (
	"os"

	"github.com/dshills/aster/internal/cli"
	"github.com/dshills/aster/internal/logging"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error("command failed", "error", err)
		return 1
	}
	return 0
}
