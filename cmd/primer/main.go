// Package main is the entry point for the primer CLI.
//
// The binary bootstraps a development host for the browser-use MCP
// server. All functionality lives in the internal/cli package, which
// defines the cobra commands; main only injects build metadata.
package main

import (
	"github.com/mmr-tortoise/primer/internal/cli"
)

// version, commit, and date are set at build time via ldflags and
// surface in the --version flag output. During development they keep
// their defaults.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
