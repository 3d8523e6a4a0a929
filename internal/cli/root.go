// Package cli implements the cobra-based CLI commands for primer.
//
// Each subcommand (setup, deps, env, run, doctor) is defined in its own
// file within this package. This file defines the root command that
// serves as the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/primer/internal/model"
)

// Global flag variables shared across all subcommands, bound to cobra
// persistent flags on the root command.
var (
	// jsonOutput switches command output to structured JSON for machine
	// consumption. Default is human-readable text.
	jsonOutput bool

	// verbose enables detailed step logging on stderr.
	verbose bool
)

// Version, Commit, and Date are injected from the main package, which
// sets them at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Status markers for text output. color degrades to plain text when
// stdout is not a terminal, so these are safe in pipes.
var (
	okMark   = color.GreenString("✓")
	failMark = color.RedString("✗")
	warnMark = color.YellowString("!")
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself performs no action — it provides help text
// and global flags. Functionality lives in the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "primer",
		Short: "Bootstrap a host for the browser-use MCP server",
		Long: `primer prepares a development host for the browser-use MCP server:
it installs prerequisite tools through the host's package manager (with
uv as the universal fallback), clones the server repository, provisions
an isolated Python environment, writes the .env secrets file, and can
find a free TCP port and launch the server.

Re-running primer is safe: completed steps are detected and skipped.`,

		// Errors are formatted by Execute (text or JSON), so cobra's own
		// error and usage printing is silenced.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewSetupCommand())
	rootCmd.AddCommand(NewDepsCommand())
	rootCmd.AddCommand(NewEnvCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewPsCommand())
	rootCmd.AddCommand(NewStopCommand())
	rootCmd.AddCommand(NewDoctorCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into OS exit
// codes. CLIError values carry their own code; other errors exit 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		code, message, underlying := exitStatus(err)
		printError(message, underlying)
		os.Exit(int(code))
	}
}

// exitStatus resolves the exit code and display message for err.
// errors.As walks the whole chain, so a CLIError stays authoritative
// even after being wrapped with fmt.Errorf("...: %w", err) on its way
// up.
func exitStatus(err error) (code model.ExitCode, message string, underlying error) {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code, cliErr.Message, cliErr.Err
	}
	return model.ExitGeneralError, err.Error(), nil
}

// printError writes an error in the format selected by --json. Errors
// go to stderr in both modes; stdout is reserved for command output.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			errObj["error"].(map[string]interface{})["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", failMark, message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "%s %s\n", failMark, message)
		}
	}
}

// VerboseLog prints a message to stderr only when --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
