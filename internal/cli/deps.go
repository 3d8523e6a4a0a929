// Package cli — deps.go implements the "primer deps" command and the
// shared prerequisite-resolution flow that "primer setup" reuses.
//
// Resolution order:
//  1. macOS only: offer a Homebrew bootstrap when no manager is present
//  2. ensure uv (native manager route, or the upstream install script)
//  3. ensure the remaining prerequisites (git, python3, uv tools)
//  4. gate the Python interpreter version
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/primer/internal/manifest"
	"github.com/mmr-tortoise/primer/internal/model"
	"github.com/mmr-tortoise/primer/internal/prompt"
)

// homebrewInstallScript is the upstream Homebrew bootstrap, run only
// after the user confirms.
const homebrewInstallScript = `/bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`

// homebrewBinDirs are the install prefixes Homebrew uses on Apple
// silicon and Intel respectively. After a fresh install they are not on
// PATH yet, so both are probed and prepended.
var homebrewBinDirs = []string{"/opt/homebrew/bin", "/usr/local/bin"}

// NewDepsCommand creates the "deps" cobra command.
func NewDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Install prerequisite tools without touching the repository",
		Long: `Detect the host's package manager and ensure every prerequisite tool
is installed: git, a new-enough Python, uv, and mcp-proxy. Tools that
are already present are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(".")
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to load manifest", err)
			}
			st := newHostState()
			results, err := ensureAll(cmd.Context(), m, st, prompt.New())
			if printErr := printEnsureResults(results); printErr != nil {
				return printErr
			}
			return err
		},
	}
}

// ensureAll runs the full prerequisite-resolution flow and returns one
// result per tool, in resolution order. On error the results gathered
// so far are still returned so callers can report partial progress.
func ensureAll(ctx context.Context, m *manifest.Manifest, st *hostState, pr prompt.Prompter) ([]model.EnsureResult, error) {
	if err := maybeBootstrapHomebrew(ctx, st, pr); err != nil {
		return nil, err
	}
	if mgr := st.resolver.Manager(); mgr != nil {
		VerboseLog("package manager: %s", mgr.Name())
	} else {
		VerboseLog("no supported package manager detected")
	}

	var results []model.EnsureResult

	// uv first: it is the universal fallback installer, so every uv-tool
	// prerequisite after it depends on it being present.
	uvResult, err := st.resolver.EnsureUv(ctx, m.UvSpec())
	results = append(results, uvResult)
	if err != nil {
		return results, err
	}

	for _, spec := range m.Prerequisites {
		if spec.Command == "uv" {
			continue
		}
		result, err := st.resolver.Ensure(ctx, spec)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}

	pySpec := m.PythonSpec()
	minMajor, minMinor, err := m.Python.MinVersion()
	if err != nil {
		return results, model.WrapCLIError(model.ExitGeneralError, "invalid python.min in manifest", err)
	}
	if err := st.resolver.EnsureMinimumVersion(ctx, pySpec, minMajor, minMinor); err != nil {
		return results, err
	}
	VerboseLog("%s satisfies minimum version %d.%d", pySpec.Command, minMajor, minMinor)

	return results, nil
}

// maybeBootstrapHomebrew offers the Homebrew install on macOS hosts
// that have no supported package manager. Declining is not fatal: the
// run continues manager-less, and the uv script bootstrap plus uv tool
// installs cover everything except tools that only a native manager
// could supply.
func maybeBootstrapHomebrew(ctx context.Context, st *hostState, pr prompt.Prompter) error {
	if runtime.GOOS != "darwin" || st.resolver.Manager() != nil {
		return nil
	}

	ok, err := pr.Confirm("Install Homebrew?",
		"No package manager was found. Homebrew is the standard way to install tools on macOS.")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "%s continuing without a package manager\n", warnMark)
		return nil
	}

	if err := st.runner.RunInteractive(ctx, "", st.path(), "sh", "-c", homebrewInstallScript); err != nil {
		return model.WrapCLIError(model.ExitInstallFailed, "Homebrew install failed", err)
	}

	path := st.path()
	for _, dir := range homebrewBinDirs {
		if _, statErr := os.Stat(dir); statErr == nil && !path.Contains(dir) {
			path = path.Prepend(dir)
		}
	}
	st.redetect(path)
	if st.resolver.Manager() == nil {
		return model.NewCLIError(model.ExitInstallFailed,
			"Homebrew installer finished but brew was not found — open a new shell and re-run")
	}
	return nil
}

// printEnsureResults writes the per-tool outcomes in the selected
// output format.
func printEnsureResults(results []model.EnsureResult) error {
	if IsJSONOutput() {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to encode results", err)
		}
		fmt.Println(string(data))
		return nil
	}
	for _, r := range results {
		mark := okMark
		if r.Status == model.StatusFailed {
			mark = failMark
		}
		fmt.Printf("%s %s\n", mark, r.String())
	}
	return nil
}
