// Package cli — setup.go implements the "primer setup" command, the
// full top-to-bottom bootstrap.
//
// Orchestration steps:
//  1. Load the manifest (built-in defaults unless a primer.yaml/.jsonc
//     overrides them)
//  2. Ensure prerequisite tools and gate the Python version
//  3. Clone the server repository (skipped when the directory exists)
//  4. Provision the Python environment and Playwright browsers
//  5. Write the .env secrets file from an interactive prompt
//  6. Optionally build a wheel and install it as a global tool
//  7. Optionally find a free port and start the server
//
// Steps 6 and 7 are gated by y/N confirms; declining them is a normal
// exit, not an error. Every other failure aborts the run immediately.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/primer/internal/launch"
	"github.com/mmr-tortoise/primer/internal/manifest"
	"github.com/mmr-tortoise/primer/internal/model"
	"github.com/mmr-tortoise/primer/internal/port"
	"github.com/mmr-tortoise/primer/internal/prompt"
	"github.com/mmr-tortoise/primer/internal/provision"
	"github.com/mmr-tortoise/primer/internal/repo"
)

// NewSetupCommand creates the "setup" cobra command.
func NewSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Bootstrap the host and the server environment end to end",
		Long: `Run the full bootstrap: install prerequisite tools, clone the server
repository, provision its Python environment and browsers, and write
the .env file. Optionally build and globally install the server, and
start it on the first free port.

Setup is safe to re-run: present tools and an existing clone are
detected and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.Context())
		},
	}
}

// runSetup is the main orchestration function for the setup command.
func runSetup(ctx context.Context) error {
	m, err := manifest.Load(".")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load manifest", err)
	}

	st := newHostState()
	pr := prompt.New()

	// Step 1: prerequisites. Shared with `primer deps`.
	results, err := ensureAll(ctx, m, st, pr)
	if printErr := printEnsureResults(results); printErr != nil {
		return printErr
	}
	if err != nil {
		return err
	}

	// Step 2: clone. Presence of the directory means a prior run got
	// this far; the clone is never refreshed.
	cloner := repo.NewCloner(st.runner, st.path())
	dir := resolveCloneDir(m)
	cloned, err := cloner.CloneIfAbsentTo(ctx, m.Repo.URL, dir)
	if err != nil {
		return err
	}
	if cloned {
		fmt.Printf("%s cloned %s\n", okMark, dir)
	} else {
		fmt.Printf("%s using existing clone at %s\n", okMark, dir)
	}

	// Step 3: Python environment and browsers.
	prov := provision.NewProvisioner(st.runner, st.path())
	if err := prov.Provision(ctx, dir, m.Browsers); err != nil {
		return err
	}
	fmt.Printf("%s environment provisioned\n", okMark)

	// Step 4: secrets file.
	envPath, err := writeEnvFile(m, dir, pr)
	if err != nil {
		return err
	}
	fmt.Printf("%s wrote %s\n", okMark, envPath)

	// Step 5: optional global install.
	installGlobally, err := pr.Confirm("Install the server as a global tool?",
		"Builds a wheel with `uv build` and installs it with `uv tool install`.")
	if err != nil {
		return err
	}
	if installGlobally {
		wheel, err := prov.Build(ctx, dir)
		if err != nil {
			return err
		}
		if err := prov.InstallGlobal(ctx, dir, wheel); err != nil {
			return err
		}
		fmt.Printf("%s installed %s globally\n", okMark, wheel)
	}

	// Step 6: optional launch. Declining is a successful exit — the
	// environment is ready and `primer run` starts the server later.
	startNow, err := pr.Confirm("Start the server now?", "")
	if err != nil {
		return err
	}
	if !startNow {
		fmt.Printf("%s setup complete — run `primer run` to start the server\n", okMark)
		return nil
	}

	scanner := port.NewScanner(port.NewDialProbe())
	listenPort, err := scanner.FindAvailablePort(m.Ports.Range())
	if err != nil {
		return err
	}
	fmt.Printf("%s port %d (proxy %d)\n", okMark, listenPort, port.ProxyPort(listenPort))

	launcher := launch.NewLauncher(st.runner, st.path())
	return launcher.Launch(ctx, dir, m.Server.Command, launch.Options{
		Stdio: true,
		Port:  listenPort,
	})
}
