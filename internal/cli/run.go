// Package cli — run.go implements the "primer run" command: find a free
// TCP port and start the downstream server, natively or in Docker.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/primer/internal/docker"
	"github.com/mmr-tortoise/primer/internal/launch"
	"github.com/mmr-tortoise/primer/internal/manifest"
	"github.com/mmr-tortoise/primer/internal/model"
	"github.com/mmr-tortoise/primer/internal/port"
)

// runFlags holds the flag values for the run command.
type runFlags struct {
	stdio  bool // --stdio: pass the port contract flags to the server
	port   int  // --port: pin the listen port instead of scanning
	docker bool // --docker: start the server image in a container
}

// NewRunCommand creates the "run" cobra command.
func NewRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Find a free port and start the downstream server",
		Long: `Scan the configured port range for a free TCP port and start the
server. With --stdio the server receives the negotiated ports as flags
(--stdio --port <p> --proxy-port <p+1>); without it the server binds its
own listener. With --docker the server image runs in a container with
both ports published.

The proxy port is always the listen port plus one. It is not checked
for availability; both ports are printed before the server starts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.stdio, "stdio", false, "Run the server in stdio mode with the port contract flags")
	cmd.Flags().IntVar(&flags.port, "port", 0, "Pin the listen port instead of scanning (default: scan)")
	cmd.Flags().BoolVar(&flags.docker, "docker", false, "Run the server image in a Docker container")

	return cmd
}

// runRun picks the listen port and dispatches to the native or Docker
// launch path.
func runRun(ctx context.Context, flags *runFlags) error {
	m, err := manifest.Load(".")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load manifest", err)
	}

	listenPort, err := pickPort(m, flags.port)
	if err != nil {
		return err
	}
	proxyPort := port.ProxyPort(listenPort)
	fmt.Printf("%s port %d (proxy %d)\n", okMark, listenPort, proxyPort)

	if flags.docker {
		return runInDocker(ctx, m, listenPort, proxyPort)
	}

	dir := resolveCloneDir(m)
	if _, err := os.Stat(dir); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("server directory %s not found — run `primer setup` first", dir), err)
	}

	st := newHostState()
	launcher := launch.NewLauncher(st.runner, st.path())
	return launcher.Launch(ctx, dir, m.Server.Command, launch.Options{
		Stdio: flags.stdio,
		Port:  listenPort,
	})
}

// pickPort returns the pinned port when --port was given, otherwise the
// first free port in the manifest's range. A pinned port is probed too,
// so a knowingly-occupied port fails before the server starts.
func pickPort(m *manifest.Manifest, pinned int) (int, error) {
	scanner := port.NewScanner(port.NewDialProbe())
	if pinned != 0 {
		return scanner.FindAvailablePort(model.PortRange{Start: pinned, End: pinned})
	}
	return scanner.FindAvailablePort(m.Ports.Range())
}

// runInDocker starts the server image with both ports published. The
// env file is passed through when the clone has one; a missing file is
// fine for images that carry their own configuration.
func runInDocker(ctx context.Context, m *manifest.Manifest, listenPort, proxyPort int) error {
	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()
	if err := cli.Ping(ctx); err != nil {
		return err
	}

	envFile := filepath.Join(resolveCloneDir(m), m.Env.File)
	if _, statErr := os.Stat(envFile); statErr != nil {
		envFile = ""
	}

	st := newHostState()
	server := docker.NewServer(cli, st.runner, st.path())
	name := "primer-" + strconv.Itoa(listenPort)
	id, err := server.Run(ctx, m.Server.Image, name, m.Repo.URL, listenPort, proxyPort, envFile)
	if err != nil {
		return err
	}
	fmt.Printf("%s container %s started (%s)\n", okMark, name, id)
	return nil
}
