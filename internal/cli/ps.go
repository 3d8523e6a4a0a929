// Package cli — ps.go implements the "primer ps" command: list the
// server containers primer has started, running or stopped.
//
// Discovery goes through the primer.managed-by label filter, so nothing
// else running on the daemon appears in the listing.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/primer/internal/docker"
	"github.com/mmr-tortoise/primer/internal/model"
)

// NewPsCommand creates the "ps" cobra command.
func NewPsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ps",
		Short: "List server containers started by primer",
		Long: `List the Docker containers primer has started, including stopped
ones. Containers are discovered through their primer labels, so other
containers on the same daemon are never shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServer(cmd.Context(), func(ctx context.Context, server *docker.Server) error {
				instances, err := server.List(ctx)
				if err != nil {
					return err
				}
				if IsJSONOutput() {
					data, err := json.MarshalIndent(instances, "", "  ")
					if err != nil {
						return model.WrapCLIError(model.ExitGeneralError, "failed to encode listing", err)
					}
					fmt.Println(string(data))
					return nil
				}
				renderInstances(os.Stdout, instances)
				return nil
			})
		},
	}
}

// withServer connects to the daemon, verifies it responds, and hands a
// ready Server to fn. Shared by the ps and stop commands.
func withServer(ctx context.Context, fn func(context.Context, *docker.Server) error) error {
	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()
	if err := cli.Ping(ctx); err != nil {
		return err
	}

	st := newHostState()
	return fn(ctx, docker.NewServer(cli, st.runner, st.path()))
}

// renderInstances writes the text listing. Split from the command so
// tests can render into a buffer.
func renderInstances(w io.Writer, instances []docker.Instance) {
	if len(instances) == 0 {
		fmt.Fprintln(w, "no primer containers found")
		return
	}
	for _, inst := range instances {
		mark := okMark
		if inst.Status != "running" {
			mark = warnMark
		}
		fmt.Fprintf(w, "%s %s  %s  port %d (proxy %d)  %s\n",
			mark, inst.ContainerName, inst.Status, inst.Port, inst.ProxyPort, inst.Repo)
	}
}
