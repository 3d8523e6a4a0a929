// Package cli — stop.go implements the "primer stop" command: stop a
// server container primer started, addressed by name or ID prefix.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/primer/internal/docker"
	"github.com/mmr-tortoise/primer/internal/model"
)

// NewStopCommand creates the "stop" cobra command.
func NewStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <container>",
		Short: "Stop a server container started by primer",
		Long: `Stop a running server container. The container can be addressed by
its name (e.g. "primer-8000") or by an unambiguous ID prefix, the same
way docker's own CLI resolves containers. Only containers started by
primer are considered; see "primer ps" for candidates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServer(cmd.Context(), func(ctx context.Context, server *docker.Server) error {
				instances, err := server.List(ctx)
				if err != nil {
					return err
				}
				inst, err := findInstance(instances, args[0])
				if err != nil {
					return err
				}
				if err := server.Stop(ctx, inst.ContainerID); err != nil {
					return err
				}
				fmt.Printf("%s stopped %s\n", okMark, inst.ContainerName)
				return nil
			})
		},
	}
}

// findInstance resolves target against the listing: exact container
// name first, then ID prefix. An ambiguous prefix is an error rather
// than a guess.
func findInstance(instances []docker.Instance, target string) (docker.Instance, error) {
	for _, inst := range instances {
		if inst.ContainerName == target {
			return inst, nil
		}
	}

	var matches []docker.Instance
	for _, inst := range instances {
		if strings.HasPrefix(inst.ContainerID, target) {
			matches = append(matches, inst)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return docker.Instance{}, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("no primer container matches %q — run `primer ps` to list them", target))
	default:
		return docker.Instance{}, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%q matches %d containers — use a longer ID prefix", target, len(matches)))
	}
}
