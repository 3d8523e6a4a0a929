package docker

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/mmr-tortoise/primer/internal/host"
	"github.com/mmr-tortoise/primer/internal/model"
)

// Server manages primer's server containers. Starting a container goes
// through `docker run` rather than the SDK's ContainerCreate, because
// the CLI flags mirror what a user would type by hand and avoid the
// SDK's Config/HostConfig struct pair; listing and stopping use the SDK
// through Client.
type Server struct {
	cli    *Client
	runner host.Runner
	path   host.SearchPath
}

// NewServer creates a Server that spawns the docker CLI through runner
// and talks to the daemon through cli.
func NewServer(cli *Client, runner host.Runner, path host.SearchPath) *Server {
	return &Server{cli: cli, runner: runner, path: path}
}

// Run starts the server image detached, publishing the listen and proxy
// ports one-to-one and tagging the container with primer labels. The
// env file, when non-empty, is passed through --env-file so secrets
// never appear in the container's command line. Returns the container
// ID printed by docker run.
func (s *Server) Run(ctx context.Context, image, name, repoURL string, port, proxyPort int, envFile string) (string, error) {
	args := []string{"run", "-d", "--name", name,
		"-p", portMapping(port),
		"-p", portMapping(proxyPort),
	}
	if envFile != "" {
		args = append(args, "--env-file", envFile)
	}

	labels := BuildLabels(repoURL, port, proxyPort, time.Now())
	// Sorted label flags keep the argv deterministic.
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--label", k+"="+labels[k])
	}
	args = append(args, image)

	out, err := s.runner.Run(ctx, "", s.path, "docker", args...)
	if err != nil {
		return "", model.WrapCLIError(model.ExitDockerUnavailable,
			fmt.Sprintf("docker run failed for image %q", image), err)
	}
	return strings.TrimSpace(out), nil
}

// portMapping formats a one-to-one host:container port publication.
func portMapping(port int) string {
	p := strconv.Itoa(port)
	return p + ":" + p
}

// List returns every primer-started server container, including stopped
// ones, reconstructed from labels. Containers whose labels no longer
// parse are skipped rather than failing the whole listing.
func (s *Server) List(ctx context.Context) ([]Instance, error) {
	filterArgs := filters.NewArgs(
		filters.Arg("label", LabelManagedBy+"="+ManagedByValue),
	)
	containers, err := s.cli.Inner().ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerUnavailable, "failed to list Docker containers", err)
	}

	instances := make([]Instance, 0, len(containers))
	for _, c := range containers {
		inst, err := ParseLabels(c.Labels)
		if err != nil {
			continue
		}
		inst.ContainerID = c.ID
		inst.Status = c.State
		if len(c.Names) > 0 {
			// The API prefixes names with "/".
			inst.ContainerName = strings.TrimPrefix(c.Names[0], "/")
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// Stop stops a server container gracefully, falling back to the
// daemon's default SIGKILL timeout.
func (s *Server) Stop(ctx context.Context, containerID string) error {
	if err := s.cli.Inner().ContainerStop(ctx, containerID, container.StopOptions{}); err != nil {
		return model.WrapCLIError(model.ExitDockerUnavailable,
			fmt.Sprintf("failed to stop container %q", containerID), err)
	}
	return nil
}
