package docker

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"

	"github.com/mmr-tortoise/primer/internal/model"
)

// defaultPingTimeout bounds the daemon ping. Five seconds covers Docker
// Desktop on macOS, which responds noticeably slower than native Linux.
const defaultPingTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client. It handles automatic
// socket detection across platforms and verifies daemon connectivity
// before any container operation runs.
type Client struct {
	// inner is the underlying SDK client. Wrapped rather than embedded
	// to keep the exposed surface small.
	inner *client.Client
}

// NewClient creates a Docker client with automatic socket detection:
//
//  1. DOCKER_HOST environment variable, used as-is when set
//  2. Platform defaults — /var/run/docker.sock on Linux, the same plus
//     ~/.docker/run/docker.sock on macOS, the docker_engine named pipe
//     on Windows
//
// Returns a CLIError with ExitDockerUnavailable when no socket is found
// or the client cannot be created.
func NewClient() (*Client, error) {
	host := os.Getenv("DOCKER_HOST")
	if host == "" {
		detected, err := detectDockerHost()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitDockerUnavailable, "Docker socket not found", err)
		}
		host = detected
	}

	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		// Version negotiation keeps the wrapper compatible with whatever
		// daemon version the host runs.
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerUnavailable,
			fmt.Sprintf("failed to create Docker client for host %q", host), err)
	}

	return &Client{inner: c}, nil
}

// detectDockerHost probes the known socket locations for the current
// platform and returns the connection string for the first that exists.
// Existence is checked rather than connectivity — Ping handles the
// latter.
func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return detectUnixSocket([]string{"/var/run/docker.sock"})

	case "darwin":
		// Newer Docker Desktop versions place the socket under the user's
		// home directory instead of symlinking /var/run/docker.sock.
		paths := []string{"/var/run/docker.sock"}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, home+"/.docker/run/docker.sock")
		}
		return detectUnixSocket(paths)

	case "windows":
		// Named pipes do not show up in os.Stat; a brief dial is the only
		// way to check the pipe exists. The dial itself is build-tagged
		// (pipe_windows.go) because net cannot speak named pipes.
		return detectWindowsPipe()

	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// detectUnixSocket returns the Docker host URI for the first socket
// path that exists, in the order given.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of: %v — is Docker running?", paths)
}

// Ping verifies the daemon is reachable and responsive, waiting up to
// defaultPingTimeout. A paused or stopped Docker Desktop fails here
// rather than hanging a later container operation.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(model.ExitDockerUnavailable,
			"Docker daemon is not responding — is Docker running?", err)
	}
	return nil
}

// Close releases the client's resources. Safe to call multiple times.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// Inner exposes the underlying SDK client for operations the wrapper
// does not cover.
func (c *Client) Inner() *client.Client {
	return c.inner
}
