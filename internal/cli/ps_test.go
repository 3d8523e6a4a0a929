package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/primer/internal/docker"
)

// TestRenderInstances lists running and stopped containers with their
// ports and source repository.
func TestRenderInstances(t *testing.T) {
	var buf bytes.Buffer
	renderInstances(&buf, []docker.Instance{
		{
			ContainerName: "primer-8000",
			Status:        "running",
			Port:          8000,
			ProxyPort:     8001,
			Repo:          "https://github.com/co-browser/browser-use-mcp-server.git",
		},
		{
			ContainerName: "primer-8002",
			Status:        "exited",
			Port:          8002,
			ProxyPort:     8003,
			Repo:          "https://github.com/co-browser/browser-use-mcp-server.git",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "primer-8000  running  port 8000 (proxy 8001)")
	assert.Contains(t, out, "primer-8002  exited  port 8002 (proxy 8003)")
	assert.Contains(t, out, "https://github.com/co-browser/browser-use-mcp-server.git")
}

// TestRenderInstances_Empty: an empty daemon renders a clear message,
// not silence.
func TestRenderInstances_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderInstances(&buf, nil)

	assert.Equal(t, "no primer containers found\n", buf.String())
}
