//go:build windows

package docker

import (
	"fmt"
	"time"

	winio "github.com/Microsoft/go-winio"
)

// dockerPipePath is Docker Desktop's fixed named-pipe address on
// Windows; it is not user-configurable through the filesystem.
const dockerPipePath = `\\.\pipe\docker_engine`

// detectWindowsPipe probes the Docker named pipe with a brief winio
// dial. The standard net package cannot dial named pipes, so this is
// the only reliable existence check short of a full API call.
func detectWindowsPipe() (string, error) {
	timeout := time.Second
	conn, err := winio.DialPipe(dockerPipePath, &timeout)
	if err != nil {
		return "", fmt.Errorf("Docker named pipe not found at %s: %w", dockerPipePath, err)
	}
	conn.Close()
	return "npipe:////./pipe/docker_engine", nil
}
