package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/primer/internal/docker"
)

func stopCandidates() []docker.Instance {
	return []docker.Instance{
		{ContainerID: "abc123def456", ContainerName: "primer-8000", Status: "running"},
		{ContainerID: "abd999000111", ContainerName: "primer-8002", Status: "exited"},
	}
}

// TestFindInstance_ByName: an exact container name wins, even when it
// could also be read as an ID prefix.
func TestFindInstance_ByName(t *testing.T) {
	inst, err := findInstance(stopCandidates(), "primer-8002")

	require.NoError(t, err)
	assert.Equal(t, "abd999000111", inst.ContainerID)
}

// TestFindInstance_ByIDPrefix resolves an unambiguous ID prefix.
func TestFindInstance_ByIDPrefix(t *testing.T) {
	inst, err := findInstance(stopCandidates(), "abc1")

	require.NoError(t, err)
	assert.Equal(t, "primer-8000", inst.ContainerName)
}

// TestFindInstance_AmbiguousPrefix: a prefix matching several
// containers is an error, never a guess.
func TestFindInstance_AmbiguousPrefix(t *testing.T) {
	_, err := findInstance(stopCandidates(), "ab")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "longer ID prefix")
}

// TestFindInstance_NoMatch points the user at the listing command.
func TestFindInstance_NoMatch(t *testing.T) {
	_, err := findInstance(stopCandidates(), "primer-9000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "primer ps")
}
