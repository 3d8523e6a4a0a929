package docker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildParseLabels_RoundTrip: labels written by BuildLabels must
// reconstruct the same instance metadata.
func TestBuildParseLabels_RoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	labels := BuildLabels("https://github.com/co-browser/browser-use-mcp-server.git", 8000, 8001, createdAt)

	inst, err := ParseLabels(labels)

	require.NoError(t, err)
	assert.Equal(t, "https://github.com/co-browser/browser-use-mcp-server.git", inst.Repo)
	assert.Equal(t, 8000, inst.Port)
	assert.Equal(t, 8001, inst.ProxyPort)
	assert.Equal(t, createdAt, inst.CreatedAt)
}

// TestBuildLabels_TimestampIsUTC: timestamps are normalized so label
// values do not depend on the host timezone.
func TestBuildLabels_TimestampIsUTC(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	createdAt := time.Date(2026, 8, 30, 19, 0, 0, 0, loc)

	labels := BuildLabels("https://example.com/repo.git", 8000, 8001, createdAt)

	assert.Equal(t, "2026-08-30T10:00:00Z", labels[LabelCreatedAt])
}

// TestParseLabels_MissingLabelsReportedTogether: one error lists every
// absent key instead of failing on the first.
func TestParseLabels_MissingLabelsReportedTogether(t *testing.T) {
	_, err := ParseLabels(map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelRepo:      "https://example.com/repo.git",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), LabelPort)
	assert.Contains(t, err.Error(), LabelProxyPort)
	assert.Contains(t, err.Error(), LabelCreatedAt)
}

// TestParseLabels_ForeignManagedBy: containers tagged by another tool
// are rejected even when every key is present.
func TestParseLabels_ForeignManagedBy(t *testing.T) {
	labels := BuildLabels("https://example.com/repo.git", 8000, 8001, time.Now())
	labels[LabelManagedBy] = "someone-else"

	_, err := ParseLabels(labels)
	assert.Error(t, err)
}

// TestParseLabels_MalformedPort covers non-numeric port labels.
func TestParseLabels_MalformedPort(t *testing.T) {
	labels := BuildLabels("https://example.com/repo.git", 8000, 8001, time.Now())
	labels[LabelPort] = "eight thousand"

	_, err := ParseLabels(labels)
	assert.Error(t, err)
}
