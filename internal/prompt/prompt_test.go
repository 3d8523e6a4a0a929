package prompt

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/primer/internal/model"
)

// TestSecretFromReader_RePromptsUntilNonEmpty is the blocking-retry
// contract: empty and whitespace-only lines are rejected, and the first
// non-empty line is returned trimmed.
func TestSecretFromReader_RePromptsUntilNonEmpty(t *testing.T) {
	input := strings.NewReader("\n   \n  sk-test-123  \n")
	var out strings.Builder

	value, err := secretFromReader(input, &out, "OpenAI API key")

	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", value)

	// Two rejected lines mean the prompt was printed three times.
	assert.Equal(t, 3, strings.Count(out.String(), "OpenAI API key:"))
	assert.Equal(t, 2, strings.Count(out.String(), "A value is required."))
}

// TestSecretFromReader_FirstTryAccepted: a valid first line prompts
// exactly once.
func TestSecretFromReader_FirstTryAccepted(t *testing.T) {
	input := strings.NewReader("sk-abc\n")
	var out strings.Builder

	value, err := secretFromReader(input, &out, "OpenAI API key")

	require.NoError(t, err)
	assert.Equal(t, "sk-abc", value)
	assert.Equal(t, 1, strings.Count(out.String(), "OpenAI API key:"))
}

// TestSecretFromReader_EOFWithoutValue: input closing before any value
// is a user cancellation, not a success with an empty secret.
func TestSecretFromReader_EOFWithoutValue(t *testing.T) {
	input := strings.NewReader("\n\n")
	var out strings.Builder

	_, err := secretFromReader(input, &out, "OpenAI API key")

	require.Error(t, err)
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitUserCancelled, cliErr.Code)
}

// TestRequireNonEmpty mirrors the validator huh runs on terminal input.
func TestRequireNonEmpty(t *testing.T) {
	assert.Error(t, requireNonEmpty(""))
	assert.Error(t, requireNonEmpty("   "))
	assert.NoError(t, requireNonEmpty("sk-x"))
}

// TestReadLine exercises the single-line reader used by the non-terminal
// confirm path.
func TestReadLine(t *testing.T) {
	line, err := readLine(strings.NewReader("yes\nmore"))
	require.NoError(t, err)
	assert.Equal(t, "yes", line)

	// A final line without a newline is still returned.
	line, err = readLine(strings.NewReader("y"))
	require.NoError(t, err)
	assert.Equal(t, "y", line)

	// Empty input surfaces EOF for the caller to apply the default.
	_, err = readLine(strings.NewReader(""))
	assert.ErrorIs(t, err, io.EOF)
}
