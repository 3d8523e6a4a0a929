package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/primer/internal/model"
)

// TestExitStatus_DirectCLIError: an unwrapped CLIError maps to its own
// code and message.
func TestExitStatus_DirectCLIError(t *testing.T) {
	cause := errors.New("fatal: repository not found")
	err := model.WrapCLIError(model.ExitGitError, "git clone failed", cause)

	code, message, underlying := exitStatus(err)

	assert.Equal(t, model.ExitGitError, code)
	assert.Equal(t, "git clone failed", message)
	assert.Equal(t, cause, underlying)
}

// TestExitStatus_WrappedCLIError: a CLIError wrapped further up the
// chain must still dictate the exit code, not fall back to the generic
// path.
func TestExitStatus_WrappedCLIError(t *testing.T) {
	inner := model.NewCLIError(model.ExitPortExhausted, "no available TCP port in range 8000-9000")
	err := fmt.Errorf("starting server: %w", inner)

	code, message, _ := exitStatus(err)

	assert.Equal(t, model.ExitPortExhausted, code)
	assert.Equal(t, "no available TCP port in range 8000-9000", message)
}

// TestExitStatus_PlainError falls back to the general-error code.
func TestExitStatus_PlainError(t *testing.T) {
	code, message, underlying := exitStatus(errors.New("something broke"))

	assert.Equal(t, model.ExitGeneralError, code)
	assert.Equal(t, "something broke", message)
	assert.Nil(t, underlying)
}
