package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureStatus_String verifies that EnsureStatus values produce
// the expected string representations for CLI output and JSON serialization.
func TestEnsureStatus_String(t *testing.T) {
	tests := []struct {
		status   EnsureStatus
		expected string
	}{
		{StatusAlreadyPresent, "already-present"},
		{StatusInstalled, "installed"},
		{StatusFailed, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

// TestEnsureStatus_IsValid checks that only defined status values pass validation.
func TestEnsureStatus_IsValid(t *testing.T) {
	assert.True(t, StatusAlreadyPresent.IsValid())
	assert.True(t, StatusInstalled.IsValid())
	assert.True(t, StatusFailed.IsValid())
	assert.False(t, EnsureStatus("invalid").IsValid())
	assert.False(t, EnsureStatus("").IsValid())
}

// TestParseEnsureStatus verifies string-to-status conversion,
// including case normalization and error cases.
func TestParseEnsureStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected EnsureStatus
		hasError bool
	}{
		{"already-present", StatusAlreadyPresent, false},
		{"installed", StatusInstalled, false},
		{"failed", StatusFailed, false},
		{"Installed", StatusInstalled, false}, // case insensitive
		{"FAILED", StatusFailed, false},       // case insensitive
		{"pending", "", true},                 // unknown value
		{"", "", true},                        // empty string
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseEnsureStatus(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestPackageSpec_Validate covers the two installation-route requirements:
// a spec must name a command and carry either a manager mapping or a
// uv tool fallback.
func TestPackageSpec_Validate(t *testing.T) {
	valid := PackageSpec{
		Command:  "git",
		Packages: map[string]string{"apt": "git"},
	}
	assert.NoError(t, valid.Validate())

	uvOnly := PackageSpec{Command: "mcp-proxy", UvTool: "mcp-proxy"}
	assert.NoError(t, uvOnly.Validate())

	noCommand := PackageSpec{Packages: map[string]string{"apt": "git"}}
	assert.Error(t, noCommand.Validate())

	noRoute := PackageSpec{Command: "git"}
	assert.Error(t, noRoute.Validate())
}

// TestPackageSpec_PackageFor verifies mapping lookup, including the
// "absent entry means not installable via that manager" rule.
func TestPackageSpec_PackageFor(t *testing.T) {
	spec := PackageSpec{
		Command: "python3",
		Packages: map[string]string{
			"apt":  "python3",
			"brew": "python@3.12",
		},
	}

	pkg, ok := spec.PackageFor("brew")
	assert.True(t, ok)
	assert.Equal(t, "python@3.12", pkg)

	_, ok = spec.PackageFor("pacman")
	assert.False(t, ok, "managers without a mapping must report no package")
}

// TestEnsureResult_String checks the one-line summaries used by
// verbose output and the doctor command.
func TestEnsureResult_String(t *testing.T) {
	present := EnsureResult{Command: "git", Status: StatusAlreadyPresent}
	assert.Equal(t, "git: already-present", present.String())

	installed := EnsureResult{Command: "uv", Status: StatusInstalled, Manager: "brew"}
	assert.Equal(t, "uv: installed (via brew)", installed.String())
}

// TestPortRange_Validate exercises boundary validation on the inclusive
// scan interval.
func TestPortRange_Validate(t *testing.T) {
	tests := []struct {
		name     string
		r        PortRange
		hasError bool
	}{
		{"typical", PortRange{Start: 8000, End: 9000}, false},
		{"single port", PortRange{Start: 8000, End: 8000}, false},
		{"end below start", PortRange{Start: 9000, End: 8000}, true},
		{"start zero", PortRange{Start: 0, End: 100}, true},
		{"end above max", PortRange{Start: 65000, End: 70000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestPortRange_Contains verifies inclusive bounds on both ends.
func TestPortRange_Contains(t *testing.T) {
	r := PortRange{Start: 8000, End: 9000}
	assert.True(t, r.Contains(8000), "start is inclusive")
	assert.True(t, r.Contains(9000), "end is inclusive")
	assert.True(t, r.Contains(8500))
	assert.False(t, r.Contains(7999))
	assert.False(t, r.Contains(9001))
}

// TestCLIError verifies message formatting, unwrapping, and the
// constructor helpers.
func TestCLIError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := WrapCLIError(ExitDockerUnavailable, "Docker daemon is not responding", underlying)

	assert.Equal(t, ExitDockerUnavailable, err.Code)
	assert.Equal(t, "Docker daemon is not responding: connection refused", err.Error())
	assert.ErrorIs(t, err, underlying, "Unwrap must expose the underlying error")

	plain := NewCLIError(ExitMissingTool, "no supported package manager found")
	assert.Equal(t, "no supported package manager found", plain.Error())
	assert.Nil(t, plain.Unwrap())
}
