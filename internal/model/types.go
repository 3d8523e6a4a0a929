package model

import (
	"fmt"
	"strings"
)

// EnsureStatus represents the outcome of a single prerequisite check.
// The resolver contract is ensure(command, spec) -> one of these states.
type EnsureStatus string

const (
	// StatusAlreadyPresent indicates the command was found on the search
	// path before any installer was consulted. No installer is invoked.
	StatusAlreadyPresent EnsureStatus = "already-present"

	// StatusInstalled indicates an installer ran and the post-install
	// re-probe confirmed the command is now present.
	StatusInstalled EnsureStatus = "installed"

	// StatusFailed indicates the command is absent and could not be
	// installed — either no installer path applies, or an installer ran
	// and the re-probe still showed absence. Failed is always fatal to
	// the overall run: every later stage assumes the tool exists.
	StatusFailed EnsureStatus = "failed"
)

// String returns the string representation of EnsureStatus.
// Satisfies fmt.Stringer for CLI and JSON output.
func (s EnsureStatus) String() string {
	return string(s)
}

// IsValid checks whether the EnsureStatus value is one of the
// predefined states.
func (s EnsureStatus) IsValid() bool {
	switch s {
	case StatusAlreadyPresent, StatusInstalled, StatusFailed:
		return true
	default:
		return false
	}
}

// ParseEnsureStatus converts a string to an EnsureStatus.
// Returns an error if the string does not match any valid status.
func ParseEnsureStatus(s string) (EnsureStatus, error) {
	status := EnsureStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ensure status: %q (valid: already-present, installed, failed)", s)
	}
	return status, nil
}

// PackageSpec describes one prerequisite: the command to probe on the
// executable search path and, per package manager, the package name to
// request if the command is absent.
//
// A missing entry in Packages means "not installable via that manager".
// Specs are immutable once constructed — the resolver never mutates them.
type PackageSpec struct {
	// Command is the executable name probed on the search path
	// (e.g., "git", "python3", "uv").
	Command string `json:"command"`

	// Packages maps a package-manager identifier (e.g., "apt", "brew")
	// to the package name that manager should install. Managers without
	// an entry cannot provide this prerequisite.
	Packages map[string]string `json:"packages,omitempty"`

	// UvTool, when non-empty, names a package installable via
	// `uv tool install` as the universal fallback when no native
	// package manager carries the command (e.g., "mcp-proxy").
	UvTool string `json:"uvTool,omitempty"`
}

// Validate checks that the spec names a command and at least one
// installation route.
func (p *PackageSpec) Validate() error {
	if p.Command == "" {
		return fmt.Errorf("package spec: command must not be empty")
	}
	if len(p.Packages) == 0 && p.UvTool == "" {
		return fmt.Errorf("package spec %q: no package mapping and no uv tool fallback", p.Command)
	}
	return nil
}

// PackageFor returns the package name for the given manager identifier
// and whether a mapping exists.
func (p *PackageSpec) PackageFor(manager string) (string, bool) {
	pkg, ok := p.Packages[manager]
	return pkg, ok
}

// EnsureResult reports how a prerequisite check concluded: the final
// status, which installation route was taken (empty for already-present),
// and a human-readable detail line for verbose/doctor output.
type EnsureResult struct {
	Command string       `json:"command"`
	Status  EnsureStatus `json:"status"`
	Manager string       `json:"manager,omitempty"`
	Detail  string       `json:"detail,omitempty"`
}

// String returns a one-line summary of the result, e.g.
// "git: already-present" or "uv: installed (via brew)".
func (r EnsureResult) String() string {
	if r.Manager != "" {
		return fmt.Sprintf("%s: %s (via %s)", r.Command, r.Status, r.Manager)
	}
	return fmt.Sprintf("%s: %s", r.Command, r.Status)
}

// PortRange describes the inclusive port interval scanned for a free
// TCP port. The scan walks Start..End sequentially and fails closed
// when the range is exhausted.
type PortRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Validate checks the range boundaries. The range is inclusive on both
// ends, so Start == End is a one-port scan.
func (r PortRange) Validate() error {
	if r.Start < 1 || r.Start > 65535 {
		return fmt.Errorf("port range: start %d out of range (1-65535)", r.Start)
	}
	if r.End < r.Start {
		return fmt.Errorf("port range: end %d is below start %d", r.End, r.Start)
	}
	if r.End > 65535 {
		return fmt.Errorf("port range: end %d out of range (1-65535)", r.End)
	}
	return nil
}

// Contains reports whether the candidate port falls inside the range.
func (r PortRange) Contains(port int) bool {
	return port >= r.Start && port <= r.End
}

// ExitCode defines standard CLI exit codes. These codes allow scripts
// and CI systems to programmatically determine what stage failed.
//
// By design, a user declining an optional step (global install, server
// start) is NOT an error and exits with ExitSuccess.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully, including
	// runs where the user declined optional steps.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitMissingTool indicates a required command is absent and no
	// installer path is available (e.g., unsupported package manager).
	// This condition requires manual intervention.
	ExitMissingTool ExitCode = 2

	// ExitInstallFailed indicates an installer ran but exited non-zero,
	// or the post-install re-probe still showed the command absent.
	ExitInstallFailed ExitCode = 3

	// ExitVersionTooOld indicates the Python runtime is below the minimum
	// version and the upgrade attempt did not remedy it.
	ExitVersionTooOld ExitCode = 4

	// ExitGitError indicates the repository clone failed.
	ExitGitError ExitCode = 5

	// ExitPortExhausted indicates no free TCP port was found in the
	// scanned range.
	ExitPortExhausted ExitCode = 6

	// ExitDockerUnavailable indicates the Docker daemon is not accessible.
	ExitDockerUnavailable ExitCode = 7

	// ExitUserCancelled indicates the user aborted an interactive prompt.
	ExitUserCancelled ExitCode = 8
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
