package host

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner is the capability interface for spawning external processes.
// All of primer's side effects on the host — installer invocations,
// git clone, uv provisioning, the server launch — pass through a Runner,
// so tests can substitute fakes and assert call sequences.
type Runner interface {
	// Run executes a command and captures its output. dir is the working
	// directory ("" means inherit), path supplies the executable search
	// path for both locating the binary and the child's PATH variable.
	// On failure the returned error includes trailing stderr output.
	Run(ctx context.Context, dir string, path SearchPath, name string, args ...string) (string, error)

	// RunInteractive executes a command wired to the parent's stdin,
	// stdout, and stderr. Used for installers that prompt (sudo, the uv
	// install script) and for the downstream server, which runs until
	// interrupted.
	RunInteractive(ctx context.Context, dir string, path SearchPath, name string, args ...string) error
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewRunner creates the production Runner. The constructor exists so a
// future option (per-command timeout, logging middleware) can be added
// without breaking callers.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command, capturing stdout and stderr separately.
// On a non-zero exit the stderr tail is folded into the returned error,
// matching how the shell scripts surfaced installer diagnostics.
func (r *ExecRunner) Run(ctx context.Context, dir string, path SearchPath, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.resolve(path, name), args...)
	cmd.Dir = dir
	if path != nil {
		cmd.Env = path.Environ()
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := fmt.Sprintf("%s %s failed", name, strings.Join(args, " "))
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg = fmt.Sprintf("%s: %s", msg, s)
		}
		return "", fmt.Errorf("%s: %w", msg, err)
	}

	return stdout.String(), nil
}

// RunInteractive executes the command with inherited standard streams.
// The call blocks until the child exits; cancellation of ctx kills it.
func (r *ExecRunner) RunInteractive(ctx context.Context, dir string, path SearchPath, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, r.resolve(path, name), args...)
	cmd.Dir = dir
	if path != nil {
		cmd.Env = path.Environ()
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// resolve maps a bare command name to an absolute path using the
// explicit SearchPath when one is supplied. Falling back to the bare
// name lets exec consult the ambient PATH, which is the right behavior
// when the caller passes no path (e.g., tests with a nil SearchPath).
func (r *ExecRunner) resolve(path SearchPath, name string) string {
	if path == nil || strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	if abs, ok := path.LookPath(name); ok {
		return abs
	}
	return name
}
