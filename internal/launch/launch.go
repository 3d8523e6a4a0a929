package launch

import (
	"context"
	"strconv"

	"github.com/mmr-tortoise/primer/internal/host"
	"github.com/mmr-tortoise/primer/internal/model"
	"github.com/mmr-tortoise/primer/internal/port"
)

// Options selects how the downstream server is started.
type Options struct {
	// Stdio switches the server into stdio transport mode. Port carries
	// the scanned listen port; the proxy port is derived from it.
	Stdio bool
	Port  int
}

// Launcher starts the downstream server process.
type Launcher struct {
	runner host.Runner
	path   host.SearchPath
}

// NewLauncher creates a Launcher that resolves the server command on
// the given search path.
func NewLauncher(runner host.Runner, path host.SearchPath) *Launcher {
	return &Launcher{runner: runner, path: path}
}

// Argv builds the full server command line from the configured command
// and the launch options. Stdio mode appends the negotiated port flags:
//
//	<command...> --stdio --port <p> --proxy-port <p+1>
//
// Default mode passes the command through unchanged and the server
// binds its own listener.
func Argv(command []string, opts Options) []string {
	argv := make([]string, len(command), len(command)+5)
	copy(argv, command)
	if opts.Stdio {
		argv = append(argv, "--stdio",
			"--port", strconv.Itoa(opts.Port),
			"--proxy-port", strconv.Itoa(port.ProxyPort(opts.Port)))
	}
	return argv
}

// Launch runs the server inside dir with inherited standard streams,
// blocking until it exits. A non-zero server exit is reported as a
// general error; the server's own diagnostics have already gone to the
// inherited stderr.
func (l *Launcher) Launch(ctx context.Context, dir string, command []string, opts Options) error {
	if len(command) == 0 {
		return model.NewCLIError(model.ExitGeneralError, "server command is empty")
	}
	argv := Argv(command, opts)
	if err := l.runner.RunInteractive(ctx, dir, l.path, argv[0], argv[1:]...); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "server exited with an error", err)
	}
	return nil
}
