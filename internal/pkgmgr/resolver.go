package pkgmgr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mmr-tortoise/primer/internal/host"
	"github.com/mmr-tortoise/primer/internal/model"
)

const (
	// uvInstallScript is the curl-pipe bootstrap for uv on Unix, used
	// only when no native package manager can supply it.
	uvInstallScript = "curl -LsSf https://astral.sh/uv/install.sh | sh"

	// uvInstallScriptWindows is the PowerShell equivalent.
	uvInstallScriptWindows = "irm https://astral.sh/uv/install.ps1 | iex"
)

// Resolver implements the ensure(command, spec) contract.
//
// It holds the explicit SearchPath that command probes run against.
// When a bootstrap step makes a new directory relevant (the uv script
// installs into ~/.local/bin), the resolver prepends it to its own
// SearchPath value; Path() exposes the updated value so later stages
// (provisioning, launch) inherit it. The ambient process PATH is never
// touched.
type Resolver struct {
	runner host.Runner
	path   host.SearchPath

	// mgr is the package manager detected at startup, or nil when the
	// host has none of the supported managers.
	mgr Manager

	// goos and root are resolved at construction and injected in tests.
	goos string
	root bool
}

// NewResolver creates a Resolver for the current platform. mgr may be
// nil (no supported package manager detected).
func NewResolver(runner host.Runner, path host.SearchPath, mgr Manager) *Resolver {
	return newResolver(runner, path, mgr, runtime.GOOS, os.Geteuid() == 0)
}

// newResolver is the injectable constructor used by tests to pin the
// platform and privilege level.
func newResolver(runner host.Runner, path host.SearchPath, mgr Manager, goos string, root bool) *Resolver {
	return &Resolver{runner: runner, path: path, mgr: mgr, goos: goos, root: root}
}

// Path returns the resolver's current SearchPath, including any
// directories prepended by bootstrap steps during this run.
func (r *Resolver) Path() host.SearchPath {
	return r.path
}

// Manager returns the detected package manager, or nil.
func (r *Resolver) Manager() Manager {
	return r.mgr
}

// Ensure checks that spec.Command exists on the search path and installs
// it if absent.
//
// Resolution order: the detected native manager's mapping first, then
// `uv tool install` when the spec names a uv tool. A command that is
// already present never triggers an installer. Every failure is returned
// as a CLIError — callers treat it as fatal, because all later stages
// assume the prerequisite exists.
func (r *Resolver) Ensure(ctx context.Context, spec model.PackageSpec) (model.EnsureResult, error) {
	result := model.EnsureResult{Command: spec.Command}

	if err := spec.Validate(); err != nil {
		result.Status = model.StatusFailed
		return result, model.WrapCLIError(model.ExitGeneralError, "invalid package spec", err)
	}

	if path, ok := r.path.LookPath(spec.Command); ok {
		result.Status = model.StatusAlreadyPresent
		result.Detail = path
		return result, nil
	}

	// Native package manager route.
	if r.mgr != nil {
		if pkg, ok := spec.PackageFor(r.mgr.Name()); ok {
			result.Manager = r.mgr.Name()
			if err := r.installVia(ctx, r.mgr, pkg); err != nil {
				result.Status = model.StatusFailed
				return result, model.WrapCLIError(model.ExitInstallFailed,
					fmt.Sprintf("failed to install %q via %s", pkg, r.mgr.Name()), err)
			}
			return r.recheck(ctx, result)
		}
	}

	// Universal fallback: uv tool install. Requires uv itself, which the
	// orchestrator ensures before any uv-tool prerequisite.
	if spec.UvTool != "" {
		if _, ok := r.path.LookPath("uv"); !ok {
			result.Status = model.StatusFailed
			return result, model.NewCLIError(model.ExitMissingTool,
				fmt.Sprintf("%s is installed via uv, but uv is not available", spec.Command))
		}
		result.Manager = "uv"
		if _, err := r.runner.Run(ctx, "", r.path, "uv", "tool", "install", spec.UvTool); err != nil {
			result.Status = model.StatusFailed
			return result, model.WrapCLIError(model.ExitInstallFailed,
				fmt.Sprintf("uv tool install %s failed", spec.UvTool), err)
		}
		// uv tool shims land in the same bin directory as uv's script
		// install; make sure it is on the path before re-probing.
		if dir := uvBinDir(); dir != "" && !r.path.Contains(dir) {
			r.path = r.path.Prepend(dir)
		}
		return r.recheck(ctx, result)
	}

	result.Status = model.StatusFailed
	return result, model.NewCLIError(model.ExitMissingTool,
		fmt.Sprintf("%s is not installed and no installer is available for this system — install it manually and re-run", spec.Command))
}

// EnsureUv is the special-cased bootstrap for the universal fallback
// tool itself. When the detected manager carries uv, the native route is
// used; otherwise uv is installed by its direct download script and its
// bin directory is prepended to the resolver's SearchPath so the rest of
// the run sees it without a shell restart.
func (r *Resolver) EnsureUv(ctx context.Context, spec model.PackageSpec) (model.EnsureResult, error) {
	result := model.EnsureResult{Command: spec.Command}

	if path, ok := r.path.LookPath(spec.Command); ok {
		result.Status = model.StatusAlreadyPresent
		result.Detail = path
		return result, nil
	}

	if r.mgr != nil {
		if pkg, ok := spec.PackageFor(r.mgr.Name()); ok {
			result.Manager = r.mgr.Name()
			if err := r.installVia(ctx, r.mgr, pkg); err != nil {
				result.Status = model.StatusFailed
				return result, model.WrapCLIError(model.ExitInstallFailed,
					fmt.Sprintf("failed to install %q via %s", pkg, r.mgr.Name()), err)
			}
			return r.recheck(ctx, result)
		}
	}

	// Script route: curl-pipe-to-shell, the same bootstrap the upstream
	// installer documents for hosts without a package manager.
	result.Manager = "install-script"
	var err error
	if r.goos == "windows" {
		err = r.runner.RunInteractive(ctx, "", r.path, "powershell", "-ExecutionPolicy", "ByPass", "-c", uvInstallScriptWindows)
	} else {
		err = r.runner.RunInteractive(ctx, "", r.path, "sh", "-c", uvInstallScript)
	}
	if err != nil {
		result.Status = model.StatusFailed
		return result, model.WrapCLIError(model.ExitInstallFailed, "uv install script failed", err)
	}

	if dir := uvBinDir(); dir != "" && !r.path.Contains(dir) {
		r.path = r.path.Prepend(dir)
	}
	return r.recheck(ctx, result)
}

// recheck re-probes the command after an install attempt and finalizes
// the result. Absence after a seemingly successful install is still a
// failure — the installer may have placed the binary somewhere the
// search path does not cover.
func (r *Resolver) recheck(ctx context.Context, result model.EnsureResult) (model.EnsureResult, error) {
	_ = ctx
	if path, ok := r.path.LookPath(result.Command); ok {
		result.Status = model.StatusInstalled
		result.Detail = path
		return result, nil
	}
	result.Status = model.StatusFailed
	return result, model.NewCLIError(model.ExitInstallFailed,
		fmt.Sprintf("%s still not found after installation — check the installer output and your PATH", result.Command))
}

// installVia runs the manager's install command, elevating with sudo on
// Unix when the manager requires root and the current user is not root.
// The command runs interactively so sudo password prompts and manager
// progress output reach the terminal.
func (r *Resolver) installVia(ctx context.Context, mgr Manager, pkg string) error {
	args := mgr.InstallArgs(pkg)
	if mgr.RequiresRoot() && r.goos != "windows" && !r.root {
		args = append([]string{"sudo"}, args...)
	}
	return r.runner.RunInteractive(ctx, "", r.path, args[0], args[1:]...)
}

// uvBinDir returns the directory uv's script install and tool shims use
// (~/.local/bin on every platform uv supports). It is a variable so
// tests can point it at a temporary directory.
var uvBinDir = defaultUvBinDir

func defaultUvBinDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "bin")
}
