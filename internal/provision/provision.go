package provision

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/playwright-community/playwright-go"

	"github.com/mmr-tortoise/primer/internal/host"
	"github.com/mmr-tortoise/primer/internal/model"
)

// installFn downloads Playwright browser binaries into the shared
// ms-playwright cache. It is a variable so tests can substitute a fake.
var installFn = playwright.Install

// Provisioner prepares a cloned repository for running: creates the
// virtual environment, installs Python dependencies, and fetches the
// Playwright browsers the server drives.
type Provisioner struct {
	runner host.Runner
	path   host.SearchPath
	goos   string
}

// NewProvisioner creates a Provisioner that locates uv on the given
// search path.
func NewProvisioner(runner host.Runner, path host.SearchPath) *Provisioner {
	return newProvisioner(runner, path, runtime.GOOS)
}

func newProvisioner(runner host.Runner, path host.SearchPath, goos string) *Provisioner {
	return &Provisioner{runner: runner, path: path, goos: goos}
}

// Provision sets up the Python environment inside dir: `uv venv`, the
// project's requirements, the playwright package, and finally the
// browser binaries themselves. On Linux the browsers also need system
// libraries, installed with `uv run playwright install-deps`.
func (p *Provisioner) Provision(ctx context.Context, dir string, browsers []string) error {
	steps := [][]string{
		{"uv", "venv"},
		{"uv", "pip", "install", "-r", "requirements.txt"},
		{"uv", "pip", "install", "playwright"},
	}
	for _, argv := range steps {
		if _, err := p.runner.Run(ctx, dir, p.path, argv[0], argv[1:]...); err != nil {
			return model.WrapCLIError(model.ExitInstallFailed, "provisioning "+dir+" failed", err)
		}
	}

	if err := p.installBrowsers(browsers); err != nil {
		return model.WrapCLIError(model.ExitInstallFailed, "playwright browser install failed", err)
	}

	if p.goos == "linux" {
		if _, err := p.runner.Run(ctx, dir, p.path, "uv", "run", "playwright", "install-deps"); err != nil {
			return model.WrapCLIError(model.ExitInstallFailed, "playwright system dependencies failed", err)
		}
	}

	return nil
}

// installBrowsers fetches browser binaries through the playwright-go
// driver. The driver shares the ms-playwright cache with the Python
// playwright package, so binaries downloaded here are found by the
// server's own playwright at runtime.
func (p *Provisioner) installBrowsers(browsers []string) error {
	if len(browsers) == 0 {
		return nil
	}
	return installFn(&playwright.RunOptions{Browsers: browsers})
}

// Build runs `uv build` in dir and returns the path of the built wheel.
// uv writes artifacts under dist/; a build that exits zero but produces
// no wheel is reported as a failure rather than silently skipped.
func (p *Provisioner) Build(ctx context.Context, dir string) (string, error) {
	if _, err := p.runner.Run(ctx, dir, p.path, "uv", "build"); err != nil {
		return "", model.WrapCLIError(model.ExitInstallFailed, "uv build failed", err)
	}

	wheels, err := filepath.Glob(filepath.Join(dir, "dist", "*.whl"))
	if err != nil {
		return "", model.WrapCLIError(model.ExitInstallFailed, "scanning dist/ for wheels failed", err)
	}
	if len(wheels) == 0 {
		return "", model.NewCLIError(model.ExitInstallFailed, "uv build produced no wheel under "+filepath.Join(dir, "dist"))
	}

	// Multiple wheels can accumulate across builds; the glob returns
	// them sorted, so the last one carries the highest version.
	return wheels[len(wheels)-1], nil
}

// InstallGlobal installs the built wheel as a uv tool, making the
// server's entry points available outside the virtual environment.
func (p *Provisioner) InstallGlobal(ctx context.Context, dir, wheel string) error {
	if _, err := p.runner.Run(ctx, dir, p.path, "uv", "tool", "install", wheel); err != nil {
		return model.WrapCLIError(model.ExitInstallFailed, "uv tool install "+wheel+" failed", err)
	}
	return nil
}
