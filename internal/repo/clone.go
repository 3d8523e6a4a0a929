package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/primer/internal/host"
	"github.com/mmr-tortoise/primer/internal/model"
)

// Cloner clones Git repositories by shelling out to the git CLI.
//
// We shell out rather than using a Go Git library because the host is
// guaranteed to have git — the resolver installs it before this stage
// runs — and the CLI handles every authentication and transport setup
// the user already has configured.
type Cloner struct {
	runner host.Runner
	path   host.SearchPath
}

// NewCloner creates a Cloner that locates git on the given search path.
func NewCloner(runner host.Runner, path host.SearchPath) *Cloner {
	return &Cloner{runner: runner, path: path}
}

// DirFromURL derives the clone directory name from a repository URL:
// the last path segment with any trailing ".git" stripped. This matches
// what `git clone <url>` would name the directory.
func DirFromURL(url string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(url), "/")
	base := trimmed
	if i := strings.LastIndexAny(trimmed, "/:"); i >= 0 {
		base = trimmed[i+1:]
	}
	return strings.TrimSuffix(base, ".git")
}

// CloneIfAbsent clones url into parentDir and returns the clone
// directory. When the directory already exists the clone is skipped and
// cloned is false — presence of the directory is taken as evidence of a
// prior completed run.
func (c *Cloner) CloneIfAbsent(ctx context.Context, url, parentDir string) (dir string, cloned bool, err error) {
	name := DirFromURL(url)
	if name == "" {
		return "", false, model.NewCLIError(model.ExitGitError, "cannot derive a directory name from repository URL "+url)
	}
	dir = filepath.Join(parentDir, name)
	cloned, err = c.CloneIfAbsentTo(ctx, url, dir)
	if err != nil {
		return "", false, err
	}
	return dir, cloned, nil
}

// CloneIfAbsentTo is CloneIfAbsent with an explicit target directory,
// used when a manifest overrides the derived name.
func (c *Cloner) CloneIfAbsentTo(ctx context.Context, url, dir string) (cloned bool, err error) {
	if _, statErr := os.Stat(dir); statErr == nil {
		return false, nil
	}

	if _, runErr := c.runner.Run(ctx, "", c.path, "git", "clone", url, dir); runErr != nil {
		return false, model.WrapCLIError(model.ExitGitError, "git clone failed", runErr)
	}

	// git exited zero but the expected directory is missing — treat it
	// as a failure rather than letting provisioning fail confusingly.
	if _, statErr := os.Stat(dir); statErr != nil {
		return false, model.WrapCLIError(model.ExitGitError,
			"git clone reported success but "+dir+" does not exist", statErr)
	}

	return true, nil
}
