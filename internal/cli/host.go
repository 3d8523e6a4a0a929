// host.go builds the capability set every subcommand starts from: the
// process runner, the explicit executable search path, and the package
// manager resolver. Commands share one hostState per invocation so a
// search-path update made by a bootstrap step (uv's install dir) is
// visible to every later stage.
package cli

import (
	"github.com/mmr-tortoise/primer/internal/host"
	"github.com/mmr-tortoise/primer/internal/pkgmgr"
)

// hostState bundles the host capabilities detected at command startup.
type hostState struct {
	runner   host.Runner
	resolver *pkgmgr.Resolver
}

// newHostState snapshots the system PATH into an explicit SearchPath
// and detects the package manager against it. Detection runs once;
// redetect exists for the Homebrew bootstrap, which changes the answer
// mid-run.
func newHostState() *hostState {
	path := host.SystemPath()
	runner := host.NewRunner()
	mgr := pkgmgr.Detect(path)
	return &hostState{
		runner:   runner,
		resolver: pkgmgr.NewResolver(runner, path, mgr),
	}
}

// redetect rebuilds the resolver after the search path gained new
// directories, re-running manager detection against the updated path.
func (s *hostState) redetect(path host.SearchPath) {
	s.resolver = pkgmgr.NewResolver(s.runner, path, pkgmgr.Detect(path))
}

// path returns the resolver's current search path, including bootstrap
// additions.
func (s *hostState) path() host.SearchPath {
	return s.resolver.Path()
}
