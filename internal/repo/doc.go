// Package repo handles fetching the downstream server's Git repository.
//
// Cloning is idempotent-by-presence: when the target directory already
// exists, the clone is skipped entirely, without verifying that the
// directory's content matches what a fresh clone would produce. A stale
// clone is never refreshed — re-running primer after a failed run picks
// up from the existing directory.
//
// The target directory name is derived from the repository URL's
// basename (trailing ".git" stripped), mirroring git's own default.
package repo
