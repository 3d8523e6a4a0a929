package host

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SearchPath is an ordered list of directories probed for executables.
//
// It replaces reliance on the ambient PATH environment variable: the
// resolver receives a SearchPath value, and when an install step makes
// a new directory relevant (uv's ~/.local/bin after a script install),
// a new SearchPath with that directory prepended is threaded through
// to later calls. The running process's own environment stays untouched,
// which keeps the resolver testable without real subprocess execution.
type SearchPath []string

// SystemPath builds a SearchPath from the current process's PATH
// environment variable. This is the starting value for a run; all
// subsequent changes happen on the value, not on the environment.
func SystemPath() SearchPath {
	raw := os.Getenv("PATH")
	if raw == "" {
		return nil
	}
	return SearchPath(filepath.SplitList(raw))
}

// Prepend returns a new SearchPath with dir placed first. Directories
// already present are left in place — the earlier occurrence wins during
// lookup anyway, and duplicates are harmless.
func (p SearchPath) Prepend(dir string) SearchPath {
	next := make(SearchPath, 0, len(p)+1)
	next = append(next, dir)
	next = append(next, p...)
	return next
}

// Contains reports whether dir is one of the path entries.
func (p SearchPath) Contains(dir string) bool {
	for _, d := range p {
		if d == dir {
			return true
		}
	}
	return false
}

// String joins the entries with the platform list separator, suitable
// for passing as a PATH value to subprocesses.
func (p SearchPath) String() string {
	return strings.Join(p, string(os.PathListSeparator))
}

// Environ returns the current process environment with PATH replaced by
// this SearchPath. Subprocesses spawned by the Runner see the updated
// path without the parent process ever calling os.Setenv.
func (p SearchPath) Environ() []string {
	env := os.Environ()
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			continue
		}
		out = append(out, kv)
	}
	out = append(out, "PATH="+p.String())
	return out
}

// executableExtensions lists the suffixes probed on Windows, where
// executables carry an extension and the bare name is not runnable.
var executableExtensions = []string{".exe", ".cmd", ".bat"}

// LookPath searches the path entries in order for an executable file
// with the given name. It is the explicit-path equivalent of
// exec.LookPath: the probe answers "does this command exist" without
// consulting the ambient environment.
//
// Returns the absolute path of the first match, or false when no entry
// contains the command.
func (p SearchPath) LookPath(name string) (string, bool) {
	for _, dir := range p {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, true
		}
		if runtime.GOOS == "windows" {
			for _, ext := range executableExtensions {
				if isExecutable(candidate + ext) {
					return candidate + ext, true
				}
			}
		}
	}
	return "", false
}

// isExecutable reports whether path exists, is a regular file, and has
// an execute bit set (any execute bit is accepted; the subprocess spawn
// will surface permission problems precisely).
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		// Windows has no execute bit; existence of the file is enough.
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// Lookup is the capability interface for command-existence probes.
// SearchPath is the production implementation; tests substitute fakes
// that answer from a fixed set of "installed" commands.
type Lookup interface {
	LookPath(name string) (string, bool)
}
