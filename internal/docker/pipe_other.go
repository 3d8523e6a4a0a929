//go:build !windows

package docker

import "errors"

// detectWindowsPipe is only reachable when runtime.GOOS is "windows",
// which never holds in a binary built with this file. The stub exists
// so the package compiles everywhere without pulling winio's
// Windows-only API into non-Windows builds.
func detectWindowsPipe() (string, error) {
	return "", errors.New("Docker named-pipe detection requires Windows")
}
