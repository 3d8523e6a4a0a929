package host

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeExecutable creates an executable file in dir and returns its
// full path. On Unix the execute bit is what makes LookPath accept it.
func writeFakeExecutable(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755)
	require.NoError(t, err, "failed to create fake executable")
	return path
}

// TestSearchPath_LookPath verifies that lookup walks the entries in
// order and returns the first match.
func TestSearchPath_LookPath(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	// The same command exists in both directories; the earlier entry
	// must win.
	wantPath := writeFakeExecutable(t, first, "uv")
	writeFakeExecutable(t, second, "uv")

	sp := SearchPath{first, second}

	got, ok := sp.LookPath("uv")
	assert.True(t, ok)
	assert.Equal(t, wantPath, got)
}

// TestSearchPath_LookPath_Missing verifies that an absent command is
// reported as not found rather than producing a bogus path.
func TestSearchPath_LookPath_Missing(t *testing.T) {
	sp := SearchPath{t.TempDir()}

	_, ok := sp.LookPath("definitely-not-installed")
	assert.False(t, ok)
}

// TestSearchPath_LookPath_SkipsNonExecutable confirms that a plain data
// file with the right name does not satisfy the probe. Windows has no
// execute bit, so the distinction only exists on Unix.
func TestSearchPath_LookPath_SkipsNonExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no execute bit on Windows")
	}

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "git"), []byte("not a binary"), 0o644)
	require.NoError(t, err)

	sp := SearchPath{dir}
	_, ok := sp.LookPath("git")
	assert.False(t, ok, "non-executable file must not satisfy the lookup")
}

// TestSearchPath_Prepend verifies that Prepend returns a new value with
// the directory first and leaves the original untouched.
func TestSearchPath_Prepend(t *testing.T) {
	orig := SearchPath{"/usr/bin", "/bin"}
	updated := orig.Prepend("/home/user/.local/bin")

	assert.Equal(t, SearchPath{"/home/user/.local/bin", "/usr/bin", "/bin"}, updated)
	assert.Equal(t, SearchPath{"/usr/bin", "/bin"}, orig, "Prepend must not mutate the receiver")
	assert.True(t, updated.Contains("/home/user/.local/bin"))
}

// TestSearchPath_Prepend_MakesCommandVisible is the behavior the uv
// bootstrap depends on: after installing into a new directory, prepending
// that directory makes the command visible to subsequent probes within
// the same run, without any shell restart or environment mutation.
func TestSearchPath_Prepend_MakesCommandVisible(t *testing.T) {
	binDir := t.TempDir()

	sp := SearchPath{t.TempDir()}
	_, ok := sp.LookPath("uv")
	require.False(t, ok, "uv must start out invisible")

	writeFakeExecutable(t, binDir, "uv")
	sp = sp.Prepend(binDir)

	_, ok = sp.LookPath("uv")
	assert.True(t, ok, "uv must be visible after prepending its bin dir")
}

// TestSearchPath_Environ verifies that the subprocess environment carries
// the SearchPath as PATH exactly once.
func TestSearchPath_Environ(t *testing.T) {
	sp := SearchPath{"/opt/tools/bin", "/usr/bin"}
	env := sp.Environ()

	var pathEntries []string
	for _, kv := range env {
		if len(kv) >= 5 && kv[:5] == "PATH=" {
			pathEntries = append(pathEntries, kv)
		}
	}

	require.Len(t, pathEntries, 1, "exactly one PATH entry expected")
	assert.Equal(t, "PATH="+sp.String(), pathEntries[0])
}
