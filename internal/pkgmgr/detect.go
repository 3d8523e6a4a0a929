package pkgmgr

import (
	"runtime"

	"github.com/mmr-tortoise/primer/internal/host"
)

// unixDetectionOrder is the priority-ordered probe list on Linux and
// macOS. brew is first so that a macOS host (or a Linux host with
// Homebrew deliberately installed) prefers it over a distro manager;
// the distro managers follow in rough order of install base.
var unixDetectionOrder = []Manager{Brew, Apt, Dnf, Pacman, Zypper}

// windowsDetectionOrder is the probe list on Windows. winget ships with
// modern Windows, so it is preferred over the third-party managers.
var windowsDetectionOrder = []Manager{Winget, Choco, Scoop}

// DetectionOrder returns the manager probe list for the given GOOS value.
// Exposed with an explicit parameter so tests can exercise both lists
// regardless of the platform running the tests.
func DetectionOrder(goos string) []Manager {
	if goos == "windows" {
		return windowsDetectionOrder
	}
	return unixDetectionOrder
}

// Detect probes for manager executables in priority order and returns
// the first manager found. This runs once at startup; the selected
// Manager is then used for the whole run.
//
// Returns nil when no supported manager is present. That is not itself
// fatal — the caller may still bootstrap uv via its install script —
// but any prerequisite whose spec only has native-manager mappings will
// fail with a manual-remediation message.
func Detect(lookup host.Lookup) Manager {
	return detect(lookup, runtime.GOOS)
}

func detect(lookup host.Lookup, goos string) Manager {
	for _, m := range DetectionOrder(goos) {
		if _, ok := lookup.LookPath(m.DetectCommand()); ok {
			return m
		}
	}
	return nil
}
