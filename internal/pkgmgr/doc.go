// Package pkgmgr implements prerequisite resolution for the primer CLI.
//
// The package has three parts:
//
//   - Manager: a strategy interface with one value per supported package
//     manager (brew, apt, dnf, pacman, zypper on Unix; winget, choco,
//     scoop on Windows). The host's manager is detected once at startup
//     by a priority-ordered probe, not re-dispatched per call.
//   - Resolver: the ensure(command, spec) contract. A command already on
//     the search path is never installed again (idempotent-by-presence);
//     an absent command is installed via the detected manager's mapping,
//     or via `uv tool install` as the universal fallback. uv itself is
//     bootstrapped by a direct install script when no manager carries it,
//     with its bin directory prepended to the resolver's SearchPath so
//     later probes in the same run see it.
//   - Version gate: a minimum-version check for the Python runtime that
//     delegates to the resolver for upgrades and fails with a
//     manual-remediation message when distro repositories cannot satisfy
//     the minimum.
//
// Any install failure is fatal to the overall run: every later stage
// assumes all prerequisites are present, so there is no partial-success
// continuation.
package pkgmgr
