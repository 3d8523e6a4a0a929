package pkgmgr

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/mmr-tortoise/primer/internal/model"
)

// versionRE extracts "major.minor" from interpreter version banners such
// as "Python 3.12.1". Patch and pre-release suffixes are ignored.
var versionRE = regexp.MustCompile(`(\d+)\.(\d+)(?:\.\d+)?`)

// ParseVersion extracts the major and minor version from a --version
// banner. Returns an error when no version number appears in the output.
func ParseVersion(output string) (major, minor int, err error) {
	m := versionRE.FindStringSubmatch(output)
	if m == nil {
		return 0, 0, fmt.Errorf("no version number in output %q", output)
	}
	// The regexp guarantees both groups are digit runs, so Atoi cannot fail.
	major, _ = strconv.Atoi(m[1])
	minor, _ = strconv.Atoi(m[2])
	return major, minor, nil
}

// EnsureMinimumVersion verifies that spec.Command reports at least
// minMajor.minMinor, installing or upgrading through the resolver when
// it does not.
//
// The gate probes `<command> --version`, and on a too-old result makes
// exactly one upgrade attempt via the detected manager's mapping before
// failing. The failure is deliberately terminal with a manual-remediation
// message: distro package repositories may simply not carry the required
// version, so retrying the same installer would loop forever.
func (r *Resolver) EnsureMinimumVersion(ctx context.Context, spec model.PackageSpec, minMajor, minMinor int) error {
	// The command must exist before it can be version-probed.
	if _, ok := r.path.LookPath(spec.Command); !ok {
		if _, err := r.Ensure(ctx, spec); err != nil {
			return err
		}
	}

	major, minor, err := r.probeVersion(ctx, spec.Command)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("could not determine %s version", spec.Command), err)
	}
	if atLeast(major, minor, minMajor, minMinor) {
		return nil
	}

	// One upgrade attempt through the native manager, if it has a mapping.
	if r.mgr != nil {
		if pkg, ok := spec.PackageFor(r.mgr.Name()); ok {
			if err := r.installVia(ctx, r.mgr, pkg); err != nil {
				return model.WrapCLIError(model.ExitInstallFailed,
					fmt.Sprintf("failed to upgrade %q via %s", pkg, r.mgr.Name()), err)
			}
			major, minor, err = r.probeVersion(ctx, spec.Command)
			if err == nil && atLeast(major, minor, minMajor, minMinor) {
				return nil
			}
		}
	}

	return model.NewCLIError(model.ExitVersionTooOld,
		fmt.Sprintf("%s %d.%d or newer is required, found %d.%d — your system's package repositories may not carry it; install a newer interpreter manually (for example with `uv python install %d.%d`) and re-run",
			spec.Command, minMajor, minMinor, major, minor, minMajor, minMinor))
}

// probeVersion runs `<command> --version` and parses the banner.
// Some interpreters print the banner on stderr; the runner only captures
// stdout, so an empty stdout with a zero exit is handled by ParseVersion
// returning an error rather than a bogus 0.0.
func (r *Resolver) probeVersion(ctx context.Context, command string) (int, int, error) {
	out, err := r.runner.Run(ctx, "", r.path, command, "--version")
	if err != nil {
		return 0, 0, err
	}
	return ParseVersion(out)
}

func atLeast(major, minor, minMajor, minMinor int) bool {
	if major != minMajor {
		return major > minMajor
	}
	return minor >= minMinor
}
