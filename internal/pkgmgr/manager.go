package pkgmgr

// Manager is the strategy interface for a host package manager.
//
// Each supported manager is one value implementing this interface.
// Detection selects exactly one Manager at startup (see Detect), and the
// Resolver asks it for the install command line when a prerequisite's
// spec carries a mapping for it. This replaces the branch-per-call
// dispatch the shell scripts used with a single detection pass.
type Manager interface {
	// Name is the identifier used in PackageSpec mappings ("apt", "brew", ...).
	Name() string

	// DetectCommand is the executable whose presence on the search path
	// identifies this manager as the host's package manager.
	DetectCommand() string

	// InstallArgs returns the full argv (executable first) that installs
	// the given package non-interactively.
	InstallArgs(pkg string) []string

	// RequiresRoot reports whether the install command must run with
	// elevated privileges. On Unix the resolver prepends sudo when the
	// current user is not root; Windows managers handle elevation
	// themselves.
	RequiresRoot() bool
}

// native is the command-line-driven Manager implementation. All supported
// managers differ only in their install syntax and elevation needs, so
// one struct shape covers them; each manager is a distinct value below.
type native struct {
	name    string
	detect  string
	install []string // argv template; the package name is appended
	root    bool
}

func (n native) Name() string          { return n.name }
func (n native) DetectCommand() string { return n.detect }
func (n native) RequiresRoot() bool    { return n.root }

func (n native) InstallArgs(pkg string) []string {
	args := make([]string, 0, len(n.install)+1)
	args = append(args, n.install...)
	args = append(args, pkg)
	return args
}

// Supported package managers, in no particular order. Detection priority
// lives in detect.go, not here.
var (
	// Homebrew runs unprivileged by design; sudo would actually break it.
	Brew Manager = native{name: "brew", detect: "brew", install: []string{"brew", "install"}}

	Apt    Manager = native{name: "apt", detect: "apt-get", install: []string{"apt-get", "install", "-y"}, root: true}
	Dnf    Manager = native{name: "dnf", detect: "dnf", install: []string{"dnf", "install", "-y"}, root: true}
	Pacman Manager = native{name: "pacman", detect: "pacman", install: []string{"pacman", "-S", "--noconfirm"}, root: true}
	Zypper Manager = native{name: "zypper", detect: "zypper", install: []string{"zypper", "--non-interactive", "install"}, root: true}

	// Windows managers elevate via UAC on their own; no sudo equivalent
	// is injected.
	Winget Manager = native{name: "winget", detect: "winget", install: []string{"winget", "install", "--silent", "--accept-package-agreements", "--accept-source-agreements"}}
	Choco  Manager = native{name: "choco", detect: "choco", install: []string{"choco", "install", "-y"}}
	Scoop  Manager = native{name: "scoop", detect: "scoop", install: []string{"scoop", "install"}}
)
