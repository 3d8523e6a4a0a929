package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/primer/internal/envfile"
	"github.com/mmr-tortoise/primer/internal/model"
)

// Candidate manifest filenames, probed in order.
var manifestNames = []string{"primer.yaml", "primer.yml", "primer.jsonc"}

// Manifest is the full bootstrap description. Field-level zero values
// are filled from Default() during Load, so an override file only needs
// the fields it changes.
type Manifest struct {
	// Repo is the downstream repository to clone.
	Repo RepoConfig `json:"repo" yaml:"repo"`

	// Python is the interpreter version gate.
	Python PythonConfig `json:"python" yaml:"python"`

	// Env describes the generated .env file.
	Env EnvConfig `json:"env" yaml:"env"`

	// Ports is the scan window for the server's listen port.
	Ports PortsConfig `json:"ports" yaml:"ports"`

	// Server is the downstream launch contract.
	Server ServerConfig `json:"server" yaml:"server"`

	// Browsers lists the Playwright browsers to install.
	Browsers []string `json:"browsers" yaml:"browsers"`

	// Prerequisites lists the tools the resolver ensures, in order.
	// The uv entry is resolved through the special-cased bootstrap.
	Prerequisites []model.PackageSpec `json:"prerequisites" yaml:"prerequisites"`
}

// RepoConfig identifies the repository the configurator clones.
type RepoConfig struct {
	// URL is the clone URL. The clone directory is derived from its
	// basename unless Dir overrides it.
	URL string `json:"url" yaml:"url"`

	// Dir optionally overrides the clone directory. Empty means the
	// URL-derived name under the current working directory.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// PythonConfig is the minimum interpreter version, e.g. "3.11".
type PythonConfig struct {
	Min string `json:"min" yaml:"min"`
}

// MinVersion parses the Min string into major/minor parts.
func (p PythonConfig) MinVersion() (major, minor int, err error) {
	majStr, minStr, ok := strings.Cut(p.Min, ".")
	if !ok {
		return 0, 0, fmt.Errorf("python.min %q: expected MAJOR.MINOR", p.Min)
	}
	major, err = strconv.Atoi(majStr)
	if err != nil {
		return 0, 0, fmt.Errorf("python.min %q: %w", p.Min, err)
	}
	minor, err = strconv.Atoi(minStr)
	if err != nil {
		return 0, 0, fmt.Errorf("python.min %q: %w", p.Min, err)
	}
	return major, minor, nil
}

// EnvConfig describes the generated secrets file.
type EnvConfig struct {
	// File is the filename inside the clone directory.
	File string `json:"file" yaml:"file"`

	// Required is the mandatory secret's key.
	Required string `json:"required" yaml:"required"`

	// Optional keys are written as commented documentation lines.
	Optional []envfile.OptionalKey `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// PortsConfig is the scan window: Start..Start+Span inclusive.
type PortsConfig struct {
	Start int `json:"start" yaml:"start"`
	Span  int `json:"span" yaml:"span"`
}

// Range converts the window to the model's inclusive PortRange.
func (p PortsConfig) Range() model.PortRange {
	return model.PortRange{Start: p.Start, End: p.Start + p.Span}
}

// ServerConfig is the downstream launch contract.
type ServerConfig struct {
	// Command is the argv that starts the server, run inside the clone
	// directory (e.g., ["uv", "run", "server"]).
	Command []string `json:"command" yaml:"command"`

	// Image is the container image used by `primer run --docker`.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Default returns the built-in manifest, reproducing what the original
// bootstrap scripts hardcoded.
func Default() *Manifest {
	return &Manifest{
		Repo: RepoConfig{
			URL: "https://github.com/co-browser/browser-use-mcp-server.git",
		},
		Python: PythonConfig{Min: "3.11"},
		Env: EnvConfig{
			File:     ".env",
			Required: "OPENAI_API_KEY",
			Optional: []envfile.OptionalKey{
				{Key: "CHROME_PATH", Example: "/usr/bin/chromium", Comment: "Path to a Chrome/Chromium binary to reuse instead of the bundled one."},
				{Key: "PATIENT", Example: "false", Comment: "Wait for long-running browser tasks to finish before responding."},
				{Key: "ANONYMIZED_TELEMETRY", Example: "false", Comment: "Disable anonymized usage telemetry."},
			},
		},
		Ports: PortsConfig{Start: 8000, Span: 1000},
		Server: ServerConfig{
			Command: []string{"uv", "run", "server"},
			Image:   "browser-use-mcp-server:latest",
		},
		Browsers: []string{"chromium"},
		Prerequisites: []model.PackageSpec{
			{
				Command: "git",
				Packages: map[string]string{
					"brew": "git", "apt": "git", "dnf": "git", "pacman": "git", "zypper": "git",
					"winget": "Git.Git", "choco": "git", "scoop": "git",
				},
			},
			{
				Command: "python3",
				Packages: map[string]string{
					"brew": "python@3.12", "apt": "python3", "dnf": "python3", "pacman": "python",
					"zypper": "python3", "winget": "Python.Python.3.12", "choco": "python", "scoop": "python",
				},
			},
			{
				Command: "uv",
				Packages: map[string]string{
					"brew": "uv", "pacman": "uv", "winget": "astral-sh.uv", "choco": "uv", "scoop": "uv",
				},
			},
			{
				Command: "mcp-proxy",
				UvTool:  "mcp-proxy",
			},
		},
	}
}

// Load returns the manifest for dir: the first primer.yaml / primer.yml /
// primer.jsonc found there merged over the defaults, or the plain
// defaults when no manifest file exists.
func Load(dir string) (*Manifest, error) {
	for _, name := range manifestNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("manifest: %w", err)
		}
		m := Default()
		if strings.HasSuffix(name, ".jsonc") {
			// jsonc.ToJSON strips comments and trailing commas, leaving
			// standard JSON for encoding/json.
			if err := json.Unmarshal(jsonc.ToJSON(data), m); err != nil {
				return nil, fmt.Errorf("manifest %s: %w", name, err)
			}
		} else {
			if err := yaml.Unmarshal(data, m); err != nil {
				return nil, fmt.Errorf("manifest %s: %w", name, err)
			}
		}
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("manifest %s: %w", name, err)
		}
		return m, nil
	}
	return Default(), nil
}

// validate rejects manifests that would break later stages outright.
func (m *Manifest) validate() error {
	if m.Repo.URL == "" {
		return fmt.Errorf("repo.url must not be empty")
	}
	if m.Env.Required == "" {
		return fmt.Errorf("env.required must not be empty")
	}
	if len(m.Server.Command) == 0 {
		return fmt.Errorf("server.command must not be empty")
	}
	if _, _, err := m.Python.MinVersion(); err != nil {
		return err
	}
	return m.Ports.Range().Validate()
}

// UvSpec returns the prerequisite spec for uv itself, which goes through
// the special-cased bootstrap rather than the regular resolution loop.
func (m *Manifest) UvSpec() model.PackageSpec {
	for _, spec := range m.Prerequisites {
		if spec.Command == "uv" {
			return spec
		}
	}
	return model.PackageSpec{Command: "uv"}
}

// PythonSpec returns the interpreter prerequisite used by the version gate.
func (m *Manifest) PythonSpec() model.PackageSpec {
	for _, spec := range m.Prerequisites {
		if spec.Command == "python3" {
			return spec
		}
	}
	return model.PackageSpec{Command: "python3"}
}
