package envfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// OptionalKey documents an optional configuration key in the generated
// file. These lines are written commented out and are never parsed by
// anything — they exist so a user editing .env sees what else the
// server understands.
type OptionalKey struct {
	// Key is the environment variable name.
	Key string `json:"key" yaml:"key"`

	// Example is the illustrative value placed after the equals sign.
	Example string `json:"example,omitempty" yaml:"example,omitempty"`

	// Comment is an explanatory line written above the key.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// File describes the .env file to generate: where it goes, which key is
// mandatory, and which optional keys to document.
type File struct {
	// Path is the target file path, conventionally "<clone dir>/.env".
	Path string

	// RequiredKey is the environment variable name of the mandatory
	// secret. Its value must be non-empty before Write is called; the
	// interactive prompt layer enforces that by re-prompting.
	RequiredKey string

	// Optional lists keys to append as commented documentation.
	Optional []OptionalKey
}

// Write renders the file and overwrites Path wholesale. The first line
// is exactly "<RequiredKey>=<secret>"; any pre-existing file content is
// discarded, never merged.
//
// An empty secret is a programming error here — callers obtain the
// value from a blocking prompt loop that only returns non-empty input.
func (f *File) Write(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return fmt.Errorf("env file: required key %s must not be empty", f.RequiredKey)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s=%s\n", f.RequiredKey, secret)

	if len(f.Optional) > 0 {
		b.WriteString("\n# Optional settings — uncomment and edit as needed.\n")
		for _, opt := range f.Optional {
			if opt.Comment != "" {
				fmt.Fprintf(&b, "# %s\n", opt.Comment)
			}
			fmt.Fprintf(&b, "# %s=%s\n", opt.Key, opt.Example)
		}
	}

	// 0600: the file holds a credential.
	if err := os.WriteFile(f.Path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("env file: %w", err)
	}
	return nil
}

// Verify parses the written file with godotenv and confirms the
// required key is present with a non-empty value. This catches quoting
// or encoding mistakes that would make the server reject the file.
func (f *File) Verify() error {
	values, err := godotenv.Read(f.Path)
	if err != nil {
		return fmt.Errorf("env file: %w", err)
	}
	if values[f.RequiredKey] == "" {
		return fmt.Errorf("env file: %s missing or empty in %s", f.RequiredKey, f.Path)
	}
	return nil
}

// Read parses an existing env file. Used by the doctor command to
// report whether a previous run already configured the secret.
func Read(path string) (map[string]string, error) {
	return godotenv.Read(path)
}
