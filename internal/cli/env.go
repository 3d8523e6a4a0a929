// Package cli — env.go implements the "primer env" command: (re)write
// the server's .env secrets file without running the rest of setup.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/primer/internal/envfile"
	"github.com/mmr-tortoise/primer/internal/manifest"
	"github.com/mmr-tortoise/primer/internal/model"
	"github.com/mmr-tortoise/primer/internal/prompt"
	"github.com/mmr-tortoise/primer/internal/repo"
)

// NewEnvCommand creates the "env" cobra command.
func NewEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Write the server's .env file from an interactive prompt",
		Long: `Prompt for the required secret (input is hidden) and write the server's
.env file. The file is always rewritten from scratch; a pre-existing
file is overwritten, never merged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(".")
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to load manifest", err)
			}
			dir := resolveCloneDir(m)
			if _, err := os.Stat(dir); err != nil {
				return model.WrapCLIError(model.ExitGeneralError,
					fmt.Sprintf("server directory %s not found — run `primer setup` first", dir), err)
			}
			path, err := writeEnvFile(m, dir, prompt.New())
			if err != nil {
				return err
			}
			fmt.Printf("%s wrote %s\n", okMark, path)
			return nil
		},
	}
}

// resolveCloneDir returns the server clone directory: the manifest's
// explicit override, or the URL-derived name under the current
// directory.
func resolveCloneDir(m *manifest.Manifest) string {
	if m.Repo.Dir != "" {
		return m.Repo.Dir
	}
	return repo.DirFromURL(m.Repo.URL)
}

// writeEnvFile prompts for the required secret in a blocking retry loop
// and writes the env file inside dir, then verifies the write by
// reading the file back. Returns the file path.
func writeEnvFile(m *manifest.Manifest, dir string, pr prompt.Prompter) (string, error) {
	secret, err := pr.Secret(m.Env.Required,
		"Stored in "+m.Env.File+" inside the server directory. Input is hidden.")
	if err != nil {
		return "", err
	}

	f := &envfile.File{
		Path:        filepath.Join(dir, m.Env.File),
		RequiredKey: m.Env.Required,
		Optional:    m.Env.Optional,
	}
	if err := f.Write(secret); err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to write "+f.Path, err)
	}
	if err := f.Verify(); err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "verification of "+f.Path+" failed", err)
	}
	VerboseLog("env file written: %s", f.Path)
	return f.Path, nil
}
