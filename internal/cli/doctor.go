// Package cli — doctor.go implements the "primer doctor" command: a
// read-only report of the host's bootstrap state. Doctor never installs
// anything; it answers "what would setup find?".
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/primer/internal/docker"
	"github.com/mmr-tortoise/primer/internal/manifest"
	"github.com/mmr-tortoise/primer/internal/model"
	"github.com/mmr-tortoise/primer/internal/pkgmgr"
	"github.com/mmr-tortoise/primer/internal/port"
)

// toolReport is one prerequisite's presence check.
type toolReport struct {
	Command string `json:"command"`
	Present bool   `json:"present"`
	Path    string `json:"path,omitempty"`
}

// doctorReport is the full host state snapshot.
type doctorReport struct {
	PackageManager string       `json:"packageManager,omitempty"`
	Tools          []toolReport `json:"tools"`
	PythonVersion  string       `json:"pythonVersion,omitempty"`
	Docker         string       `json:"docker"`
	CloneDir       string       `json:"cloneDir"`
	ClonePresent   bool         `json:"clonePresent"`
	FreePort       int          `json:"freePort,omitempty"`
	PortError      string       `json:"portError,omitempty"`
}

// NewDoctorCommand creates the "doctor" cobra command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report host state without changing anything",
		Long: `Check what setup would find: the detected package manager, presence of
each prerequisite tool, the Python version, Docker daemon reachability,
whether the server clone exists, and the first free port in the
configured range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(".")
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to load manifest", err)
			}
			rep := buildDoctorReport(cmd.Context(), m)
			if IsJSONOutput() {
				data, err := json.MarshalIndent(rep, "", "  ")
				if err != nil {
					return model.WrapCLIError(model.ExitGeneralError, "failed to encode report", err)
				}
				fmt.Println(string(data))
				return nil
			}
			renderDoctorReport(os.Stdout, rep)
			return nil
		},
	}
}

// buildDoctorReport gathers every check. Failures of individual checks
// land in the report instead of aborting it — doctor's whole point is
// showing what is broken.
func buildDoctorReport(ctx context.Context, m *manifest.Manifest) doctorReport {
	st := newHostState()
	rep := doctorReport{Docker: "unreachable"}

	if mgr := st.resolver.Manager(); mgr != nil {
		rep.PackageManager = mgr.Name()
	}

	for _, spec := range m.Prerequisites {
		tr := toolReport{Command: spec.Command}
		if path, ok := st.path().LookPath(spec.Command); ok {
			tr.Present = true
			tr.Path = path
		}
		rep.Tools = append(rep.Tools, tr)
	}

	if _, ok := st.path().LookPath(m.PythonSpec().Command); ok {
		if out, err := st.runner.Run(ctx, "", st.path(), m.PythonSpec().Command, "--version"); err == nil {
			if major, minor, parseErr := pkgmgr.ParseVersion(out); parseErr == nil {
				rep.PythonVersion = fmt.Sprintf("%d.%d", major, minor)
			}
		}
	}

	if cli, err := docker.NewClient(); err == nil {
		if pingErr := cli.Ping(ctx); pingErr == nil {
			rep.Docker = "running"
		}
		cli.Close()
	}

	rep.CloneDir = resolveCloneDir(m)
	if _, err := os.Stat(rep.CloneDir); err == nil {
		rep.ClonePresent = true
	}

	scanner := port.NewScanner(port.NewDialProbe())
	if freePort, err := scanner.FindAvailablePort(m.Ports.Range()); err == nil {
		rep.FreePort = freePort
	} else {
		rep.PortError = err.Error()
	}

	return rep
}

// renderDoctorReport writes the human-readable report. Split from the
// command so tests can render into a buffer.
func renderDoctorReport(w io.Writer, rep doctorReport) {
	if rep.PackageManager != "" {
		fmt.Fprintf(w, "%s package manager: %s\n", okMark, rep.PackageManager)
	} else {
		fmt.Fprintf(w, "%s package manager: none detected\n", warnMark)
	}

	for _, tr := range rep.Tools {
		if tr.Present {
			fmt.Fprintf(w, "%s %s (%s)\n", okMark, tr.Command, tr.Path)
		} else {
			fmt.Fprintf(w, "%s %s not found\n", failMark, tr.Command)
		}
	}

	if rep.PythonVersion != "" {
		fmt.Fprintf(w, "%s python %s\n", okMark, rep.PythonVersion)
	}

	if rep.Docker == "running" {
		fmt.Fprintf(w, "%s docker daemon running\n", okMark)
	} else {
		fmt.Fprintf(w, "%s docker daemon unreachable\n", warnMark)
	}

	if rep.ClonePresent {
		fmt.Fprintf(w, "%s server clone present at %s\n", okMark, rep.CloneDir)
	} else {
		fmt.Fprintf(w, "%s server clone missing (%s)\n", warnMark, rep.CloneDir)
	}

	if rep.PortError != "" {
		fmt.Fprintf(w, "%s %s\n", failMark, rep.PortError)
	} else if rep.FreePort > 0 {
		fmt.Fprintf(w, "%s first free port: %d\n", okMark, rep.FreePort)
	}
}
