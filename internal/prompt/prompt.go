package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/mmr-tortoise/primer/internal/model"
)

// Prompter is the capability interface for user interaction. The
// orchestrator receives a Prompter so tests can script answers instead
// of driving a terminal.
type Prompter interface {
	// Confirm asks a yes/no question. The default answer is no, matching
	// the "[y/N]" convention of the prompts this tool grew out of.
	Confirm(title, help string) (bool, error)

	// Secret asks for a required value without echoing input, blocking
	// (re-prompting) until the value is non-empty.
	Secret(title, help string) (string, error)
}

// Interactive is the production Prompter. It renders huh forms on a
// terminal and falls back to plain line reading otherwise.
type Interactive struct {
	in  *os.File
	out io.Writer
}

// New creates a Prompter bound to the process's stdin/stderr. Prompts
// write to stderr so stdout stays reserved for command output.
func New() *Interactive {
	return &Interactive{in: os.Stdin, out: os.Stderr}
}

// isTerminal reports whether the prompt can render interactive forms.
func (p *Interactive) isTerminal() bool {
	return term.IsTerminal(int(p.in.Fd()))
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Interactive) Confirm(title, help string) (bool, error) {
	if !p.isTerminal() {
		fmt.Fprintf(p.out, "%s [y/N] ", title)
		answer, err := readLine(p.in)
		if err != nil {
			// EOF on piped input means "take the default".
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes", nil
	}

	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(help).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, cancelOr(err)
	}
	return confirmed, nil
}

// Secret asks for a required value with input hidden. huh's Validate
// keeps the form on screen until the value passes, which implements the
// blocking re-prompt loop for empty input.
func (p *Interactive) Secret(title, help string) (string, error) {
	if !p.isTerminal() {
		return secretFromReader(p.in, p.out, title)
	}

	var value string
	err := huh.NewInput().
		Title(title).
		Description(help).
		Password(true).
		Validate(requireNonEmpty).
		Value(&value).
		Run()
	if err != nil {
		return "", cancelOr(err)
	}
	return strings.TrimSpace(value), nil
}

// secretFromReader is the non-terminal secret loop: read lines until a
// non-empty one arrives. Factored out so the re-prompt behavior is
// testable without a TTY.
func secretFromReader(r io.Reader, out io.Writer, title string) (string, error) {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprintf(out, "%s: ", title)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", model.NewCLIError(model.ExitUserCancelled, "input closed before a value was provided")
		}
		value := strings.TrimSpace(scanner.Text())
		if value != "" {
			return value, nil
		}
		fmt.Fprintln(out, "A value is required.")
	}
}

func requireNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}

// readLine reads a single line from r without buffering past it.
func readLine(r io.Reader) (string, error) {
	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return line.String(), nil
			}
			line.WriteByte(buf[0])
		}
		if err != nil {
			if err == io.EOF && line.Len() > 0 {
				return line.String(), nil
			}
			return line.String(), err
		}
	}
}

// cancelOr maps huh's abort sentinel to the user-cancelled exit code and
// passes other errors through.
func cancelOr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return model.NewCLIError(model.ExitUserCancelled, "cancelled")
	}
	return err
}
