// Package prompt implements the interactive surface of the primer CLI:
// y/N confirmation gates and the hidden secret entry for the .env file.
//
// On a terminal the prompts use github.com/charmbracelet/huh forms; the
// secret input is masked and validated non-empty, so huh itself provides
// the blocking re-prompt loop. When stdin is not a terminal (piped
// input, CI), a plain line-reader fallback implements the same contract:
// confirmations default to "no", and the secret loop re-reads until a
// non-empty line arrives.
//
// A user abort (ctrl-c) is translated into a CLIError with the
// user-cancelled exit code.
package prompt
