// Package model defines the domain types and value objects for the
// primer CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (PackageSpec, EnsureResult, PortRange, etc.) are transient,
// process-local values — the only thing primer ever persists is the
// generated .env secrets file.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
