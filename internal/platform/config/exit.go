package config

import (
	"fmt"
	"os"
)

// Process exit codes used by dice-irae commands.
const (
	ExitFailure = 1 // a roll or the command itself failed
	ExitUsage   = 2 // flags or environment could not be parsed
)

// Exitf writes a formatted error message to stderr and exits with ExitFailure.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	ExitWithCode(ExitFailure, format, args...)
}

// ExitWithCode writes a formatted error message to stderr and exits with code.
func ExitWithCode(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
