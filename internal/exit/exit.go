// Package exit carries the message, destination, and process exit code
// the command-line tool terminates with.
package exit

import (
	"fmt"
	"io"
	"os"
)

// Exit codes used by the rowstream tool.
const (
	CodeOK      = 0
	CodeUsage   = 1
	CodeFailure = 2
)

// Result holds the output destination and exit code for program
// termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	if r.Message != "" {
		fmt.Fprintln(r.Output, r.Message)
	}
}

// Success creates a successful exit result that outputs to stderr so it
// never interleaves with extracted records on stdout.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeOK,
		Message:  message,
	}
}

// Usage creates a usage or configuration error result.
func Usage(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeUsage,
		Message:  message,
	}
}

// Usagef creates a usage error result with a formatted message.
func Usagef(format string, a ...any) *Result {
	return Usage(fmt.Sprintf(format, a...))
}

// Failure creates an extraction failure result.
func Failure(err error) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeFailure,
		Message:  err.Error(),
	}
}
