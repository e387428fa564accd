package resolver

import (
	"fmt"
	"strings"
)

// InvocationError reports that the resolver process could not be started or
// exited with a non-zero status. Nothing has been replayed when it occurs.
type InvocationError struct {
	// Argv is the attempted command line.
	Argv []string

	// ExitCode is the child's exit code, or zero when it never started.
	ExitCode int

	// Diagnostic is whatever the child managed to write to stdout before
	// failing. Stderr is not captured and surfaces on the inherited stream.
	Diagnostic string

	// Err is the underlying exec error.
	Err error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("symbol resolver %q failed: %v", strings.Join(e.Argv, " "), e.Err)
	if diag := strings.TrimSpace(e.Diagnostic); diag != "" {
		msg += fmt.Sprintf(" (output: %s)", diag)
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// MalformedOutputError reports that the resolver's captured stdout is not
// valid UTF-8 and therefore cannot be replayed as command lines.
type MalformedOutputError struct {
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("symbol resolver output is not valid UTF-8 (invalid byte at offset %d)", e.Offset)
}
