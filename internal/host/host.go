// Package host defines the capability surface symsync needs from a debugger
// host: identify the currently selected inferior process, and execute one
// line of text as a debugger command.
//
// Implementations live close to their transport: gdb.Session drives a live
// GDB over MI, Writer emits the command batch as a script, and Recorder
// stands in for a host in tests.
package host

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoInferior is returned when no process is attached or selected.
var ErrNoInferior = errors.New("no inferior process selected")

// Context is the debugger host as seen by the bridge.
//
// Both operations map directly onto facilities every interactive debugger
// already provides; the bridge never needs anything richer.
type Context interface {
	// SelectedProcessID returns the pid of the currently selected
	// inferior, or an error (typically ErrNoInferior) when nothing is
	// attached.
	SelectedProcessID() (int, error)

	// ExecuteCommand submits one line of text to the host's command
	// interpreter. An empty line is a host-defined no-op. A rejected
	// line returns the host's error.
	ExecuteCommand(line string) error
}

// Writer is a Context that writes each submitted command to an io.Writer,
// one per line. It turns a sync into a debugger command script the user can
// source or pipe into their own session.
type Writer struct {
	// PID is reported as the selected inferior. Zero or negative means
	// no process is selected.
	PID int

	// Out receives the submitted commands.
	Out io.Writer
}

// SelectedProcessID implements Context.
func (w *Writer) SelectedProcessID() (int, error) {
	if w.PID <= 0 {
		return 0, ErrNoInferior
	}
	return w.PID, nil
}

// ExecuteCommand implements Context by writing the line to Out.
func (w *Writer) ExecuteCommand(line string) error {
	if _, err := fmt.Fprintln(w.Out, line); err != nil {
		return fmt.Errorf("failed to write command: %w", err)
	}
	return nil
}

// Recorder is a Context test double that records every submitted command.
// RejectAt, when non-zero, makes the n-th submission (1-based) fail with
// RejectErr, mimicking a host refusing a malformed command.
type Recorder struct {
	// PID is reported as the selected inferior; zero means none selected.
	PID int

	// Commands holds every line submitted so far, in submission order.
	Commands []string

	// RejectAt makes the n-th ExecuteCommand call fail (1-based).
	RejectAt int

	// RejectErr is the error returned for the rejected submission.
	RejectErr error
}

// SelectedProcessID implements Context.
func (r *Recorder) SelectedProcessID() (int, error) {
	if r.PID <= 0 {
		return 0, ErrNoInferior
	}
	return r.PID, nil
}

// ExecuteCommand implements Context, recording the line before any
// scripted rejection so callers can assert exactly what reached the host.
func (r *Recorder) ExecuteCommand(line string) error {
	r.Commands = append(r.Commands, line)
	if r.RejectAt > 0 && len(r.Commands) == r.RejectAt {
		if r.RejectErr != nil {
			return r.RejectErr
		}
		return fmt.Errorf("command rejected: %q", line)
	}
	return nil
}
