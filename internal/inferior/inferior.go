// Package inferior discovers candidate processes to attach to.
//
// The debugger host owns the notion of "selected inferior" once a session is
// running; this package only helps the CLI pick a target pid before any
// debugger is involved.
package inferior

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// Candidate describes a process that can be attached to.
type Candidate struct {
	PID      int32
	Name     string
	Username string
	Cmdline  string
}

// Exists reports whether a process with the given pid is running.
func Exists(pid int) (bool, error) {
	return process.PidExists(int32(pid))
}

// Describe returns details for one pid.
func Describe(pid int) (Candidate, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return Candidate{}, fmt.Errorf("process %d not found: %w", pid, err)
	}
	return describe(p), nil
}

// Find returns every running process whose name or command line contains
// pattern (case-insensitive). An empty pattern matches everything.
func Find(pattern string) ([]Candidate, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	pattern = strings.ToLower(pattern)

	var matches []Candidate
	for _, p := range procs {
		c := describe(p)
		if pattern == "" ||
			strings.Contains(strings.ToLower(c.Name), pattern) ||
			strings.Contains(strings.ToLower(c.Cmdline), pattern) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// FindOne resolves pattern to exactly one process. It fails when the pattern
// matches nothing or is ambiguous, listing the candidates in the error so
// the user can pick a pid instead.
func FindOne(pattern string) (Candidate, error) {
	matches, err := Find(pattern)
	if err != nil {
		return Candidate{}, err
	}

	switch len(matches) {
	case 0:
		return Candidate{}, fmt.Errorf("no process matches %q", pattern)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, fmt.Sprintf("%d (%s)", m.PID, m.Name))
		}
		return Candidate{}, fmt.Errorf("pattern %q is ambiguous, matches: %s", pattern, strings.Join(names, ", "))
	}
}

// describe gathers best-effort details; fields that cannot be read (e.g.
// processes owned by other users) are left empty rather than failing the
// whole listing.
func describe(p *process.Process) Candidate {
	c := Candidate{PID: p.Pid}
	if name, err := p.Name(); err == nil {
		c.Name = name
	}
	if user, err := p.Username(); err == nil {
		c.Username = user
	}
	if cmdline, err := p.Cmdline(); err == nil {
		c.Cmdline = cmdline
	}
	return c
}
