package cli

import (
	"fmt"

	"github.com/symsync-io/symsync/internal/inferior"
)

// resolveTarget turns the --pid/--name flag pair into a concrete pid.
// Exactly one of the two must be given; a pid is verified to exist and a
// name must match exactly one running process.
func resolveTarget(pid int, name string) (int, error) {
	switch {
	case pid > 0 && name != "":
		return 0, fmt.Errorf("--pid and --name are mutually exclusive")

	case pid > 0:
		ok, err := inferior.Exists(pid)
		if err != nil {
			return 0, fmt.Errorf("failed to check pid %d: %w", pid, err)
		}
		if !ok {
			return 0, fmt.Errorf("no running process with pid %d", pid)
		}
		return pid, nil

	case name != "":
		c, err := inferior.FindOne(name)
		if err != nil {
			return 0, err
		}
		return int(c.PID), nil

	default:
		return 0, fmt.Errorf("specify a target with --pid or --name")
	}
}
