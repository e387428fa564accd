// Package resolver invokes the external symbol-resolution tool and captures
// the debugger command batch it emits.
//
// The resolver contract is narrow: invoked as `<path> <subcommand> <pid>`, on
// success it writes a newline-separated sequence of debugger commands to
// stdout and exits zero. Anything on stderr is diagnostic output that symsync
// leaves on the inherited stream; it is never parsed for commands.
package resolver

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Config holds the configuration for resolver invocations.
type Config struct {
	// Path is the resolver binary, absolute or looked up on PATH.
	Path string

	// Subcommand is the resolver subcommand that emits debugger commands
	// for a pid.
	Subcommand string

	// Timeout bounds a single invocation. Zero means no timeout: the
	// original bridge blocks indefinitely, so that remains the default.
	Timeout time.Duration
}

// Resolver runs the external symbol-resolution tool.
type Resolver struct {
	config Config
	logger zerolog.Logger
}

// New creates a Resolver with the given configuration.
func New(config Config, logger zerolog.Logger) *Resolver {
	return &Resolver{
		config: config,
		logger: logger.With().Str("component", "resolver").Logger(),
	}
}

// Run invokes the resolver for pid and returns its captured stdout.
//
// The invocation is fully synchronous: Run does not return until the child
// process has exited and its entire stdout has been read. Stderr is inherited
// from the parent process rather than captured, so resolver diagnostics
// surface wherever the host's stderr goes.
//
// A spawn failure or non-zero exit is reported as *InvocationError; in that
// case no output is returned and nothing has been replayed.
func (r *Resolver) Run(ctx context.Context, pid int) (Output, error) {
	argv := []string{r.config.Path, r.config.Subcommand, strconv.Itoa(pid)}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	r.logger.Debug().
		Str("command", strings.Join(argv, " ")).
		Int("pid", pid).
		Msg("Invoking symbol resolver")

	start := time.Now()
	if err := cmd.Run(); err != nil {
		invErr := &InvocationError{
			Argv:       argv,
			Diagnostic: stdout.String(),
			Err:        err,
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			invErr.ExitCode = exitErr.ExitCode()
		}
		r.logger.Error().
			Err(err).
			Str("command", strings.Join(argv, " ")).
			Msg("Symbol resolver failed")
		return nil, invErr
	}

	r.logger.Debug().
		Int("output_bytes", stdout.Len()).
		Dur("duration", time.Since(start)).
		Msg("Symbol resolver completed")

	return Output(stdout.Bytes()), nil
}

// Output is the raw bytes a resolver invocation wrote to stdout.
type Output []byte

// Lines validates the output as UTF-8 and splits it on newline boundaries.
//
// The split preserves every segment, including a trailing empty one when the
// output ends with a newline; joining the result with "\n" reproduces the
// captured text byte-for-byte. Invalid UTF-8 is reported as
// *MalformedOutputError and no lines are returned.
func (o Output) Lines() ([]string, error) {
	if len(o) == 0 {
		// An empty capture means nothing to replay, not one empty command.
		return nil, nil
	}
	if off, ok := firstInvalidUTF8(o); ok {
		return nil, &MalformedOutputError{Offset: off}
	}
	return strings.Split(string(o), "\n"), nil
}

// firstInvalidUTF8 returns the byte offset of the first invalid UTF-8
// sequence in b, if any.
func firstInvalidUTF8(b []byte) (int, bool) {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i, true
		}
		i += size
	}
	return 0, false
}
