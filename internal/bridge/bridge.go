// Package bridge implements the symbol-sync bridge: it asks the debugger
// host which process is attached, runs the external symbol resolver for that
// pid, and replays the resolver's output line by line as host commands.
package bridge

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/symsync-io/symsync/internal/host"
	"github.com/symsync-io/symsync/internal/resolver"
)

// Invoker runs the symbol resolver for a pid. *resolver.Resolver is the
// production implementation.
type Invoker interface {
	Run(ctx context.Context, pid int) (resolver.Output, error)
}

// Config holds bridge behavior settings.
type Config struct {
	// SubmitEmptyLines controls whether empty segments of the resolver
	// output (most commonly the trailing one produced by a final newline)
	// are submitted to the host. Hosts are expected to treat an empty
	// command as a no-op, but that is host-defined, so it can be turned
	// off for hosts that complain.
	SubmitEmptyLines bool
}

// DefaultConfig returns the default bridge configuration.
// Empty lines are submitted verbatim, matching the original bridge behavior.
func DefaultConfig() Config {
	return Config{
		SubmitEmptyLines: true,
	}
}

// CommandRejectedError reports that the host refused one of the replayed
// lines. Earlier lines have already been executed; later lines were
// abandoned, since they may depend on the rejected one.
type CommandRejectedError struct {
	// Line is the rejected command text.
	Line string

	// Index is the 1-based position of the line in the command batch.
	Index int

	// Err is the host's error.
	Err error
}

func (e *CommandRejectedError) Error() string {
	return fmt.Sprintf("host rejected command %d %q: %v", e.Index, e.Line, e.Err)
}

func (e *CommandRejectedError) Unwrap() error {
	return e.Err
}

// Bridge replays resolver output into a debugger host.
//
// A Bridge holds no state across invocations; each Sync starts fresh and
// every value it produces is discarded when Sync returns.
type Bridge struct {
	host     host.Context
	resolver Invoker
	config   Config
	logger   zerolog.Logger
}

// New creates a Bridge over the given host and resolver.
func New(hostCtx host.Context, inv Invoker, config Config, logger zerolog.Logger) *Bridge {
	return &Bridge{
		host:     hostCtx,
		resolver: inv,
		config:   config,
		logger:   logger.With().Str("component", "bridge").Logger(),
	}
}

// Sync performs one end-to-end symbol synchronization.
//
// The flow is strictly linear and blocking: look up the selected inferior,
// run the resolver to completion, then submit every output line to the host
// in order. The first failure at any stage aborts the rest of the batch;
// lines already submitted are not rolled back.
//
// A failed inferior lookup is propagated untranslated, before the resolver
// is ever spawned. Resolver failures surface as *resolver.InvocationError or
// *resolver.MalformedOutputError with zero lines replayed; a host refusal
// surfaces as *CommandRejectedError naming the offending line.
func (b *Bridge) Sync(ctx context.Context) error {
	pid, err := b.host.SelectedProcessID()
	if err != nil {
		return err
	}

	out, err := b.resolver.Run(ctx, pid)
	if err != nil {
		return err
	}

	lines, err := out.Lines()
	if err != nil {
		return err
	}

	b.logger.Debug().
		Int("pid", pid).
		Int("lines", len(lines)).
		Msg("Replaying resolver output")

	submitted := 0
	for i, line := range lines {
		if line == "" && !b.config.SubmitEmptyLines {
			continue
		}
		if err := b.host.ExecuteCommand(line); err != nil {
			b.logger.Error().
				Err(err).
				Int("line", i+1).
				Str("command", line).
				Msg("Host rejected command, abandoning batch")
			return &CommandRejectedError{
				Line:  line,
				Index: i + 1,
				Err:   err,
			}
		}
		submitted++
	}

	b.logger.Info().
		Int("pid", pid).
		Int("commands", submitted).
		Msg("Symbol sync complete")

	return nil
}
