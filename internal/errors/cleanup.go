// Package errors provides utilities for error handling in symsync.
package errors

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Detacher is anything holding on to a debugged process that can let go of it.
type Detacher interface {
	Detach() error
}

// DeferClose properly closes an io.Closer with logging.
// Use this in defer statements to avoid suppressing close errors.
func DeferClose(logger zerolog.Logger, closer io.Closer, msg string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn().Err(err).Msg(msg)
	}
}

// DeferDetach detaches from a debugged process with logging.
// Use this in defer statements so a failed detach is visible but never
// masks the primary error.
func DeferDetach(logger zerolog.Logger, d Detacher) {
	if d == nil {
		return
	}
	if err := d.Detach(); err != nil {
		logger.Warn().Err(err).Msg("detach failed")
	}
}

// Must panics if error is not nil.
// Use only for initialization code where failure should halt the program.
func Must(err error, msg string) {
	if err != nil {
		panic(fmt.Sprintf("%s: %v", msg, err))
	}
}
