package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symsync-io/symsync/internal/host"
	"github.com/symsync-io/symsync/internal/resolver"
	"github.com/symsync-io/symsync/internal/testutil"
)

// stubInvoker returns canned resolver output and records how it was called.
type stubInvoker struct {
	output resolver.Output
	err    error

	calls   int
	lastPID int
}

func (s *stubInvoker) Run(_ context.Context, pid int) (resolver.Output, error) {
	s.calls++
	s.lastPID = pid
	if s.err != nil {
		return nil, s.err
	}
	return s.output, nil
}

func newBridge(t *testing.T, h host.Context, inv Invoker, cfg Config) *Bridge {
	t.Helper()
	return New(h, inv, cfg, testutil.NewTestLogger(t))
}

func TestSync_ReplaysAllLinesInOrder(t *testing.T) {
	rec := &host.Recorder{PID: 4242}
	inv := &stubInvoker{output: resolver.Output("add-symbol-file /tmp/a.so 0x1000\nadd-symbol-file /tmp/b.so 0x2000\n")}

	err := newBridge(t, rec, inv, DefaultConfig()).Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, 4242, inv.lastPID)
	// The trailing empty segment is submitted verbatim by default; the
	// host treats an empty command as a no-op.
	assert.Equal(t, []string{
		"add-symbol-file /tmp/a.so 0x1000",
		"add-symbol-file /tmp/b.so 0x2000",
		"",
	}, rec.Commands)
}

func TestSync_SkipEmptyLines(t *testing.T) {
	rec := &host.Recorder{PID: 4242}
	inv := &stubInvoker{output: resolver.Output("a\n\nb\n")}

	err := newBridge(t, rec, inv, Config{SubmitEmptyLines: false}).Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, rec.Commands)
}

func TestSync_EmptyOutput(t *testing.T) {
	rec := &host.Recorder{PID: 1}
	inv := &stubInvoker{output: resolver.Output("")}

	// Zero submissions even with empty-line submission enabled: an empty
	// capture has no lines at all.
	err := newBridge(t, rec, inv, DefaultConfig()).Sync(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.Commands)
}

func TestSync_NoInferior(t *testing.T) {
	rec := &host.Recorder{}
	inv := &stubInvoker{output: resolver.Output("never replayed\n")}

	err := newBridge(t, rec, inv, DefaultConfig()).Sync(context.Background())

	// The lookup failure is propagated untranslated and the resolver is
	// never spawned.
	assert.ErrorIs(t, err, host.ErrNoInferior)
	assert.Zero(t, inv.calls)
	assert.Empty(t, rec.Commands)
}

func TestSync_ResolverFailure(t *testing.T) {
	rec := &host.Recorder{PID: 1}
	invErr := &resolver.InvocationError{
		Argv: []string{"elk", "autosym", "1"},
		Err:  errors.New("exit status 1"),
	}
	inv := &stubInvoker{err: invErr}

	err := newBridge(t, rec, inv, DefaultConfig()).Sync(context.Background())

	var gotErr *resolver.InvocationError
	require.True(t, errors.As(err, &gotErr))
	assert.Empty(t, rec.Commands, "no lines may be replayed when the resolver fails")
}

func TestSync_MalformedOutput(t *testing.T) {
	rec := &host.Recorder{PID: 1}
	inv := &stubInvoker{output: resolver.Output([]byte{0xff, 0xfe})}

	err := newBridge(t, rec, inv, DefaultConfig()).Sync(context.Background())

	var malErr *resolver.MalformedOutputError
	require.True(t, errors.As(err, &malErr))
	assert.Empty(t, rec.Commands)
}

func TestSync_StopsAtFirstRejection(t *testing.T) {
	rejection := errors.New("undefined command")
	rec := &host.Recorder{PID: 1, RejectAt: 2, RejectErr: rejection}
	inv := &stubInvoker{output: resolver.Output("one\ntwo\nthree\nfour")}

	err := newBridge(t, rec, inv, DefaultConfig()).Sync(context.Background())

	var rejErr *CommandRejectedError
	require.True(t, errors.As(err, &rejErr))
	assert.Equal(t, 2, rejErr.Index)
	assert.Equal(t, "two", rejErr.Line)
	assert.ErrorIs(t, rejErr, rejection)

	// Submissions 1..K occurred, K+1..N did not.
	assert.Equal(t, []string{"one", "two"}, rec.Commands)
}
