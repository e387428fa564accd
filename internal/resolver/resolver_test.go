package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symsync-io/symsync/internal/testutil"
)

func TestRun_CapturesStdout(t *testing.T) {
	// echo prints its arguments, so the captured output is the subcommand
	// and the decimal pid followed by a newline.
	r := New(Config{Path: "/bin/echo", Subcommand: "autosym"}, testutil.NewTestLogger(t))

	out, err := r.Run(context.Background(), 4242)
	require.NoError(t, err)
	assert.Equal(t, "autosym 4242\n", string(out))
}

func TestRun_NonZeroExit(t *testing.T) {
	r := New(Config{Path: "/bin/false", Subcommand: "autosym"}, testutil.NewTestLogger(t))

	out, err := r.Run(context.Background(), 1)
	require.Error(t, err)
	assert.Nil(t, out)

	var invErr *InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, []string{"/bin/false", "autosym", "1"}, invErr.Argv)
	assert.Equal(t, 1, invErr.ExitCode)
}

func TestRun_ToolNotFound(t *testing.T) {
	r := New(Config{Path: "/nonexistent/resolver", Subcommand: "autosym"}, testutil.NewTestLogger(t))

	_, err := r.Run(context.Background(), 1)
	require.Error(t, err)

	var invErr *InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Zero(t, invErr.ExitCode)
}

func TestOutput_Lines(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "trailing newline yields trailing empty segment",
			output: "add-symbol-file /tmp/a.so 0x1000\nadd-symbol-file /tmp/b.so 0x2000\n",
			want:   []string{"add-symbol-file /tmp/a.so 0x1000", "add-symbol-file /tmp/b.so 0x2000", ""},
		},
		{
			name:   "no trailing newline",
			output: "a\nb",
			want:   []string{"a", "b"},
		},
		{
			name:   "empty output has nothing to replay",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := Output(tt.output).Lines()
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestOutput_Lines_RoundTrip(t *testing.T) {
	// Rejoining the split lines must reproduce the captured bytes exactly.
	for _, raw := range []string{
		"a\nb\nc\n",
		"a\nb\nc",
		"\n\n",
		"",
		"single",
	} {
		lines, err := Output(raw).Lines()
		require.NoError(t, err)
		assert.Equal(t, raw, strings.Join(lines, "\n"))
	}
}

func TestOutput_Lines_InvalidUTF8(t *testing.T) {
	lines, err := Output([]byte{'o', 'k', '\n', 0xff, 0xfe}).Lines()
	require.Error(t, err)
	assert.Nil(t, lines)

	var malErr *MalformedOutputError
	require.True(t, errors.As(err, &malErr))
	assert.Equal(t, 3, malErr.Offset)
}
