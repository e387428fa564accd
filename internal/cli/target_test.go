package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTarget_ByPid(t *testing.T) {
	pid, err := resolveTarget(os.Getpid(), "")
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestResolveTarget_MissingPid(t *testing.T) {
	_, err := resolveTarget(1<<22, "")
	assert.ErrorContains(t, err, "no running process")
}

func TestResolveTarget_BothFlags(t *testing.T) {
	_, err := resolveTarget(1, "init")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestResolveTarget_NeitherFlag(t *testing.T) {
	_, err := resolveTarget(0, "")
	assert.ErrorContains(t, err, "--pid or --name")
}
