package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symsync-io/symsync/internal/constants"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultResolverPath, cfg.Resolver.Path)
	assert.Equal(t, constants.DefaultResolverSubcommand, cfg.Resolver.Subcommand)
	assert.Equal(t, constants.DefaultGDBPath, cfg.GDB.Path)
	assert.Equal(t, constants.DefaultLogLevel, cfg.Log.Level)
	assert.True(t, cfg.Bridge.SubmitEmptyLines)
	assert.Zero(t, cfg.Resolver.TimeoutSeconds)
}

func TestLoad_MissingFileIsOptional(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultResolverPath, cfg.Resolver.Path)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
log:
  level: debug
resolver:
  path: /opt/elk/bin/elk
  timeout_seconds: 30
bridge:
  submit_empty_lines: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/opt/elk/bin/elk", cfg.Resolver.Path)
	assert.Equal(t, 30, cfg.Resolver.TimeoutSeconds)
	assert.False(t, cfg.Bridge.SubmitEmptyLines)
	// Untouched sections keep their defaults.
	assert.Equal(t, constants.DefaultResolverSubcommand, cfg.Resolver.Subcommand)
	assert.Equal(t, constants.DefaultGDBPath, cfg.GDB.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resolver:\n  path: /from/file\n"), 0644))

	t.Setenv("SYMSYNC_RESOLVER_PATH", "/from/env")
	t.Setenv("SYMSYNC_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Resolver.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [not a mapping"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFromEnv_BadValues(t *testing.T) {
	t.Setenv("SYMSYNC_RESOLVER_TIMEOUT_SECONDS", "not-a-number")

	cfg := Default()
	err := LoadFromEnv(cfg)
	assert.Error(t, err)
}

func TestLoadFromEnv_Bool(t *testing.T) {
	t.Setenv("SYMSYNC_SUBMIT_EMPTY_LINES", "false")

	cfg := Default()
	require.NoError(t, LoadFromEnv(cfg))
	assert.False(t, cfg.Bridge.SubmitEmptyLines)
}
