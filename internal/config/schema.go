// Package config loads symsync configuration from defaults, an optional
// YAML file, and SYMSYNC_* environment variables, in that precedence order.
// Command-line flags override all of it at the CLI layer.
package config

import (
	"os"
	"path/filepath"

	"github.com/symsync-io/symsync/internal/constants"
)

// Config is the root symsync configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Resolver ResolverConfig `yaml:"resolver"`
	GDB      GDBConfig      `yaml:"gdb"`
	Bridge   BridgeConfig   `yaml:"bridge"`
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `yaml:"level" env:"SYMSYNC_LOG_LEVEL"`

	// Pretty enables human-readable console output.
	Pretty bool `yaml:"pretty" env:"SYMSYNC_LOG_PRETTY"`
}

// ResolverConfig configures the external symbol-resolution tool.
type ResolverConfig struct {
	// Path is the resolver binary, absolute or looked up on PATH.
	Path string `yaml:"path" env:"SYMSYNC_RESOLVER_PATH"`

	// Subcommand is the resolver subcommand that emits debugger commands.
	Subcommand string `yaml:"subcommand" env:"SYMSYNC_RESOLVER_SUBCOMMAND"`

	// TimeoutSeconds bounds one resolver invocation. Zero disables the
	// timeout, which matches the original bridge behavior.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"SYMSYNC_RESOLVER_TIMEOUT_SECONDS"`
}

// GDBConfig configures the debugger host.
type GDBConfig struct {
	// Path is the gdb binary, absolute or looked up on PATH.
	Path string `yaml:"path" env:"SYMSYNC_GDB_PATH"`
}

// BridgeConfig configures replay behavior.
type BridgeConfig struct {
	// SubmitEmptyLines controls whether empty resolver output lines are
	// submitted to the host.
	SubmitEmptyLines bool `yaml:"submit_empty_lines" env:"SYMSYNC_SUBMIT_EMPTY_LINES"`
}

// Default returns a config with all defaults applied.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  constants.DefaultLogLevel,
			Pretty: true,
		},
		Resolver: ResolverConfig{
			Path:       constants.DefaultResolverPath,
			Subcommand: constants.DefaultResolverSubcommand,
		},
		GDB: GDBConfig{
			Path: constants.DefaultGDBPath,
		},
		Bridge: BridgeConfig{
			SubmitEmptyLines: true,
		},
	}
}

// DefaultPath returns the per-user config file path, or an empty string when
// the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, constants.DefaultDir, constants.DefaultConfigFile)
}
