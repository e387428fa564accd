// Package constants centralizes default values shared across symsync.
package constants

const (
	// DefaultResolverPath is the symbol resolver binary, looked up on PATH
	// unless overridden by config.
	DefaultResolverPath = "elk"

	// DefaultResolverSubcommand is the resolver subcommand that emits
	// debugger commands for a pid.
	DefaultResolverSubcommand = "autosym"

	// DefaultGDBPath is the debugger binary, looked up on PATH.
	DefaultGDBPath = "gdb"

	// DefaultDir is the per-user config directory under $HOME.
	DefaultDir = ".symsync"

	// DefaultConfigFile is the config file name inside DefaultDir.
	DefaultConfigFile = "config.yaml"

	// DefaultHistoryFile is the shell history file name inside DefaultDir.
	DefaultHistoryFile = "shell_history"

	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "info"

	// SyncMnemonic is the short command typed inside the interactive shell
	// to trigger a symbol sync.
	SyncMnemonic = "asym"
)
