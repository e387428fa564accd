package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks a config for values that would fail later in confusing
// ways and reports them up front.
func Validate(cfg *Config) error {
	if !validLogLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level %q (expected trace, debug, info, warn, or error)", cfg.Log.Level)
	}
	if cfg.Resolver.Path == "" {
		return fmt.Errorf("resolver path cannot be empty")
	}
	if cfg.Resolver.Subcommand == "" {
		return fmt.Errorf("resolver subcommand cannot be empty")
	}
	if cfg.Resolver.TimeoutSeconds < 0 {
		return fmt.Errorf("resolver timeout cannot be negative, got %d", cfg.Resolver.TimeoutSeconds)
	}
	if cfg.GDB.Path == "" {
		return fmt.Errorf("gdb path cannot be empty")
	}
	return nil
}
