package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "empty resolver path",
			mutate:  func(c *Config) { c.Resolver.Path = "" },
			wantErr: "resolver path",
		},
		{
			name:    "empty resolver subcommand",
			mutate:  func(c *Config) { c.Resolver.Subcommand = "" },
			wantErr: "resolver subcommand",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Resolver.TimeoutSeconds = -5 },
			wantErr: "timeout cannot be negative",
		},
		{
			name:    "empty gdb path",
			mutate:  func(c *Config) { c.GDB.Path = "" },
			wantErr: "gdb path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
