// Package cli implements the symsync command tree.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/symsync-io/symsync/internal/bridge"
	"github.com/symsync-io/symsync/internal/config"
	"github.com/symsync-io/symsync/internal/logging"
	"github.com/symsync-io/symsync/internal/resolver"
	"github.com/symsync-io/symsync/pkg/version"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "symsync",
	Short: "symsync - sync debugger symbol tables from a live process",
	Long: `symsync bridges a debugger and an external symbol resolver.

Given an attached process, the resolver computes where that process has
mapped its libraries and emits the debugger commands that register their
symbol tables. symsync replays those commands into a live GDB session, or
writes them out as a script for any debugger to source.

Typical flows:
- symsync attach --pid 4242     spawn GDB, attach, sync symbols, detach
- symsync shell --name myapp    interactive GDB shell; type 'asym' to re-sync
- symsync sync --pid 4242       print the command batch instead of running it
- symsync ps myapp              find a pid worth attaching to`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.symsync/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	// Add subcommands
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAttachCmd())
	rootCmd.AddCommand(newShellCmd())
	rootCmd.AddCommand(newPsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("symsync version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig assembles the effective config, applying persistent flag
// overrides on top.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func loggingConfig(cfg *config.Config) logging.Config {
	return logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	}
}

func resolverConfig(cfg *config.Config) resolver.Config {
	return resolver.Config{
		Path:       cfg.Resolver.Path,
		Subcommand: cfg.Resolver.Subcommand,
		Timeout:    time.Duration(cfg.Resolver.TimeoutSeconds) * time.Second,
	}
}

func bridgeConfig(cfg *config.Config) bridge.Config {
	return bridge.Config{
		SubmitEmptyLines: cfg.Bridge.SubmitEmptyLines,
	}
}
