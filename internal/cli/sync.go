package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/symsync-io/symsync/internal/bridge"
	errs "github.com/symsync-io/symsync/internal/errors"
	"github.com/symsync-io/symsync/internal/host"
	"github.com/symsync-io/symsync/internal/logging"
	"github.com/symsync-io/symsync/internal/resolver"
)

func newSyncCmd() *cobra.Command {
	var (
		pid        int
		name       string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Print the symbol-load commands for a process",
		Long: `Runs the resolver for the target process and writes the resulting
debugger command batch to stdout (or a file) instead of executing it.

The output is ready to source into a debugger, e.g.:

  symsync sync --pid 4242 -o syms.gdb
  gdb -p 4242 -x syms.gdb`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := logging.New(loggingConfig(cfg))

			target, err := resolveTarget(pid, name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputPath != "" && outputPath != "-" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer errs.DeferClose(logger, f, "failed to close output file")
				out = f
			}

			br := bridge.New(
				&host.Writer{PID: target, Out: out},
				resolver.New(resolverConfig(cfg), logger),
				bridgeConfig(cfg),
				logger,
			)
			return br.Sync(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&pid, "pid", "p", 0, "Target process id")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Target process name (must match exactly one process)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the command batch to a file instead of stdout")

	return cmd
}
