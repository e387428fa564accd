package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/symsync-io/symsync/internal/bridge"
	errs "github.com/symsync-io/symsync/internal/errors"
	"github.com/symsync-io/symsync/internal/host/gdb"
	"github.com/symsync-io/symsync/internal/logging"
	"github.com/symsync-io/symsync/internal/resolver"
)

func newAttachCmd() *cobra.Command {
	var (
		pid  int
		name string
	)

	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Attach GDB to a process and sync its symbols",
		Long: `Spawns GDB, attaches it to the target process, runs one symbol sync
through the resolver, then detaches and exits. The target keeps running.

Use 'symsync shell' instead to stay attached interactively.`,
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

			ctx := cmd.Context()
			session, err := gdb.Start(ctx, gdb.Config{
				Path:       cfg.GDB.Path,
				ConsoleOut: cmd.ErrOrStderr(),
			}, logger)
			if err != nil {
				return err
			}
			defer errs.DeferClose(logger, session, "failed to close gdb session")

			if err := session.Attach(target); err != nil {
				return err
			}
			defer errs.DeferDetach(logger, session)

			br := bridge.New(
				session,
				resolver.New(resolverConfig(cfg), logger),
				bridgeConfig(cfg),
				logger,
			)
			if err := br.Sync(ctx); err != nil {
				return fmt.Errorf("symbol sync failed: %w", err)
			}

			cmd.Printf("Synced symbols for pid %d\n", target)
			return nil
		},
	}

	cmd.Flags().IntVarP(&pid, "pid", "p", 0, "Target process id")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Target process name (must match exactly one process)")

	return cmd
}
