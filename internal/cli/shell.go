package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/symsync-io/symsync/internal/bridge"
	"github.com/symsync-io/symsync/internal/constants"
	errs "github.com/symsync-io/symsync/internal/errors"
	"github.com/symsync-io/symsync/internal/host/gdb"
	"github.com/symsync-io/symsync/internal/logging"
	"github.com/symsync-io/symsync/internal/resolver"
)

func newShellCmd() *cobra.Command {
	var (
		pid          int
		name         string
		syncOnAttach bool
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive GDB shell with symbol sync on demand",
		Long: `Spawns GDB, attaches it to the target process, and opens a REPL.

Plain lines are forwarded to GDB as console commands. Typing the mnemonic
'` + constants.SyncMnemonic + `' re-runs the symbol sync against the attached process, which is
useful after the target has dlopen'd more libraries.

Meta-commands:
  .detach     - Detach from the target (it keeps running)
  .help       - Show help message
  .exit       - Exit shell (or Ctrl+D)
  .quit       - Exit shell`,
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
				ConsoleOut: cmd.OutOrStdout(),
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

			if syncOnAttach {
				if err := br.Sync(ctx); err != nil {
					return fmt.Errorf("symbol sync failed: %w", err)
				}
			}

			return runShell(cmd, session, br, target)
		},
	}

	cmd.Flags().IntVarP(&pid, "pid", "p", 0, "Target process id")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Target process name (must match exactly one process)")
	cmd.Flags().BoolVar(&syncOnAttach, "sync", false, "Run a symbol sync immediately after attaching")

	return cmd
}

// runShell runs the REPL loop until exit or EOF.
func runShell(cmd *cobra.Command, session *gdb.Session, br *bridge.Bridge, target int) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "(symsync) ",
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer func(rl *readline.Instance) {
		_ = rl.Close()
	}(rl)

	cmd.Printf("Attached to pid %d. Type '%s' to sync symbols, '.help' for help.\n\n",
		target, constants.SyncMnemonic)

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				cmd.Println()
				break
			}
			return fmt.Errorf("readline error: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleMetaCommand(cmd, session, line); quit {
				break
			}
			continue
		}

		if line == constants.SyncMnemonic {
			if err := br.Sync(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			continue
		}

		if err := session.ExecuteCommand(line); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	return nil
}

// handleMetaCommand handles "."-prefixed shell commands. It returns true
// when the shell should exit.
func handleMetaCommand(cmd *cobra.Command, session *gdb.Session, line string) bool {
	switch line {
	case ".exit", ".quit":
		return true
	case ".detach":
		if err := session.Detach(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return false
	case ".help":
		cmd.Printf(`Commands:
  %s          - Sync symbol tables for the attached process
  <anything>    - Forwarded to GDB as a console command
  .detach       - Detach from the target
  .exit, .quit  - Exit (or Ctrl+D)
`, constants.SyncMnemonic)
		return false
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "Unknown meta-command %q, try .help\n", line)
		return false
	}
}

// historyFile returns the shell history path, creating the config dir as a
// side effect. Empty disables history.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, constants.DefaultDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ""
	}
	return filepath.Join(dir, constants.DefaultHistoryFile)
}
