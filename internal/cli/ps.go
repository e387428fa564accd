package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/symsync-io/symsync/internal/inferior"
)

func newPsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ps [pattern]",
		Short: "List processes matching a name pattern",
		Long: `Lists running processes whose name or command line contains the
pattern, to help pick a pid for attach/shell/sync. Without a pattern, all
visible processes are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}

			matches, err := inferior.Find(pattern)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return fmt.Errorf("no process matches %q", pattern)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PID\tUSER\tNAME\tCOMMAND")
			for _, m := range matches {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.PID, m.Username, m.Name, truncate(m.Cmdline, 80))
			}
			return w.Flush()
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
