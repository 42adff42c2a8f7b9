package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	config "todo-folders.com/todo-folders/internal/configs"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Inspect scheduled reminders",
}

var remindersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active reminder triggers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.close()

		if a.cfg.ReminderBackend == config.ReminderBackendMemory {
			fmt.Fprintln(cmd.ErrOrStderr(), "memory backend: only triggers of this process are visible")
		}

		triggers, err := a.table.Active(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEVERY\tNEXT\tBODY")
		for _, t := range triggers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Period, t.NextFireAt.Format(time.RFC3339), t.Body)
		}
		return w.Flush()
	},
}

func init() {
	remindersCmd.AddCommand(remindersListCmd)
	rootCmd.AddCommand(remindersCmd)
}
