package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezkam/tasktrack/internal/domain"
)

func (a *app) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <task>...",
		Short: "Add a pending task",
		Long:  "Add a pending task. Words are joined with spaces; the task is stored upper-cased.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.svc.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return classify(err)
			}
			if task == "" {
				fmt.Fprintln(cmd.OutOrStdout(), a.styles.muted.Render("Nothing to add."))
				return nil
			}
			a.report(cmd, "Added", []domain.Task{task})
			return nil
		},
	}
}

func (a *app) doneCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "done <n>...",
		Aliases: []string{"complete"},
		Short:   "Complete pending tasks by number",
		RunE: func(cmd *cobra.Command, args []string) error {
			positions, err := parsePositions(args)
			if err != nil {
				return err
			}
			tasks, err := a.svc.Complete(cmd.Context(), positions)
			if err != nil {
				return classify(err)
			}
			a.report(cmd, "Completed", tasks)
			return nil
		},
	}
}

func (a *app) undoCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "undo <n>...",
		Aliases: []string{"uncomplete"},
		Short:   "Move completed tasks back to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.svc.Snapshot(cmd.Context())
			if err != nil {
				return classify(err)
			}
			items, err := resolveTasks(snap.Completed, args)
			if err != nil {
				return err
			}
			tasks, err := a.svc.MoveToPending(cmd.Context(), items)
			if err != nil {
				return classify(err)
			}
			a.report(cmd, "Moved back to pending", tasks)
			return nil
		},
	}
}

func (a *app) rmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <n>...",
		Short: "Delete pending tasks without completing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.svc.Snapshot(cmd.Context())
			if err != nil {
				return classify(err)
			}
			items, err := resolveTasks(snap.Pending, args)
			if err != nil {
				return err
			}
			tasks, err := a.svc.DeletePending(cmd.Context(), items)
			if err != nil {
				return classify(err)
			}
			a.report(cmd, "Deleted", tasks)
			return nil
		},
	}
}

func (a *app) clearCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "clear [<n>...]",
		Short: "Move completed tasks to the recycle bin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				if len(args) > 0 {
					return fmt.Errorf("--all takes no task numbers")
				}
				tasks, err := a.svc.ClearAllCompleted(cmd.Context())
				if err != nil {
					return classify(err)
				}
				a.report(cmd, "Moved to recycle bin", tasks)
				return nil
			}

			positions, err := parsePositions(args)
			if err != nil {
				return err
			}
			tasks, err := a.svc.ClearSelected(cmd.Context(), positions)
			if err != nil {
				return classify(err)
			}
			a.report(cmd, "Moved to recycle bin", tasks)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "clear every completed task")
	return cmd
}

func (a *app) restoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <n>...",
		Short: "Restore recycle bin entries to the completed list",
		RunE: func(cmd *cobra.Command, args []string) error {
			positions, err := parsePositions(args)
			if err != nil {
				return err
			}
			res, err := a.svc.Restore(cmd.Context(), positions)
			if err != nil {
				return classify(err)
			}
			a.report(cmd, "Restored", res.Restored)
			for _, t := range res.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					a.styles.warning.Render("Already in the task list:"), t)
			}
			return nil
		},
	}
}

func (a *app) purgeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge <n>...",
		Short: "Permanently delete recycle bin entries",
		Long:  "Permanently delete recycle bin entries. This cannot be undone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.svc.Snapshot(cmd.Context())
			if err != nil {
				return classify(err)
			}
			items, err := resolveTasks(snap.Recycled, args)
			if err != nil {
				return err
			}
			tasks, err := a.svc.DeleteForever(cmd.Context(), items)
			if err != nil {
				return classify(err)
			}
			a.report(cmd, "Permanently deleted", tasks)
			return nil
		},
	}
}

// report prints one line per affected task.
func (a *app) report(cmd *cobra.Command, verb string, tasks []domain.Task) {
	w := cmd.OutOrStdout()
	label := a.styles.success.Render(verb + ":")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s %s\n", label, t)
	}
}
