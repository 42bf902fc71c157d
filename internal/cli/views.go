package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rezkam/tasktrack/internal/domain"
	"github.com/rezkam/tasktrack/internal/ptr"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show pending and completed tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.list(cmd)
		},
	}
}

func (a *app) list(cmd *cobra.Command) error {
	snap, err := a.svc.Snapshot(cmd.Context())
	if err != nil {
		return classify(err)
	}
	w := cmd.OutOrStdout()
	a.printSection(w, "Pending Tasks:", snap.Pending)
	a.printSection(w, "Completed Tasks:", snap.Completed)

	p := domain.Progress{Pending: len(snap.Pending), Completed: len(snap.Completed), Recycled: len(snap.Recycled)}
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.styles.muted.Render(fmt.Sprintf("%d of %d completed (%.0f%%)",
		p.Completed, p.Pending+p.Completed, p.CompletionRate())))
	return nil
}

func (a *app) binCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bin",
		Short: "Show the recycle bin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.svc.Snapshot(cmd.Context())
			if err != nil {
				return classify(err)
			}
			a.printSection(cmd.OutOrStdout(), "Recycle Bin:", snap.Recycled)
			return nil
		},
	}
}

func (a *app) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts and completion rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.svc.Progress(cmd.Context())
			if err != nil {
				return classify(err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Pending:    %d\n", p.Pending)
			fmt.Fprintf(w, "Completed:  %d\n", p.Completed)
			fmt.Fprintf(w, "Recycled:   %d\n", p.Recycled)
			fmt.Fprintf(w, "Completion: %.0f%%\n", p.CompletionRate())
			return nil
		},
	}
}

func (a *app) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func (a *app) perfCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perf",
		Short: "Show deadlines, types and priorities of pending tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.svc.Performance(cmd.Context())
			if err != nil {
				return classify(err)
			}
			snap, err := a.svc.Snapshot(cmd.Context())
			if err != nil {
				return classify(err)
			}
			a.printPerformance(cmd.OutOrStdout(), snap.Pending, entries)
			return nil
		},
	}
	cmd.AddCommand(a.perfSetCommand(), a.perfDaysCommand())
	return cmd
}

func (a *app) perfSetCommand() *cobra.Command {
	var deadline, taskType, priority, comment string
	cmd := &cobra.Command{
		Use:   "set <n>",
		Short: "Update the record of a pending task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd domain.RecordUpdate
			if deadline != "" {
				d, err := domain.ParseDate(deadline)
				if err != nil {
					return err
				}
				upd.Deadline = &d
			}
			if taskType != "" {
				t, err := domain.NewTaskType(taskType)
				if err != nil {
					return err
				}
				upd.Type = &t
			}
			if priority != "" {
				p, err := domain.NewTaskPriority(priority)
				if err != nil {
					return err
				}
				upd.Priority = &p
			}
			// An explicit empty --comment clears it.
			if cmd.Flags().Changed("comment") {
				upd.Comment = ptr.To(comment)
			}
			if upd.IsEmpty() {
				return fmt.Errorf("nothing to update: pass --deadline, --type, --priority or --comment")
			}

			snap, err := a.svc.Snapshot(cmd.Context())
			if err != nil {
				return classify(err)
			}
			items, err := resolveTasks(snap.Pending, args)
			if err != nil {
				return err
			}
			ok, err := a.svc.UpdateRecord(cmd.Context(), items[0], upd)
			if err != nil {
				return classify(err)
			}
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, items[0])
			}
			a.report(cmd, "Updated", items)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&deadline, "deadline", "", "deadline as YYYY-MM-DD")
	f.StringVar(&taskType, "type", "", "Work, Business, Leisure, Programming or Other")
	f.StringVar(&priority, "priority", "", "High, Medium, Low or Average")
	f.StringVar(&comment, "comment", "", "free-form note")
	return cmd
}

func (a *app) perfDaysCommand() *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "days <n>",
		Short: "Show the days remaining until a pending task's deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := a.svc.Today()
			if on != "" {
				d, err := domain.ParseDate(on)
				if err != nil {
					return err
				}
				ref = d
			}
			snap, err := a.svc.Snapshot(cmd.Context())
			if err != nil {
				return classify(err)
			}
			items, err := resolveTasks(snap.Pending, args)
			if err != nil {
				return err
			}
			days, status, err := a.svc.DaysRemaining(cmd.Context(), items[0], ref)
			if err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", items[0], a.styles.status(status).Render(daysLabel(days, status)))
			return nil
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "reference date as YYYY-MM-DD (default today)")
	return cmd
}

// printSection prints a titled, numbered task list.
func (a *app) printSection(w io.Writer, title string, tasks []domain.Task) {
	fmt.Fprintln(w, a.styles.header.Render(title))
	if len(tasks) == 0 {
		fmt.Fprintln(w, a.styles.muted.Render("      (none)"))
		return
	}
	for i, t := range tasks {
		fmt.Fprintf(w, "%s  %s\n", a.styles.index.Render(fmt.Sprintf("%4d", i+1)), t)
	}
}

func (a *app) printPerformance(w io.Writer, pending []domain.Task, entries []domain.PerformanceEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, a.styles.muted.Render("No pending tasks."))
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		n := "-"
		if i := slices.Index(pending, e.Task); i >= 0 {
			n = strconv.Itoa(i + 1)
		}
		rows = append(rows, []string{
			n,
			e.Task.String(),
			e.Deadline.String(),
			a.styles.status(e.Status).Render(daysLabel(e.DaysRemaining, e.Status)),
			string(e.Type),
			string(e.Priority),
			e.Comment,
		})
	}

	header := a.styles.header
	cell := a.styles.renderer.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(a.styles.muted).
		Headers("#", "TASK", "DEADLINE", "REMAINING", "TYPE", "PRIORITY", "COMMENT").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return cell
		})
	fmt.Fprintln(w, t.Render())
}

func daysLabel(days int, status domain.DeadlineStatus) string {
	switch status {
	case domain.DeadlineOverdue:
		return plural(-days, "day") + " overdue"
	case domain.DeadlineDueToday:
		return "due today"
	default:
		return plural(days, "day") + " left"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
