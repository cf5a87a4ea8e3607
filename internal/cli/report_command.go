package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *App) reportCommand() *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "report <projects|clients|days>",
		Short: "Aggregate tracked time",
		Long: `Aggregate closed entries by project, client or calendar day.

The range defaults to the last 7 days. Client totals include time
booked on the client's projects.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"projects", "clients", "days"},
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := a.reportRange(from, to)
			if err != nil {
				return err
			}

			switch args[0] {
			case "projects":
				return a.reportProjects(cmd, start, end)
			case "clients":
				return a.reportClients(cmd, start, end)
			case "days":
				return a.reportDays(cmd, start, end)
			default:
				return fmt.Errorf("unknown report %q, expected projects, clients or days", args[0])
			}
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (default 7 days ago)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (default now)")
	return cmd
}

func (a *App) reportRange(from, to string) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -7)

	if from != "" {
		t, err := parseTimeFlag(from)
		if err != nil {
			return start, end, fmt.Errorf("invalid --from: %w", err)
		}
		start = t
	}
	if to != "" {
		t, err := parseTimeFlag(to)
		if err != nil {
			return start, end, fmt.Errorf("invalid --to: %w", err)
		}
		end = t
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("--to must not be before --from")
	}
	return start, end, nil
}

func (a *App) reportProjects(cmd *cobra.Command, start, end time.Time) error {
	rows, err := a.Reporting.ByProject(cmd.Context(), start, end)
	if err != nil {
		return a.errors.Handle("report by project", err)
	}

	if len(rows) == 0 {
		fmt.Fprintln(a.Out, "No tracked time in range")
		return nil
	}

	table := newTable(a.Out, []string{"Project", "Hours"})
	var total float64
	for _, row := range rows {
		table.Append([]string{row.ProjectName, formatHours(row.Hours)})
		total += row.Hours
	}
	table.SetFooter([]string{"Total", formatHours(total)})
	table.Render()
	return nil
}

func (a *App) reportClients(cmd *cobra.Command, start, end time.Time) error {
	rows, err := a.Reporting.ByClient(cmd.Context(), start, end)
	if err != nil {
		return a.errors.Handle("report by client", err)
	}

	if len(rows) == 0 {
		fmt.Fprintln(a.Out, "No tracked time in range")
		return nil
	}

	table := newTable(a.Out, []string{"Client", "Hours"})
	var total float64
	for _, row := range rows {
		table.Append([]string{row.ClientName, formatHours(row.Hours)})
		total += row.Hours
	}
	table.SetFooter([]string{"Total", formatHours(total)})
	table.Render()
	return nil
}

func (a *App) reportDays(cmd *cobra.Command, start, end time.Time) error {
	rows, err := a.Reporting.ByDay(cmd.Context(), start, end)
	if err != nil {
		return a.errors.Handle("report by day", err)
	}

	if len(rows) == 0 {
		fmt.Fprintln(a.Out, "No tracked time in range")
		return nil
	}

	table := newTable(a.Out, []string{"Day", "Hours"})
	var total float64
	for _, row := range rows {
		table.Append([]string{row.Day, formatHours(row.Hours)})
		total += row.Hours
	}
	table.SetFooter([]string{"Total", formatHours(total)})
	table.Render()
	return nil
}
