package cli

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"retainer-tracker/internal/api"
	"retainer-tracker/internal/domain"
)

func (a *App) entriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Inspect and edit time entries",
	}

	cmd.AddCommand(a.entriesListCommand())
	cmd.AddCommand(a.entriesEditCommand())
	cmd.AddCommand(a.entriesTagCommand())
	cmd.AddCommand(a.entriesDeleteCommand())
	return cmd
}

func (a *App) buildEntryFilter(cmd *cobra.Command, from, to, projectID, clientID, text string, limit int) (api.EntryFilter, error) {
	filter := api.EntryFilter{Limit: limit}

	if from != "" {
		t, err := parseTimeFlag(from)
		if err != nil {
			return filter, fmt.Errorf("invalid --from: %w", err)
		}
		filter.Start = &t
	}
	if to != "" {
		t, err := parseTimeFlag(to)
		if err != nil {
			return filter, fmt.Errorf("invalid --to: %w", err)
		}
		filter.End = &t
	}
	if projectID != "" {
		filter.ProjectID = &projectID
	}
	if clientID != "" {
		filter.ClientID = &clientID
	}
	if text != "" {
		filter.Text = &text
	}
	return filter, nil
}

func (a *App) entriesListCommand() *cobra.Command {
	var (
		from      string
		to        string
		projectID string
		clientID  string
		text      string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := a.buildEntryFilter(cmd, from, to, projectID, clientID, text, limit)
			if err != nil {
				return err
			}

			details, err := a.API.ListEntries(cmd.Context(), filter)
			if err != nil {
				return a.errors.Handle("list entries", err)
			}

			if len(details) == 0 {
				fmt.Fprintln(a.Out, "No entries")
				return nil
			}

			table := newTable(a.Out, []string{"ID", "Start", "Duration", "Project", "Client", "Amount", "Description"})
			for _, d := range details {
				entry := d.Entry

				duration := "running"
				if entry.IsPaused() {
					duration = "paused"
				} else if !entry.IsOpen() {
					duration = domain.FormatHMS(entry.ElapsedSeconds())
				}
				amount := "-"
				if d.Amount != nil {
					amount = fmt.Sprintf("%s %s", d.Amount.Amount.StringFixed(2), d.Amount.Currency)
				}
				table.Append([]string{
					entry.ID,
					entry.StartTime.Local().Format("2006-01-02 15:04"),
					duration,
					orDash(d.ProjectName),
					orDash(d.ClientName),
					amount,
					entry.Description,
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Only entries starting at or after this time")
	cmd.Flags().StringVar(&to, "to", "", "Only entries starting at or before this time")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Filter by project ID")
	cmd.Flags().StringVarP(&clientID, "client", "c", "", "Filter by client ID")
	cmd.Flags().StringVar(&text, "text", "", "Filter by description substring")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show, 0 = all")
	return cmd
}

func (a *App) entriesEditCommand() *cobra.Command {
	var (
		description   string
		projectID     string
		clearProject  bool
		billable      bool
		rate          string
		clearOverride bool
	)

	cmd := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Edit an entry's description, project, billing or rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := api.EntryUpdate{ClearProject: clearProject, ClearOverride: clearOverride}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("project") {
				update.ProjectID = &projectID
			}
			if cmd.Flags().Changed("billable") {
				update.Billable = &billable
			}
			if cmd.Flags().Changed("rate") {
				d, err := decimal.NewFromString(rate)
				if err != nil {
					return fmt.Errorf("invalid --rate: %w", err)
				}
				update.RateOverride = &d
			}

			entry, err := a.API.UpdateEntry(cmd.Context(), args[0], update)
			if err != nil {
				return a.errors.Handle("edit entry", err)
			}

			fmt.Fprintf(a.Out, "Updated %s\n", entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "New project ID")
	cmd.Flags().BoolVar(&clearProject, "clear-project", false, "Detach from the project")
	cmd.Flags().BoolVar(&billable, "billable", true, "Set the billable flag")
	cmd.Flags().StringVar(&rate, "rate", "", "Rate override for this entry")
	cmd.Flags().BoolVar(&clearOverride, "clear-rate", false, "Remove the rate override")
	return cmd
}

func (a *App) entriesTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <entry-id> [tag]...",
		Short: "Replace an entry's tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := a.API.SetEntryTags(cmd.Context(), args[0], args[1:])
			if err != nil {
				return a.errors.Handle("tag entry", err)
			}

			fmt.Fprintf(a.Out, "Tagged with %d tags\n", len(tags))
			return nil
		},
	}
}

func (a *App) entriesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.API.DeleteEntry(cmd.Context(), args[0]); err != nil {
				return a.errors.Handle("delete entry", err)
			}
			fmt.Fprintln(a.Out, "Deleted")
			return nil
		},
	}
}

func (a *App) exportCommand() *cobra.Command {
	var (
		from      string
		to        string
		projectID string
		clientID  string
		text      string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := a.buildEntryFilter(cmd, from, to, projectID, clientID, text, 0)
			if err != nil {
				return err
			}

			out := a.Out
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer file.Close()
				out = file
			}

			if err := a.API.ExportEntriesCSV(cmd.Context(), out, filter); err != nil {
				return a.errors.Handle("export entries", err)
			}

			if outPath != "" {
				fmt.Fprintf(a.Out, "Exported to %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Only entries starting at or after this time")
	cmd.Flags().StringVar(&to, "to", "", "Only entries starting at or before this time")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Filter by project ID")
	cmd.Flags().StringVarP(&clientID, "client", "c", "", "Filter by client ID")
	cmd.Flags().StringVar(&text, "text", "", "Filter by description substring")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}
