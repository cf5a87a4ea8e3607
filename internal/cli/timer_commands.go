package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"retainer-tracker/internal/domain"
	"retainer-tracker/internal/errors"
)

func (a *App) startCommand() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "start [description]",
		Short: "Start the timer, closing any running entry",
		Long: `Start a new time entry. If another entry is still open it is closed
with its elapsed duration before the new one begins; only one entry
runs at a time.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := ""
			if len(args) > 0 {
				description = args[0]
			}
			var project *string
			if projectID != "" {
				project = &projectID
			}

			entry, err := a.Timer.Start(cmd.Context(), project, description)
			if err != nil {
				return a.errors.Handle("start timer", err)
			}

			fmt.Fprintf(a.Out, "Started %s", entry.ID)
			if entry.Description != "" {
				fmt.Fprintf(a.Out, " (%s)", entry.Description)
			}
			fmt.Fprintln(a.Out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID to book the entry on")
	return cmd
}

func (a *App) pauseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pause [entry-id]",
		Short: "Pause the running entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := a.resolveEntryID(cmd.Context(), args)
			if err != nil {
				return err
			}

			entry, err := a.Timer.Pause(cmd.Context(), entryID)
			if err != nil {
				return a.errors.Handle("pause timer", err)
			}

			if entry.IsPaused() {
				fmt.Fprintf(a.Out, "Paused at %s\n", domain.FormatHMS(entry.ElapsedSeconds()))
			} else {
				fmt.Fprintln(a.Out, "Nothing to pause")
			}
			return nil
		},
	}
}

func (a *App) resumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resume [entry-id]",
		Short: "Resume a paused entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := a.resolveEntryID(cmd.Context(), args)
			if err != nil {
				return err
			}

			entry, err := a.Timer.Resume(cmd.Context(), entryID)
			if err != nil {
				return a.errors.Handle("resume timer", err)
			}

			if entry.IsOpen() && !entry.IsPaused() {
				fmt.Fprintf(a.Out, "Resumed at %s\n", domain.FormatHMS(entry.ElapsedSeconds()))
			} else {
				fmt.Fprintln(a.Out, "Nothing to resume")
			}
			return nil
		},
	}
}

func (a *App) stopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop [entry-id]",
		Short: "Stop the running entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := a.resolveEntryID(cmd.Context(), args)
			if err != nil {
				return err
			}

			entry, err := a.Timer.Stop(cmd.Context(), entryID)
			if err != nil {
				return a.errors.Handle("stop timer", err)
			}

			fmt.Fprintf(a.Out, "Stopped after %s", domain.FormatHMS(entry.ElapsedSeconds()))
			if entry.PausedSeconds > 0 {
				fmt.Fprintf(a.Out, " (%s paused)", domain.FormatHMS(entry.PausedSeconds))
			}
			fmt.Fprintln(a.Out)
			return nil
		},
		Args: cobra.MaximumNArgs(1),
	}
}

func (a *App) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the timer and today's totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := a.Reporting.GetDashboard(cmd.Context())
			if err != nil {
				return a.errors.Handle("load status", err)
			}

			if dashboard.ActiveEntry == nil {
				fmt.Fprintln(a.Out, "No timer running")
			} else {
				entry := dashboard.ActiveEntry
				state := "running"
				if entry.IsPaused() {
					state = "paused"
				}
				fmt.Fprintf(a.Out, "Timer %s: %s", state, domain.FormatHMS(entry.ElapsedSeconds()))
				if entry.Description != "" {
					fmt.Fprintf(a.Out, " (%s)", entry.Description)
				}
				fmt.Fprintln(a.Out)
			}

			fmt.Fprintf(a.Out, "Today: %s across %d entries\n",
				domain.FormatHMS(dashboard.TodaySeconds), dashboard.TodayEntries)
			return nil
		},
	}
}

func (a *App) logCommand() *cobra.Command {
	var (
		projectID string
		from      string
		to        string
		billable  bool
	)

	cmd := &cobra.Command{
		Use:   "log [description]",
		Short: "Record a finished entry with explicit times",
		Long: `Record time after the fact. The entry is created already closed, so it
never interferes with the running timer.

Times accept RFC3339 or "2006-01-02 15:04".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := ""
			if len(args) > 0 {
				description = args[0]
			}
			start, err := parseTimeFlag(from)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			end, err := parseTimeFlag(to)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}
			var project *string
			if projectID != "" {
				project = &projectID
			}

			entry, err := a.Timer.Log(cmd.Context(), project, description, start, end, billable)
			if err != nil {
				return a.errors.Handle("log entry", err)
			}

			fmt.Fprintf(a.Out, "Logged %s (%s)\n", entry.ID, domain.FormatHMS(entry.ElapsedSeconds()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID to book the entry on")
	cmd.Flags().StringVar(&from, "from", "", "Start time (required)")
	cmd.Flags().StringVar(&to, "to", "", "End time (required)")
	cmd.Flags().BoolVar(&billable, "billable", true, "Mark the entry billable")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

// resolveEntryID picks the explicit argument, or falls back to the open entry.
func (a *App) resolveEntryID(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	entry, err := a.Timer.Active(ctx)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return "", fmt.Errorf("no timer is running")
		}
		return "", a.errors.HandleSimple(err)
	}
	return entry.ID, nil
}

var timeFlagFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range timeFlagFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}
