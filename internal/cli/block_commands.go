package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) blockCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Manage invoice blocks (prepaid retainer hours)",
	}

	cmd.AddCommand(a.blockAddCommand())
	cmd.AddCommand(a.blockShowCommand())
	cmd.AddCommand(a.blockHistoryCommand())
	cmd.AddCommand(a.blockResetCommand())
	cmd.AddCommand(a.blockUpdateCommand())
	cmd.AddCommand(a.blockDeleteCommand())
	return cmd
}

func (a *App) blockAddCommand() *cobra.Command {
	var (
		hours float64
		notes string
	)

	cmd := &cobra.Command{
		Use:   "add <client-id>",
		Short: "Open a new active block for a client",
		Long: `Open a new invoice block. A client has at most one active block; reset
the current one first if it exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := a.Billing.CreateBlock(cmd.Context(), args[0], hours, notes)
			if err != nil {
				return a.errors.Handle("create block", err)
			}

			fmt.Fprintf(a.Out, "Opened block %s: %s target\n", block.ID, formatHours(block.HoursTarget))
			return nil
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Target hours for the block (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.MarkFlagRequired("hours")
	return cmd
}

func (a *App) blockShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <client-id>",
		Short: "Show the client's active block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := a.Billing.ActiveBlock(cmd.Context(), args[0])
			if err != nil {
				return a.errors.Handle("show block", err)
			}

			block := active.Block
			fmt.Fprintf(a.Out, "Block %s (since %s)\n", block.ID, block.StartDate.Format("2006-01-02"))
			fmt.Fprintf(a.Out, "Target: %s", formatHours(block.HoursTarget))
			if block.HoursCarriedForward > 0 {
				fmt.Fprintf(a.Out, " + %s carried", formatHours(block.HoursCarriedForward))
			}
			fmt.Fprintln(a.Out)
			fmt.Fprintf(a.Out, "Tracked: %s (%s)\n", formatHours(active.HoursTracked), formatPercent(active.ProgressPercent))
			if overage := block.Overage(active.HoursTracked); overage > 0 {
				fmt.Fprintf(a.Out, "Overage: %s\n", formatHours(overage))
			}
			if block.Notes != "" {
				fmt.Fprintf(a.Out, "Notes: %s\n", block.Notes)
			}
			return nil
		},
	}
}

func (a *App) blockHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history <client-id>",
		Short: "List all blocks for a client, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := a.Billing.BlockHistory(cmd.Context(), args[0])
			if err != nil {
				return a.errors.Handle("list blocks", err)
			}

			if len(history) == 0 {
				fmt.Fprintln(a.Out, "No blocks")
				return nil
			}

			table := newTable(a.Out, []string{"ID", "Status", "Start", "End", "Target", "Carried", "Tracked", "Progress"})
			for _, item := range history {
				block := item.Block
				endDate := "-"
				if block.EndDate != nil {
					endDate = block.EndDate.Format("2006-01-02")
				}
				table.Append([]string{
					block.ID,
					string(block.Status),
					block.StartDate.Format("2006-01-02"),
					endDate,
					formatHours(block.HoursTarget),
					formatHours(block.HoursCarriedForward),
					formatHours(item.HoursTracked),
					formatPercent(item.ProgressPercent),
				})
			}
			table.Render()
			return nil
		},
	}
}

func (a *App) blockResetCommand() *cobra.Command {
	var (
		carry bool
		hours float64
	)

	cmd := &cobra.Command{
		Use:   "reset <block-id>",
		Short: "Complete a block and optionally open its successor",
		Long: `Complete an active block. With --hours a successor block opens
immediately; with --carry its overage becomes carried-forward hours on
the successor, raising the bar the new block is measured against.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var newTarget *float64
			if cmd.Flags().Changed("hours") {
				newTarget = &hours
			}

			result, err := a.Billing.ResetBlock(cmd.Context(), args[0], carry, newTarget)
			if err != nil {
				return a.errors.Handle("reset block", err)
			}

			fmt.Fprintf(a.Out, "Completed block %s", result.Completed.ID)
			if result.Overage > 0 {
				fmt.Fprintf(a.Out, " with %s overage", formatHours(result.Overage))
			}
			fmt.Fprintln(a.Out)

			if result.Next != nil {
				fmt.Fprintf(a.Out, "Opened block %s: %s target", result.Next.ID, formatHours(result.Next.HoursTarget))
				if result.Next.HoursCarriedForward > 0 {
					fmt.Fprintf(a.Out, " + %s carried", formatHours(result.Next.HoursCarriedForward))
				}
				fmt.Fprintln(a.Out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&carry, "carry", false, "Carry overage into the successor")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Target hours of the successor block")
	return cmd
}

func (a *App) blockUpdateCommand() *cobra.Command {
	var (
		hours float64
		notes string
	)

	cmd := &cobra.Command{
		Use:   "update <block-id>",
		Short: "Update a block's target hours or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var hoursPtr *float64
			var notesPtr *string
			if cmd.Flags().Changed("hours") {
				hoursPtr = &hours
			}
			if cmd.Flags().Changed("notes") {
				notesPtr = &notes
			}

			block, err := a.Billing.UpdateBlock(cmd.Context(), args[0], hoursPtr, notesPtr)
			if err != nil {
				return a.errors.Handle("update block", err)
			}

			fmt.Fprintf(a.Out, "Updated block %s: %s target\n", block.ID, formatHours(block.HoursTarget))
			return nil
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "New target hours")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	return cmd
}

func (a *App) blockDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <block-id>",
		Short: "Delete a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Billing.DeleteBlock(cmd.Context(), args[0]); err != nil {
				return a.errors.Handle("delete block", err)
			}
			fmt.Fprintln(a.Out, "Deleted")
			return nil
		},
	}
}
