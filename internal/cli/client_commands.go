package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"retainer-tracker/internal/api"
)

func (a *App) clientCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	cmd.AddCommand(a.clientAddCommand())
	cmd.AddCommand(a.clientListCommand())
	cmd.AddCommand(a.clientShowCommand())
	cmd.AddCommand(a.clientUpdateCommand())
	cmd.AddCommand(a.clientDeleteCommand())
	return cmd
}

func (a *App) clientAddCommand() *cobra.Command {
	var (
		currency    string
		address     string
		color       string
		rate        string
		billable    bool
		budgetLimit float64
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := api.ClientInput{
				Name:            args[0],
				Currency:        currency,
				Address:         address,
				Color:           color,
				DefaultBillable: billable,
				BudgetLimit:     budgetLimit,
			}
			if rate != "" {
				d, err := decimal.NewFromString(rate)
				if err != nil {
					return fmt.Errorf("invalid --rate: %w", err)
				}
				input.DefaultRate = &d
			}

			client, err := a.API.CreateClient(cmd.Context(), input)
			if err != nil {
				return a.errors.Handle("create client", err)
			}

			fmt.Fprintf(a.Out, "Created client %s (%s)\n", client.Name, client.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "EUR", "Three-letter ISO currency code")
	cmd.Flags().StringVar(&address, "address", "", "Billing address")
	cmd.Flags().StringVar(&color, "color", "", "Display color")
	cmd.Flags().StringVar(&rate, "rate", "", "Default hourly rate")
	cmd.Flags().BoolVar(&billable, "billable", true, "Entries default to billable")
	cmd.Flags().Float64Var(&budgetLimit, "budget", 0, "Hour budget, 0 = unlimited")
	return cmd
}

func (a *App) clientListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := a.API.ListClients(cmd.Context())
			if err != nil {
				return a.errors.Handle("list clients", err)
			}

			if len(clients) == 0 {
				fmt.Fprintln(a.Out, "No clients")
				return nil
			}

			table := newTable(a.Out, []string{"ID", "Name", "Currency", "Rate", "Budget"})
			for _, client := range clients {
				budget := "-"
				if client.BudgetLimit > 0 {
					budget = formatHours(client.BudgetLimit)
				}
				table.Append([]string{
					client.ID, client.Name, client.Currency,
					formatOptionalRate(client.DefaultRate), budget,
				})
			}
			table.Render()
			return nil
		},
	}
}

func (a *App) clientShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <client-id>",
		Short: "Show a client with retainer and budget state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := a.API.GetClientOverview(cmd.Context(), args[0])
			if err != nil {
				return a.errors.Handle("show client", err)
			}

			client := overview.Client
			fmt.Fprintf(a.Out, "%s (%s)\n", client.Name, client.ID)
			fmt.Fprintf(a.Out, "Currency: %s  Rate: %s  Billable by default: %t\n",
				client.Currency, formatOptionalRate(client.DefaultRate), client.DefaultBillable)
			if client.Address != "" {
				fmt.Fprintf(a.Out, "Address: %s\n", client.Address)
			}

			fmt.Fprintf(a.Out, "Tracked: %s", formatHours(overview.HoursTracked))
			if client.BudgetLimit > 0 {
				fmt.Fprintf(a.Out, " of %s budget (%s)", formatHours(client.BudgetLimit), overview.BudgetStatus)
			}
			fmt.Fprintln(a.Out)

			if overview.ActiveBlock == nil {
				fmt.Fprintln(a.Out, "No active invoice block")
			} else {
				b := overview.ActiveBlock
				fmt.Fprintf(a.Out, "Active block: %s of %s (%s)",
					formatHours(b.HoursTracked),
					formatHours(b.Block.HoursAvailable()),
					formatPercent(b.ProgressPercent))
				if overage := b.Block.Overage(b.HoursTracked); overage > 0 {
					fmt.Fprintf(a.Out, ", %s over", formatHours(overage))
				}
				fmt.Fprintln(a.Out)
			}
			return nil
		},
	}
}

func (a *App) clientUpdateCommand() *cobra.Command {
	var (
		name        string
		currency    string
		address     string
		color       string
		rate        string
		clearRate   bool
		budgetLimit float64
	)

	cmd := &cobra.Command{
		Use:   "update <client-id>",
		Short: "Update client fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := api.ClientUpdate{ClearRate: clearRate}
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("currency") {
				update.Currency = &currency
			}
			if cmd.Flags().Changed("address") {
				update.Address = &address
			}
			if cmd.Flags().Changed("color") {
				update.Color = &color
			}
			if cmd.Flags().Changed("budget") {
				update.BudgetLimit = &budgetLimit
			}
			if cmd.Flags().Changed("rate") {
				d, err := decimal.NewFromString(rate)
				if err != nil {
					return fmt.Errorf("invalid --rate: %w", err)
				}
				update.DefaultRate = &d
			}

			client, err := a.API.UpdateClient(cmd.Context(), args[0], update)
			if err != nil {
				return a.errors.Handle("update client", err)
			}

			fmt.Fprintf(a.Out, "Updated client %s\n", client.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&currency, "currency", "", "New currency")
	cmd.Flags().StringVar(&address, "address", "", "New address")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	cmd.Flags().StringVar(&rate, "rate", "", "New default hourly rate")
	cmd.Flags().BoolVar(&clearRate, "clear-rate", false, "Remove the default rate")
	cmd.Flags().Float64Var(&budgetLimit, "budget", 0, "New hour budget")
	return cmd
}

func (a *App) clientDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <client-id>",
		Short: "Delete a client and its projects and blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.API.DeleteClient(cmd.Context(), args[0]); err != nil {
				return a.errors.Handle("delete client", err)
			}
			fmt.Fprintln(a.Out, "Deleted")
			return nil
		},
	}
}
