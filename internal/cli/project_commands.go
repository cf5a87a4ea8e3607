package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"retainer-tracker/internal/api"
)

func (a *App) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(a.projectAddCommand())
	cmd.AddCommand(a.projectListCommand())
	cmd.AddCommand(a.projectShowCommand())
	cmd.AddCommand(a.projectUpdateCommand())
	cmd.AddCommand(a.projectArchiveCommand())
	cmd.AddCommand(a.projectDeleteCommand())
	cmd.AddCommand(a.projectTagCommand())
	return cmd
}

func (a *App) projectAddCommand() *cobra.Command {
	var (
		clientID    string
		color       string
		rate        string
		budgetLimit float64
		favorite    bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := api.ProjectInput{
				Name:        args[0],
				Color:       color,
				BudgetLimit: budgetLimit,
				IsFavorite:  favorite,
			}
			if clientID != "" {
				input.ClientID = &clientID
			}
			if rate != "" {
				d, err := decimal.NewFromString(rate)
				if err != nil {
					return fmt.Errorf("invalid --rate: %w", err)
				}
				input.HourlyRate = &d
			}

			project, err := a.API.CreateProject(cmd.Context(), input)
			if err != nil {
				return a.errors.Handle("create project", err)
			}

			fmt.Fprintf(a.Out, "Created project %s (%s)\n", project.Name, project.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&clientID, "client", "c", "", "Owning client ID")
	cmd.Flags().StringVar(&color, "color", "", "Display color")
	cmd.Flags().StringVar(&rate, "rate", "", "Hourly rate")
	cmd.Flags().Float64Var(&budgetLimit, "budget", 0, "Hour budget, 0 = unlimited")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Pin to the top of listings")
	return cmd
}

func (a *App) projectListCommand() *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, favorites first",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.API.ListProjects(cmd.Context(), includeArchived)
			if err != nil {
				return a.errors.Handle("list projects", err)
			}

			if len(projects) == 0 {
				fmt.Fprintln(a.Out, "No projects")
				return nil
			}

			table := newTable(a.Out, []string{"ID", "Name", "Client", "Rate", "Budget", "Flags"})
			for _, project := range projects {
				clientID := "-"
				if project.ClientID != nil {
					clientID = *project.ClientID
				}
				budget := "-"
				if project.BudgetLimit > 0 {
					budget = formatHours(project.BudgetLimit)
				}
				flags := ""
				if project.IsFavorite {
					flags += "*"
				}
				if project.IsArchived {
					flags += "archived"
				}
				table.Append([]string{
					project.ID, project.Name, clientID,
					formatOptionalRate(project.HourlyRate), budget, flags,
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived projects")
	return cmd
}

func (a *App) projectShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project with budget consumption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := a.API.GetProjectOverview(cmd.Context(), args[0])
			if err != nil {
				return a.errors.Handle("show project", err)
			}

			project := overview.Project
			fmt.Fprintf(a.Out, "%s (%s)\n", project.Name, project.ID)
			if project.ClientID != nil {
				fmt.Fprintf(a.Out, "Client: %s\n", *project.ClientID)
			}
			fmt.Fprintf(a.Out, "Rate: %s\n", formatOptionalRate(project.HourlyRate))

			fmt.Fprintf(a.Out, "Used: %s", formatHours(overview.HoursUsed))
			if project.BudgetLimit > 0 {
				fmt.Fprintf(a.Out, " of %s budget (%s)", formatHours(project.BudgetLimit), overview.BudgetStatus)
			}
			fmt.Fprintln(a.Out)
			return nil
		},
	}
}

func (a *App) projectUpdateCommand() *cobra.Command {
	var (
		name        string
		clientID    string
		clearClient bool
		color       string
		rate        string
		clearRate   bool
		budgetLimit float64
		favorite    bool
	)

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := api.ProjectUpdate{ClearClient: clearClient, ClearRate: clearRate}
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("client") {
				update.ClientID = &clientID
			}
			if cmd.Flags().Changed("color") {
				update.Color = &color
			}
			if cmd.Flags().Changed("budget") {
				update.BudgetLimit = &budgetLimit
			}
			if cmd.Flags().Changed("favorite") {
				update.IsFavorite = &favorite
			}
			if cmd.Flags().Changed("rate") {
				d, err := decimal.NewFromString(rate)
				if err != nil {
					return fmt.Errorf("invalid --rate: %w", err)
				}
				update.HourlyRate = &d
			}

			project, err := a.API.UpdateProject(cmd.Context(), args[0], update)
			if err != nil {
				return a.errors.Handle("update project", err)
			}

			fmt.Fprintf(a.Out, "Updated project %s\n", project.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&clientID, "client", "", "New owning client ID")
	cmd.Flags().BoolVar(&clearClient, "clear-client", false, "Detach from the client")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	cmd.Flags().StringVar(&rate, "rate", "", "New hourly rate")
	cmd.Flags().BoolVar(&clearRate, "clear-rate", false, "Remove the hourly rate")
	cmd.Flags().Float64Var(&budgetLimit, "budget", 0, "New hour budget")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Pin to the top of listings")
	return cmd
}

func (a *App) projectArchiveCommand() *cobra.Command {
	var restore bool

	cmd := &cobra.Command{
		Use:   "archive <project-id>",
		Short: "Archive a project, keeping its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := a.API.ArchiveProject(cmd.Context(), args[0], !restore)
			if err != nil {
				return a.errors.Handle("archive project", err)
			}

			if project.IsArchived {
				fmt.Fprintf(a.Out, "Archived %s\n", project.Name)
			} else {
				fmt.Fprintf(a.Out, "Restored %s\n", project.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&restore, "restore", false, "Restore instead of archive")
	return cmd
}

func (a *App) projectDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.API.DeleteProject(cmd.Context(), args[0]); err != nil {
				return a.errors.Handle("delete project", err)
			}
			fmt.Fprintln(a.Out, "Deleted")
			return nil
		},
	}
}

func (a *App) projectTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <project-id> [tag]...",
		Short: "Replace a project's tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := a.API.SetProjectTags(cmd.Context(), args[0], args[1:])
			if err != nil {
				return a.errors.Handle("tag project", err)
			}

			fmt.Fprintf(a.Out, "Tagged with %d tags\n", len(tags))
			return nil
		},
	}
}
