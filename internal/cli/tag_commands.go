package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) tagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(a.tagAddCommand())
	cmd.AddCommand(a.tagListCommand())
	cmd.AddCommand(a.tagRenameCommand())
	cmd.AddCommand(a.tagDeleteCommand())
	return cmd
}

func (a *App) tagAddCommand() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var colorPtr *string
			if color != "" {
				colorPtr = &color
			}

			tag, err := a.API.CreateTag(cmd.Context(), args[0], colorPtr)
			if err != nil {
				return a.errors.Handle("create tag", err)
			}

			fmt.Fprintf(a.Out, "Created tag %s (%s)\n", tag.Name, tag.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color")
	return cmd
}

func (a *App) tagListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := a.API.ListTags(cmd.Context())
			if err != nil {
				return a.errors.Handle("list tags", err)
			}

			if len(tags) == 0 {
				fmt.Fprintln(a.Out, "No tags")
				return nil
			}

			table := newTable(a.Out, []string{"ID", "Name", "System"})
			for _, tag := range tags {
				system := ""
				if tag.IsSystem {
					system = "yes"
				}
				table.Append([]string{tag.ID, tag.Name, system})
			}
			table.Render()
			return nil
		},
	}
}

func (a *App) tagRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <tag-id> <new-name>",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := a.API.RenameTag(cmd.Context(), args[0], args[1])
			if err != nil {
				return a.errors.Handle("rename tag", err)
			}

			fmt.Fprintf(a.Out, "Renamed to %s\n", tag.Name)
			return nil
		},
	}
}

func (a *App) tagDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tag-id>",
		Short: "Delete a tag and its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.API.DeleteTag(cmd.Context(), args[0]); err != nil {
				return a.errors.Handle("delete tag", err)
			}
			fmt.Fprintln(a.Out, "Deleted")
			return nil
		},
	}
}
