package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Edit the groups of an estimate",
	}

	cmd.AddCommand(
		newGroupAddCmd(app),
		newGroupRemoveCmd(app),
		newGroupRenameCmd(app),
	)

	return cmd
}

func newGroupAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add ESTIMATE [NAME]",
		Short: "Append a group to an estimate",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.loadEstimates(ctx)

			e, err := resolveEstimate(app, args[0])
			if err != nil {
				return err
			}
			var name string
			if len(args) == 2 {
				name = args[1]
			}

			g, _ := app.Estimates.AddGroup(ctx, e.ID, name)
			saved, err := app.commit(ctx, e.ID)
			if err != nil {
				return err
			}
			if sg, ok := savedGroup(saved, g); ok {
				g = sg
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added group %s to %s [%s]\n", g.Name, e.Name, g.ID)
			return nil
		},
	}
}

func newGroupRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ESTIMATE GROUP",
		Short: "Remove a group and its rows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.loadEstimates(ctx)

			e, err := resolveEstimate(app, args[0])
			if err != nil {
				return err
			}
			g, err := resolveGroup(e, args[1])
			if err != nil {
				return err
			}

			app.Estimates.RemoveGroup(ctx, e.ID, g.ID)
			if _, err := app.commit(ctx, e.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed group %s (%d rows)\n", g.Name, len(g.Rows))
			return nil
		},
	}
}

func newGroupRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ESTIMATE GROUP NAME",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.loadEstimates(ctx)

			e, err := resolveEstimate(app, args[0])
			if err != nil {
				return err
			}
			g, err := resolveGroup(e, args[1])
			if err != nil {
				return err
			}

			app.Estimates.UpdateGroupName(ctx, e.ID, g.ID, args[2])
			if _, err := app.commit(ctx, e.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed group %q to %q\n", g.Name, args[2])
			return nil
		},
	}
}
