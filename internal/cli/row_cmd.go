package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "row",
		Short: "Edit the rows of an estimate group",
	}

	cmd.AddCommand(
		newRowAddCmd(app),
		newRowRemoveCmd(app),
		newRowUpdateCmd(app),
	)

	return cmd
}

func newRowAddCmd(app *App) *cobra.Command {
	var flags rowFlags

	cmd := &cobra.Command{
		Use:   "add ESTIMATE GROUP",
		Short: "Append a row to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.loadEstimates(ctx)

			updates, err := flags.updates(cmd)
			if err != nil {
				return err
			}
			e, err := resolveEstimate(app, args[0])
			if err != nil {
				return err
			}
			g, err := resolveGroup(e, args[1])
			if err != nil {
				return err
			}

			r, _ := app.Estimates.AddRow(ctx, e.ID, g.ID, updates...)
			saved, err := app.commit(ctx, e.ID)
			if err != nil {
				return err
			}
			if sg, ok := savedGroup(saved, g); ok {
				if sr, ok := savedRow(sg, r); ok {
					r = sr
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added row %q to %s [%s]\n", r.Feature, g.Name, r.ID)
			return nil
		},
	}

	flags.bind(cmd)

	return cmd
}

func newRowRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ESTIMATE GROUP ROW",
		Short: "Remove a row",
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
			r, err := resolveRow(g, args[2])
			if err != nil {
				return err
			}

			app.Estimates.RemoveRow(ctx, e.ID, g.ID, r.ID)
			if _, err := app.commit(ctx, e.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed row %q from %s\n", r.Feature, g.Name)
			return nil
		},
	}
}

func newRowUpdateCmd(app *App) *cobra.Command {
	var flags rowFlags

	cmd := &cobra.Command{
		Use:   "update ESTIMATE GROUP ROW",
		Short: "Change row fields; fields not given are left alone",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.loadEstimates(ctx)

			updates, err := flags.updates(cmd)
			if err != nil {
				return err
			}
			if len(updates) == 0 {
				return fmt.Errorf("nothing to update (use --feature, --assumptions, --design, --backend, --frontend or --set)")
			}
			e, err := resolveEstimate(app, args[0])
			if err != nil {
				return err
			}
			g, err := resolveGroup(e, args[1])
			if err != nil {
				return err
			}
			r, err := resolveRow(g, args[2])
			if err != nil {
				return err
			}

			app.Estimates.UpdateRow(ctx, e.ID, g.ID, r.ID, updates...)
			if _, err := app.commit(ctx, e.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated row %q (%d changes)\n", r.Feature, len(updates))
			return nil
		},
	}

	flags.bind(cmd)

	return cmd
}
