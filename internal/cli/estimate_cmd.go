package cli

import (
	"fmt"

	"github.com/alexanderramin/estimo/internal/cli/formatter"
	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/alexanderramin/estimo/internal/report"
	"github.com/spf13/cobra"
)

func newEstimateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "estimate",
		Aliases: []string{"est"},
		Short:   "Manage estimates",
	}

	cmd.AddCommand(
		newEstimateListCmd(app),
		newEstimateCreateCmd(app),
		newEstimateShowCmd(app),
		newEstimateRenameCmd(app),
		newEstimateDeleteCmd(app),
		newEstimateSaveCmd(app),
		newEstimateExportCmd(app),
	)

	return cmd
}

func newEstimateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List estimates, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.loadEstimates(cmd.Context())
			out := cmd.OutOrStdout()

			estimates := app.Estimates.List()
			if len(estimates) == 0 {
				fmt.Fprintf(out, "No estimates found. %s\n", formatter.ModeBadge(app.Estimates.Remote()))
				return nil
			}

			fmt.Fprintln(out, formatter.FormatEstimateList(estimates, app.now()))
			fmt.Fprintln(out, formatter.ModeBadge(app.Estimates.Remote()))
			return nil
		},
	}
}

func newEstimateCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.loadEstimates(ctx)

			e, err := app.Estimates.CreateEstimate(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created estimate %s [%s]\n", e.Name, e.ID)
			return nil
		},
	}
}

func newEstimateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show an estimate with group and grand totals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.loadEstimates(cmd.Context())

			e, err := pickEstimate(app, args)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEstimate(e))
			return nil
		},
	}
}

func newEstimateRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename an estimate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.loadEstimates(ctx)

			e, err := resolveEstimate(app, args[0])
			if err != nil {
				return err
			}
			app.Estimates.UpdateEstimateName(ctx, e.ID, args[1])
			if _, err := app.commit(ctx, e.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed estimate %q to %q\n", e.Name, args[1])
			return nil
		},
	}
}

func newEstimateDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.loadEstimates(ctx)

			e, err := resolveEstimate(app, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirm(fmt.Sprintf("estimate %q", e.Name), yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			app.Estimates.DeleteEstimate(ctx, e.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted estimate %s [%s]\n", e.Name, e.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newEstimateSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save ID",
		Short: "Write an estimate to the estimates API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.loadEstimates(ctx)

			e, err := resolveEstimate(app, args[0])
			if err != nil {
				return err
			}
			saved, err := app.Estimates.SaveEstimateToAPI(ctx, e.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved estimate %s [%s]\n", saved.Name, saved.ID)
			return nil
		},
	}
}

func newEstimateExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export an estimate as JSON or a PDF report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.loadEstimates(cmd.Context())

			e, err := resolveEstimate(app, args[0])
			if err != nil {
				return err
			}

			f := report.FormatJSON
			switch {
			case cmd.Flags().Changed("format"):
				if f, err = report.ParseFormat(format); err != nil {
					return err
				}
			case output != "":
				f = report.FormatForPath(output)
			}

			if output == "" {
				return report.Write(cmd.OutOrStdout(), f, e)
			}
			if err := report.WriteFile(output, f, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", e.Name, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

// pickEstimate resolves the ID argument, or asks the user to choose when
// none was given in an interactive session.
func pickEstimate(app *App, args []string) (domain.Estimate, error) {
	if len(args) == 1 {
		return resolveEstimate(app, args[0])
	}
	if !app.interactive() {
		return domain.Estimate{}, fmt.Errorf("estimate ID is required")
	}
	list := app.Estimates.List()
	if len(list) == 0 {
		return domain.Estimate{}, fmt.Errorf("no estimates to show")
	}
	id, err := huhSelectEstimate(list)
	if err != nil {
		return domain.Estimate{}, err
	}
	return resolveEstimate(app, id.String())
}
