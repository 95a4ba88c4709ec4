package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/estimo/internal/cli/formatter"
	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/alexanderramin/estimo/internal/layout"
	"github.com/alexanderramin/estimo/internal/wire"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Manage reusable estimate templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateCreateCmd(app),
		newTemplateRenameCmd(app),
		newTemplateDeleteCmd(app),
		newTemplateApplyCmd(app),
		newTemplateGroupCmd(app),
		newTemplateRowCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Templates.FetchTemplates(cmd.Context())

			templates := app.Templates.List()
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateList(templates, app.now()))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	var asYAML, asJSON bool

	cmd := &cobra.Command{
		Use:   "show TEMPLATE",
		Short: "Show template content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTemplate(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(wire.FromTemplate(t))
			}
			if asYAML {
				data, err := layout.Marshal(layout.FromGroups(t.Name, t.Data))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(t))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the template as a layout file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the template in the API shape")
	cmd.MarkFlagsMutuallyExclusive("yaml", "json")

	return cmd
}

func newTemplateCreateCmd(app *App) *cobra.Command {
	var fromFile, fromEstimate string

	cmd := &cobra.Command{
		Use:   "create [NAME]",
		Short: "Create a template, empty or from a layout file or an estimate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if fromFile != "" && fromEstimate != "" {
				return fmt.Errorf("--from and --from-estimate are mutually exclusive")
			}

			var name string
			if len(args) == 1 {
				name = args[0]
			}

			var groups []domain.Group
			switch {
			case fromFile != "":
				l, err := layout.Load(fromFile)
				if err != nil {
					return err
				}
				if errs := layout.Validate(l); len(errs) > 0 {
					return fmt.Errorf("invalid layout %s: %w", fromFile, errors.Join(errs...))
				}
				if name == "" {
					name = l.Name
				}
				groups = layout.ToGroups(l)
			case fromEstimate != "":
				app.loadEstimates(ctx)
				e, err := resolveEstimate(app, fromEstimate)
				if err != nil {
					return err
				}
				if name == "" {
					name = e.Name
				}
				groups = e.Groups
			}

			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("template name is required")
			}

			t, err := app.Templates.CreateTemplate(ctx, name, groups)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created template %s [%s] with %d groups\n", t.Name, t.ID, len(t.Data))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFile, "from", "", "Layout YAML file to import")
	cmd.Flags().StringVar(&fromEstimate, "from-estimate", "", "Copy the groups of this estimate")

	return cmd
}

func newTemplateRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename TEMPLATE NAME",
		Short: "Rename a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTemplate(ctx, app, args[0])
			if err != nil {
				return err
			}

			if _, err := app.Templates.UpdateTemplate(ctx, t.ID, args[1], t.Data); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed template %q to %q\n", t.Name, args[1])
			return nil
		},
	}
}

func newTemplateDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete TEMPLATE",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTemplate(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirm(fmt.Sprintf("template %q", t.Name), yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := app.Templates.DeleteTemplate(ctx, t.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s [%s]\n", t.Name, t.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newTemplateApplyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "apply TEMPLATE NAME",
		Short: "Create a new estimate from a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTemplate(ctx, app, args[0])
			if err != nil {
				return err
			}

			e, err := app.Templates.ApplyTemplate(ctx, t.ID, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created estimate %s [%s] from template %s (%d rows)\n", e.Name, e.ID, t.Name, e.RowCount())
			return nil
		},
	}
}

// resolveTemplate refreshes the template list and finds a template by ID, or
// by case-insensitive name when exactly one template carries it.
func resolveTemplate(ctx context.Context, app *App, input string) (domain.Template, error) {
	input = strings.TrimPrefix(strings.TrimSpace(input), "#")
	if input == "" {
		return domain.Template{}, fmt.Errorf("template ID is required")
	}

	id := domain.ParseID(input)
	if id.IsPersisted() {
		return app.Templates.FetchTemplate(ctx, id)
	}

	app.Templates.FetchTemplates(ctx)
	var matches []domain.Template
	for _, t := range app.Templates.Templates() {
		if strings.EqualFold(t.Name, input) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Template{}, fmt.Errorf("template not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return domain.Template{}, fmt.Errorf("template name %q is ambiguous (%d matches)", input, len(matches))
	}
}
