package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/spf13/cobra"
)

func newTemplateGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Edit the groups of a template",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add TEMPLATE [NAME]",
			Short: "Append a group to a template",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				var name string
				if len(args) == 2 {
					name = args[1]
				}
				return editTemplate(cmd, app, args[0], func(t domain.Template) (string, error) {
					g, _ := app.Templates.AddGroupToTemplate(t.ID, name)
					return fmt.Sprintf("Added group %s to %s", g.Name, t.Name), nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove TEMPLATE POS",
			Short: "Remove a template group by position",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editTemplate(cmd, app, args[0], func(t domain.Template) (string, error) {
					g, err := templateGroupAt(t, args[1])
					if err != nil {
						return "", err
					}
					app.Templates.RemoveGroupFromTemplate(t.ID, g.ID)
					return fmt.Sprintf("Removed group %s from %s", g.Name, t.Name), nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename TEMPLATE POS NAME",
			Short: "Rename a template group",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editTemplate(cmd, app, args[0], func(t domain.Template) (string, error) {
					g, err := templateGroupAt(t, args[1])
					if err != nil {
						return "", err
					}
					app.Templates.UpdateTemplateGroupName(t.ID, g.ID, args[2])
					return fmt.Sprintf("Renamed group %q to %q", g.Name, args[2]), nil
				})
			},
		},
	)

	return cmd
}

func newTemplateRowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "row",
		Short: "Edit the rows of a template group",
	}

	var addFlags, updateFlags rowFlags

	add := &cobra.Command{
		Use:   "add TEMPLATE GROUP_POS",
		Short: "Append a row to a template group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := addFlags.updates(cmd)
			if err != nil {
				return err
			}
			return editTemplate(cmd, app, args[0], func(t domain.Template) (string, error) {
				g, err := templateGroupAt(t, args[1])
				if err != nil {
					return "", err
				}
				r, _ := app.Templates.AddRowToTemplateGroup(t.ID, g.ID, updates...)
				return fmt.Sprintf("Added row %q to %s", r.Feature, g.Name), nil
			})
		},
	}
	addFlags.bind(add)

	remove := &cobra.Command{
		Use:   "remove TEMPLATE GROUP_POS ROW_POS",
		Short: "Remove a template row by position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTemplate(cmd, app, args[0], func(t domain.Template) (string, error) {
				g, r, err := templateCell(t, args[1], args[2])
				if err != nil {
					return "", err
				}
				app.Templates.RemoveRowFromTemplateGroup(t.ID, g.ID, r.ID)
				return fmt.Sprintf("Removed row %q from %s", r.Feature, g.Name), nil
			})
		},
	}

	update := &cobra.Command{
		Use:   "update TEMPLATE GROUP_POS ROW_POS",
		Short: "Change template row fields",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := updateFlags.updates(cmd)
			if err != nil {
				return err
			}
			if len(updates) == 0 {
				return fmt.Errorf("nothing to update (use --feature, --assumptions, --design, --backend, --frontend or --set)")
			}
			return editTemplate(cmd, app, args[0], func(t domain.Template) (string, error) {
				g, r, err := templateCell(t, args[1], args[2])
				if err != nil {
					return "", err
				}
				for _, u := range updates {
					app.Templates.UpdateTemplateRow(t.ID, g.ID, r.ID, u)
				}
				return fmt.Sprintf("Updated row %q (%d changes)", r.Feature, len(updates)), nil
			})
		},
	}
	updateFlags.bind(update)

	cmd.AddCommand(add, remove, update)

	return cmd
}

// editTemplate fetches a template, lets stage apply editor mutations to the
// store's copy, then sends the staged content to the backend.
func editTemplate(cmd *cobra.Command, app *App, input string, stage func(domain.Template) (string, error)) error {
	ctx := cmd.Context()
	t, err := resolveTemplate(ctx, app, input)
	if err != nil {
		return err
	}

	msg, err := stage(t)
	if err != nil {
		return err
	}

	if err := pushTemplate(ctx, app, t.ID); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func pushTemplate(ctx context.Context, app *App, id domain.ID) error {
	staged, ok := app.Templates.Get(id)
	if !ok {
		return fmt.Errorf("template %s is no longer loaded", id)
	}
	_, err := app.Templates.UpdateTemplate(ctx, id, staged.Name, staged.Data)
	return err
}

func templateCell(t domain.Template, groupPos, rowPos string) (domain.Group, domain.Row, error) {
	g, err := templateGroupAt(t, groupPos)
	if err != nil {
		return domain.Group{}, domain.Row{}, err
	}
	r, err := templateRowAt(g, rowPos)
	if err != nil {
		return domain.Group{}, domain.Row{}, err
	}
	return g, r, nil
}
