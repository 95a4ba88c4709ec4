package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API credential that switches estimates to remote mode",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show whether a credential is present",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, formatter.ModeBadge(app.Auth.Present()))
				switch {
				case app.Auth.Overridden():
					fmt.Fprintln(out, formatter.Dim("token from ESTIMO_TOKEN"))
				case app.Auth.Present():
					fmt.Fprintln(out, formatter.Dim("token file "+app.Auth.Path()))
				default:
					fmt.Fprintln(out, formatter.Dim("no token; estimates are kept locally"))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "set TOKEN",
			Short: "Store an API token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Auth.Set(strings.TrimSpace(args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", app.Auth.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored API token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Auth.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Token cleared.")
				return nil
			},
		},
	)

	return cmd
}
