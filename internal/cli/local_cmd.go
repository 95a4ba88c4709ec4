package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/estimo/internal/cli/formatter"
	"github.com/alexanderramin/estimo/internal/store"
	"github.com/spf13/cobra"
)

var errNoLocalData = errors.New("no local database configured")

func newLocalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Inspect or reset the local snapshot database",
	}

	cmd.AddCommand(
		newLocalStatusCmd(app),
		newLocalClearCmd(app),
	)

	return cmd
}

func newLocalStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List stored snapshots and when they were written",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Snapshots == nil {
				return errNoLocalData
			}
			snapshots, err := app.Snapshots.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(snapshots) == 0 {
				fmt.Fprintln(out, "No local data.")
				return nil
			}

			rows := make([][]string, 0, len(snapshots))
			for _, s := range snapshots {
				rows = append(rows, []string{
					s.Key,
					strconv.Itoa(len(s.Value)),
					formatter.RelativeDateFrom(s.UpdatedAt, app.now()),
				})
			}
			table := formatter.Table{
				Headers: []string{"KEY", "BYTES", "WRITTEN"},
				Rows:    rows,
				Right:   map[int]bool{1: true},
			}
			fmt.Fprintln(out, formatter.RenderBox("Local data", table.Render()))
			return nil
		},
	}
}

func newLocalClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every locally stored estimate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Snapshots == nil {
				return errNoLocalData
			}

			ok, err := app.confirm("all local estimates", yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := app.Snapshots.Delete(cmd.Context(), store.SnapshotKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Local estimates cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
