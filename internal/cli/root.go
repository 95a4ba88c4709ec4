package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/alexanderramin/estimo/internal/repository"
	"github.com/alexanderramin/estimo/internal/store"
	"github.com/spf13/cobra"
)

// Credentials is the token storage behind the auth commands.
type Credentials interface {
	Present() bool
	Path() string
	Overridden() bool
	Set(token string) error
	Clear() error
}

// App holds the stores and collaborators used by CLI commands.
type App struct {
	Estimates *store.EstimateStore
	Templates *store.TemplateStore
	Auth      Credentials
	// Snapshots is the local-mode database. Nil disables the local commands.
	Snapshots repository.SnapshotRepo

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Confirm overrides the delete confirmation prompt.
	Confirm func(title string) (bool, error)
	// Now is the reference time for relative dates. Nil means time.Now.
	Now func() time.Time
}

// NewRootCmd creates the top-level "estimo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "estimo",
		Short:         "Three-point project estimates, kept locally or on the estimates API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEstimateCmd(app),
		newGroupCmd(app),
		newRowCmd(app),
		newTemplateCmd(app),
		newAuthCmd(app),
		newLocalCmd(app),
	)

	return root
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

// loadEstimates brings the estimate store up from the snapshot or the
// backend. Repeated calls are no-ops.
func (app *App) loadEstimates(ctx context.Context) {
	app.Estimates.Init(ctx)
}

// commit pushes an edited estimate to the backend in remote mode. Local
// mode has already written its snapshot.
func (app *App) commit(ctx context.Context, id domain.ID) (domain.Estimate, error) {
	if !app.Estimates.Remote() {
		e, _ := app.Estimates.Get(id)
		return e, nil
	}
	return app.Estimates.SaveEstimateToAPI(ctx, id)
}
