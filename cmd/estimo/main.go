package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/estimo/internal/auth"
	"github.com/alexanderramin/estimo/internal/cli"
	"github.com/alexanderramin/estimo/internal/config"
	"github.com/alexanderramin/estimo/internal/db"
	"github.com/alexanderramin/estimo/internal/repository"
	"github.com/alexanderramin/estimo/internal/store"
	"github.com/alexanderramin/estimo/internal/transport"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	credentials := auth.NewFileStore(cfg.TokenFile, cfg.Token)
	client := transport.NewClient(
		transport.Config{BaseURL: cfg.APIBase, Timeout: cfg.HTTPTimeout},
		credentials,
		transport.NewLogObserver(logger),
	)
	defer client.CloseIdleConnections()

	observer := store.WithObserver(store.NewLogObserver(logger))
	snapshots := repository.NewSQLiteSnapshotRepo(database)

	app := &cli.App{
		Estimates: store.NewEstimateStore(client, credentials, snapshots, observer),
		Templates: store.NewTemplateStore(client, observer),
		Auth:      credentials,
		Snapshots: snapshots,
	}

	// Prompts only make sense on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
