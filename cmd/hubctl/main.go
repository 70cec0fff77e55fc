package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"basegraph.app/hubsync/common/id"
	"basegraph.app/hubsync/common/logger"
	"basegraph.app/hubsync/core/config"
	"basegraph.app/hubsync/core/db"
	"basegraph.app/hubsync/internal/schema"
	"basegraph.app/hubsync/internal/service"
	"basegraph.app/hubsync/internal/store"
	"basegraph.app/hubsync/internal/tracker"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "hubctl",
		Short:         "Operate the hubsync mirror",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(backfillCmd())
	rootCmd.AddCommand(visibilityCmd())
	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(migrateCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// runtime is what database-backed commands share.
type runtime struct {
	db       *db.DB
	services *service.Services
}

func (r *runtime) Close() {
	r.db.Close()
}

func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Setup(cfg)

	if err := id.Init(id.NodeCLI); err != nil {
		return nil, fmt.Errorf("initializing id generator: %w", err)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	validator, err := schema.New()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("compiling schemas: %w", err)
	}

	services := service.NewServices(service.Deps{
		Stores:    store.NewStores(database.Queries()),
		TxRunner:  service.NewTxRunner(database),
		Envelopes: validator,
		Tracker:   tracker.NewClient(cfg.Tracker),
	}, cfg)

	return &runtime{db: database, services: services}, nil
}
