package cmd

import (
	"context"
	"fmt"
	"os"

	"art-booking/internal/data/entity"
	"art-booking/internal/data/repository"
	"art-booking/pkg/broker"
	"art-booking/pkg/database"
	"art-booking/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

var configPath string

// Execute runs the root command; without a subcommand it serves HTTP.
func Execute() {
	rootCmd := &cobra.Command{
		Use:     "art-booking",
		Short:   "ART transit and merchandise ordering service",
		Version: Version,
		RunE:    runServe,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".env", "path to the .env config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(tripsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtime is what every subcommand needs before it can touch the domain.
type runtime struct {
	config    *utils.Config
	logger    *zap.Logger
	store     database.DocumentStore
	repo      *repository.Repository
	publisher broker.Publisher
}

func bootstrap(ctx context.Context) (*runtime, error) {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v. Using production logger.\n", err)
		logger, _ = zap.NewProduction()
	}

	store, err := openStore(ctx, config, logger)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	publisher, err := broker.NewPublisher(ctx, config.Redis, logger)
	if err != nil {
		store.Close()
		logger.Sync()
		return nil, fmt.Errorf("failed to start notification publisher: %w", err)
	}

	return &runtime{
		config:    config,
		logger:    logger,
		store:     store,
		repo:      repository.NewRepository(store, logger),
		publisher: publisher,
	}, nil
}

func (rt *runtime) Close() {
	if err := rt.publisher.Close(); err != nil {
		rt.logger.Warn("Failed to close publisher", zap.Error(err))
	}
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("Failed to close store", zap.Error(err))
	}
	rt.logger.Sync()
}

func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (database.DocumentStore, error) {
	switch config.Store.Driver {
	case utils.StoreDriverFile:
		store, err := database.NewFileStore(config.Store.DataDir, entity.SchemaVersion, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store: %w", err)
		}
		logger.Info("Using file store", zap.String("dir", config.Store.DataDir))
		return store, nil

	case utils.StoreDriverPostgres:
		db, err := database.InitDB(config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store, err := database.NewPostgresStore(ctx, db, entity.SchemaVersion, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("Database connected successfully", zap.String("host", config.Database.Host))
		return store, nil

	case utils.StoreDriverMemory:
		logger.Warn("Using in-memory store, data is lost on exit")
		return database.NewMemoryStore(entity.SchemaVersion), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", config.Store.Driver)
	}
}
