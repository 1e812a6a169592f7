// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/cmd"
	"github.com/gfragi/book-seat-pay/internal/data/repository"
	"github.com/gfragi/book-seat-pay/internal/wire"
	"github.com/gfragi/book-seat-pay/pkg/database"
	"github.com/gfragi/book-seat-pay/pkg/utils"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.Int("capacity", config.Event.SeatCapacity),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pick the booking store
	var store repository.BookingStore
	switch config.Store.Driver {
	case "csv":
		store = repository.NewCSVStore(config.Store.PaymentsPath(), config.Store.BackupPath())
	case "postgres":
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		pgStore := repository.NewPostgresStore(db)
		if err := pgStore.Init(ctx); err != nil {
			logger.Fatal("Failed to prepare database schema", zap.Error(err))
		}
		store = pgStore

		logger.Info("Database connected successfully")
	default:
		logger.Fatal("Unknown store driver", zap.String("driver", config.Store.Driver))
	}

	interest := repository.NewCSVInterestRepository(config.Store.InterestPath())

	// Wire all dependencies
	app, err := wire.Wiring(store, interest, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	// Start server, block until shutdown
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
