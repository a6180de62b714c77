package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
	"trade-journal-go/internal/feed"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"
	"trade-journal-go/internal/server"
	"trade-journal-go/internal/store"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		panic(fmt.Sprintf("could not load config: %v", err))
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.")

	// Trade store and reconciliation layer
	tradeStore := store.NewStore(db, log)
	tradeJournal := journal.NewJournal(tradeStore, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := tradeJournal.Load(ctx); err != nil {
		log.Fatal("Failed to load trade journal", zap.Error(err))
	}

	// Feed push events from the store into the journal.
	events, unsubscribe := tradeStore.Subscribe()
	defer unsubscribe()
	go tradeJournal.Consume(ctx, events)

	// Quote feed for the indicator engine
	feedClient := feed.NewRestClient(&cfg.Feed, log)

	// HTTP API
	apiServer := server.NewServer(&cfg, tradeJournal, feedClient, log)
	apiServer.Start()

	// Wait for shutdown signal
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
	<-sigchan
	log.Info("Shutdown signal received, gracefully shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server cleanly", zap.Error(err))
	}
	cancel()

	log.Info("Server has been shut down.")
}
