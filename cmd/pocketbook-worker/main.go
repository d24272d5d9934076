package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pocketbook/internal/cache"
	"pocketbook/internal/config"
	"pocketbook/internal/core"
	"pocketbook/internal/events"
	"pocketbook/internal/export"
	applog "pocketbook/internal/log"
	"pocketbook/internal/storage"
	"pocketbook/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: "worker",
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if !cfg.ExportEnabled() {
		logger.Error("Export is not configured - set GOOGLE_SPREADSHEET_ID and credentials")
		os.Exit(1)
	}
	if !cfg.EventsEnabled() {
		logger.Error("AMQP is not configured - set AMQP_URL")
		os.Exit(1)
	}

	db, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheet, err := export.NewWriter(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, export.Credentials{
		JSON: cfg.GoogleServiceAccountJSON,
		File: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		logger.Error("Failed to initialize sheet writer", "error", err)
		os.Exit(1)
	}
	logger.Info("Sheet writer initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)

	client, err := events.NewClientWithRetry(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	// The worker only reads, so small short-lived caches are plenty.
	expenseStore := storage.NewExpenseStore(db,
		cache.NewLRUCache[core.MonthlySummary](8, time.Minute),
		cache.NewLRUCache[[]core.CategoryBreakdown](8, time.Minute),
		cfg.DefaultCurrency,
	)

	exportWorker := worker.NewExportWorker(expenseStore, sheet)

	logger.Info("Starting export worker", "queue", cfg.AMQPQueue)
	if err := exportWorker.Run(ctx, client); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}
