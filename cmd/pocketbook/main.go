package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"pocketbook/internal/cache"
	"pocketbook/internal/config"
	"pocketbook/internal/core"
	"pocketbook/internal/events"
	apphttp "pocketbook/internal/http"
	applog "pocketbook/internal/log"
	"pocketbook/internal/services"
	"pocketbook/internal/storage"
)

func main() {
	// Load .env for local development; in containers the variables are set
	// directly and the file is absent.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: "api",
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
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

	if err := storage.SeedDefaultCategories(ctx, db); err != nil {
		logger.Error("Failed to seed default categories", "error", err)
		os.Exit(1)
	}

	summaries := cache.NewLRUCache[core.MonthlySummary](cfg.CacheMaxEntries, cfg.CacheTTL)
	breakdowns := cache.NewLRUCache[[]core.CategoryBreakdown](cfg.CacheMaxEntries, cfg.CacheTTL)

	cacheManager := cache.NewManager()
	cacheManager.Register(summaries)
	cacheManager.Register(breakdowns)
	cacheManager.StartCleanup(cfg.CacheTTL)
	defer cacheManager.Stop()

	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - expense events will not be published")
	}

	expenseStore := storage.NewExpenseStore(db, summaries, breakdowns, cfg.DefaultCurrency)
	categoryStore := storage.NewCategoryStore(db)
	expenseService := services.NewExpenseService(expenseStore, publisher)

	srv := apphttp.NewServer(":"+cfg.Port, expenseService, categoryStore, logger.WithComponent("http"))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting pocketbook server", "port", cfg.Port, "db", cfg.SQLiteDBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
