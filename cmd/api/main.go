// Package main is the entry point for the ledger API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/cache"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	slog.Info("starting ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"balance_policy", cfg.Ledger.BalancePolicy,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(model.All()...); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("database migrations completed successfully")
	}

	// Redis is optional: without it locks only serialize work inside this process.
	opts := dependency.Options{}
	if cfg.Redis.URL != "" {
		redisConn, err := cache.NewRedisConnection(&cfg.Redis)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisConn.Close(); err != nil {
				slog.Error("failed to close redis connection", "error", err)
			}
		}()
		opts.Redis = redisConn.Client()
		opts.CacheHealthChecker = redisConn.HealthCheck
	} else {
		slog.Warn("REDIS_URL not set, using in-process locks")
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), opts)
	if err != nil {
		slog.Error("failed to wire dependencies", "error", err)
		os.Exit(1)
	}
	if err := injector.SeedSystemCategories(context.Background()); err != nil {
		slog.Error("failed to seed system categories", "error", err)
		os.Exit(1)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return
	}

	slog.Info("server exited properly")
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
