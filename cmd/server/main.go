package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/anonto42/dura-blog/backend/internal/router"
	"github.com/anonto42/dura-blog/backend/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.Env)
	slog.SetDefault(logger)

	// Initialize database connection and schema
	db, err := config.InitDB(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.CloseDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postRepo, err := router.NewPostRepository(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize post store: %w", err)
	}

	e, err := router.New(logger)
	if err != nil {
		return err
	}
	router.SetupMiddleware(e, logger, cfg.AllowedOrigins)
	router.SetupRoutes(e, postRepo, logger)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "port", cfg.Port, "store", cfg.StoreDriver, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	logger.Info("HTTP server stopped.")
	return nil
}
