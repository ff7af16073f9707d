package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/whatnot-go/internal/api"
	"github.com/dom/whatnot-go/internal/config"
	"github.com/dom/whatnot-go/internal/logging"
	"github.com/dom/whatnot-go/internal/session"
	"github.com/dom/whatnot-go/internal/whatnot"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	logger := logging.New(cfg.Env, cfg.LogLevel, os.Stdout)
	slog.SetDefault(logger)

	// Initialize session store
	store, err := session.New(cfg.Session.StoreConfig(), session.Dependencies{})
	if err != nil {
		logger.Error("failed to open session store", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize platform client
	client := whatnot.NewFromConfig(cfg, store, logger)
	defer client.Close()

	if err := client.LoadSession(context.Background()); err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			logger.Warn("ignoring stored session", slog.Any("error", err))
		}
		logger.Info("serving without a platform session; /api/v1/me routes will return 401")
	}

	// Initialize router
	router := api.NewRouter(client, cfg, logger)

	// Create server. Watch connections reset their own deadlines after the
	// upgrade.
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Gateway.Port,
		Handler:      router,
		ReadTimeout:  cfg.Gateway.ReadTimeout,
		WriteTimeout: cfg.Gateway.WriteTimeout,
		IdleTimeout:  cfg.Gateway.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", slog.String("port", cfg.Gateway.Port), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("error", err))
	}

	logger.Info("server stopped")
}
