package main

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"spyfall/internal/app"
	"spyfall/internal/bot"
	"spyfall/internal/config"
	httpTransport "spyfall/internal/transport/http"
)

//go:embed web/*
var webFS embed.FS

func main() {
	// Load .env if present, real environment wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up logger
	var logger *slog.Logger
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	}

	slog.SetDefault(logger)

	logger.Info("starting spyfall game server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Set up the bot decider. Without an API key bots can still be added
	// to games but never act.
	var decider bot.Decider
	if cfg.Bot.APIKey != "" {
		client, err := bot.NewClient(cfg.Bot.APIKey, logger, bot.WithModel(cfg.Bot.Model))
		if err != nil {
			logger.Error("failed to create bot client", "error", err)
			os.Exit(1)
		}
		decider = client
	} else {
		logger.Warn("CLAUDE_API_KEY not set, bot players will be inert")
	}

	// Create game hub
	hub := app.NewGameHub(cfg.Game, cfg.Bot, decider, logger)
	defer hub.Close()

	// Create HTTP server
	server := httpTransport.NewServer(cfg, hub, logger, webFS)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
