package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"review_bot/internal/bot"
	"review_bot/internal/config"
	"review_bot/internal/fetcher"
	"review_bot/internal/poller"
)

func main() {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("missing required configuration", "error", err)
		os.Exit(1)
	}

	b, err := bot.New(cfg.TelegramBotToken, cfg.TelegramChatID, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	client := fetcher.New(http.DefaultClient, cfg.APIURL, cfg.APIToken)
	p := poller.New(client, b, cfg.FromDate(time.Now()), cfg.RetryPeriod, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting poller", "interval", cfg.RetryPeriod, "lookback_days", cfg.LookbackDays)

	p.Run(ctx)

	log.Info("poller stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
