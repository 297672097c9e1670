// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default endpoint of the homework review-status API.
const defaultAPIURL = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const (
	defaultRetryPeriod  = 600 * time.Second
	defaultLookbackDays = 30
)

// Config holds the application configuration.
type Config struct {
	APIToken         string
	TelegramBotToken string
	TelegramChatID   int64
	APIURL           string
	RetryPeriod      time.Duration
	LookbackDays     int
	LogLevel         string
}

// MissingVarsError reports every required environment variable that is unset.
type MissingVarsError struct {
	Names []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf("missing environment variables: %s", strings.Join(e.Names, ", "))
}

// Load reads configuration from environment variables. Malformed optional
// values are load errors; missing secrets are left for Validate, which
// enumerates all of them at once.
func Load() (*Config, error) {
	cfg := &Config{
		APIToken:         os.Getenv("REVIEW_API_TOKEN"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		APIURL:           defaultAPIURL,
		RetryPeriod:      defaultRetryPeriod,
		LookbackDays:     defaultLookbackDays,
		LogLevel:         "info",
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", raw, err)
		}
		cfg.TelegramChatID = chatID
	}

	if url := os.Getenv("REVIEW_API_URL"); url != "" {
		cfg.APIURL = url
	}

	if raw := os.Getenv("RETRY_PERIOD_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs < 1 {
			return nil, fmt.Errorf("RETRY_PERIOD_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.RetryPeriod = time.Duration(secs) * time.Second
	}

	if raw := os.Getenv("LOOKBACK_DAYS"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			return nil, fmt.Errorf("LOOKBACK_DAYS must be a non-negative integer, got %q", raw)
		}
		cfg.LookbackDays = days
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

// Validate checks that every required secret is present. All missing names
// are collected into a single MissingVarsError rather than stopping at the
// first, so the operator sees the full list in one run.
func (c *Config) Validate() error {
	var missing []string
	if c.APIToken == "" {
		missing = append(missing, "REVIEW_API_TOKEN")
	}
	if c.TelegramBotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.TelegramChatID == 0 {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return &MissingVarsError{Names: missing}
	}
	return nil
}

// FromDate returns the Unix timestamp of the start of the poll window:
// now minus the lookback period. It is computed once at startup and used
// unchanged for every cycle.
func (c *Config) FromDate(now time.Time) int64 {
	return now.Add(-time.Duration(c.LookbackDays) * 24 * time.Hour).Unix()
}
