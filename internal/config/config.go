package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds the server settings read from the environment.
type Config struct {
	// HTTP server
	Port            string
	ShutdownTimeout time.Duration

	// Database
	DBPath string

	// Logging
	LogLevel string

	// Ledger. DistinguishedFriendID names the friend reported as "me";
	// when that friend is deleted the dashboard totals become zero.
	DistinguishedFriendID int64

	// AMQP, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string

	// Jobs
	BalanceRefreshSchedule string
}

// Load reads the configuration from the environment. Variables found in
// envFiles (default ".env") are applied first without overriding values
// already set; missing files are ignored.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to load env file", "file", f, "error", err)
		}
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBPath:   getEnv("DB_PATH", "./data/splitmate.db"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DistinguishedFriendID: getEnvInt64("DISTINGUISHED_FRIEND_ID", 1),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "splitmate.events"),

		BalanceRefreshSchedule: getEnv("BALANCE_REFRESH_SCHEDULE", "@every 5m"),
	}
}

// Validate returns every configuration problem in a single error.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.DistinguishedFriendID < 0 {
		errs = append(errs, fmt.Sprintf("invalid distinguished friend id %d: must not be negative", c.DistinguishedFriendID))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if c.BalanceRefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.BalanceRefreshSchedule); err != nil {
			errs = append(errs, fmt.Sprintf("invalid balance refresh schedule '%s': %v", c.BalanceRefreshSchedule, err))
		}
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// EventsEnabled reports whether ledger events go to AMQP.
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
