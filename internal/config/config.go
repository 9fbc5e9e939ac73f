// Package config handles loading and validating configuration from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the wallet tracker.
type Config struct {
	// Solana RPC
	RPCURL string
	WSURL  string

	// Telegram
	TelegramBotToken string
	TelegramChatID   string

	// Storage
	StorageBackend string // sqlite, postgres, memory
	SQLitePath     string
	PostgresDSN    string

	// Activity archive (optional)
	ClickhouseDSN string

	// HTTP
	HealthPort  int
	MetricsPort int

	// Keep-alive (hosting platforms that idle out the process)
	AppURL string
}

// Load reads configuration from environment variables with fallback to a
// .env file. Priority: environment > .env > defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		RPCURL: getEnv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
		WSURL:  getEnv("SOLANA_WS_URL", "wss://api.mainnet-beta.solana.com"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),

		StorageBackend: getEnv("STORAGE_BACKEND", "sqlite"),
		SQLitePath:     getEnv("SQLITE_PATH", "./data/tracker.db"),
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),

		ClickhouseDSN: getEnv("CLICKHOUSE_DSN", ""),

		HealthPort:  getEnvInt("HEALTH_PORT", 8080),
		MetricsPort: getEnvInt("METRICS_PORT", 9090),

		AppURL: getEnv("APP_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that required configuration values are set and coherent.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("SOLANA_RPC_URL is required")
	}
	if c.WSURL == "" {
		return fmt.Errorf("SOLANA_WS_URL is required")
	}
	switch c.StorageBackend {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be sqlite, postgres, or memory, got %q", c.StorageBackend)
	}
	if c.StorageBackend == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required for the postgres backend")
	}
	if c.TelegramBotToken != "" && c.TelegramChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	if c.HealthPort < 1 || c.HealthPort > 65535 {
		return fmt.Errorf("HEALTH_PORT must be between 1 and 65535")
	}
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("METRICS_PORT must be between 1 and 65535")
	}
	return nil
}

// MaskedTelegramToken returns the bot token with most characters hidden for
// logging.
func (c *Config) MaskedTelegramToken() string {
	return maskSecret(c.TelegramBotToken)
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		if len(s) == 0 {
			return "(not set)"
		}
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
