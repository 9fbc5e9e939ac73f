package config

import "testing"

func validConfig() *Config {
	return &Config{
		RPCURL:         "https://api.mainnet-beta.solana.com",
		WSURL:          "wss://api.mainnet-beta.solana.com",
		StorageBackend: "sqlite",
		SQLitePath:     "./data/tracker.db",
		HealthPort:     8080,
		MetricsPort:    9090,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.StorageBackend = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestValidateRequiresPostgresDSN(t *testing.T) {
	cfg := validConfig()
	cfg.StorageBackend = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing POSTGRES_DSN")
	}
}

func TestValidateRequiresChatIDWithToken(t *testing.T) {
	cfg := validConfig()
	cfg.TelegramBotToken = "12345:abcdef"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing TELEGRAM_CHAT_ID")
	}
}

func TestMaskedTelegramToken(t *testing.T) {
	cfg := validConfig()
	if got := cfg.MaskedTelegramToken(); got != "(not set)" {
		t.Errorf("expected (not set), got %s", got)
	}
	cfg.TelegramBotToken = "1234567890:secretsecret"
	got := cfg.MaskedTelegramToken()
	if got != "1234****cret" {
		t.Errorf("unexpected mask %s", got)
	}
}
