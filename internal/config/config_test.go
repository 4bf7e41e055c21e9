package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Instruments) != 2 || cfg.Instruments[0].Symbol != "QQQ" || cfg.Instruments[1].Symbol != "SPY" {
		t.Errorf("unexpected default instruments: %+v", cfg.Instruments)
	}
	if cfg.Rate.Symbol != "KRW=X" || cfg.Rate.Label != "USD/KRW" {
		t.Errorf("unexpected default rate: %+v", cfg.Rate)
	}
	if cfg.WindowDays != 30 {
		t.Errorf("expected 30 day window, got %d", cfg.WindowDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
instruments:
  - label: "VOO (USD)"
    symbol: "VOO"
  - label: "DIA (USD)"
    symbol: "DIA"
rate:
  label: "USD/JPY"
  symbol: "JPY=X"
currency:
  quote: "JPY"
window_days: 60
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FXLENS_WINDOW_DAYS", "45")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Instruments[0].Symbol != "VOO" || cfg.Rate.Symbol != "JPY=X" {
		t.Errorf("yaml not applied: %+v %+v", cfg.Instruments, cfg.Rate)
	}
	if cfg.Currency.Base != "USD" || cfg.Currency.Quote != "JPY" {
		t.Errorf("unexpected currencies: %+v", cfg.Currency)
	}
	if cfg.WindowDays != 45 {
		t.Errorf("env override not applied, got %d", cfg.WindowDays)
	}
	if !cfg.TelegramEnabled() {
		t.Error("expected telegram enabled")
	}
}

func TestLoad_BadWindowEnv(t *testing.T) {
	t.Setenv("FXLENS_WINDOW_DAYS", "thirty")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for non-numeric window")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"one instrument", func(c *Config) { c.Instruments = c.Instruments[:1] }},
		{"missing symbol", func(c *Config) { c.Instruments[0].Symbol = "" }},
		{"duplicate label", func(c *Config) { c.Instruments[1].Label = c.Instruments[0].Label }},
		{"label clashes with rate", func(c *Config) { c.Instruments[0].Label = c.Rate.Label }},
		{"short window", func(c *Config) { c.WindowDays = 1 }},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "x" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAllInstruments_RateLast(t *testing.T) {
	cfg := Default()
	all := cfg.AllInstruments()
	if len(all) != 3 {
		t.Fatalf("expected 3 instruments, got %d", len(all))
	}
	if all[2] != cfg.Rate {
		t.Errorf("expected rate last, got %+v", all[2])
	}
}
