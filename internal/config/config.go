package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"FxLens/internal/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Instruments []model.Instrument `yaml:"instruments"`
	Rate        model.Instrument   `yaml:"rate"`
	Currency    struct {
		Base  string `yaml:"base"`
		Quote string `yaml:"quote"`
	} `yaml:"currency"`
	WindowDays int `yaml:"window_days"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Chart struct {
		Title  string `yaml:"title"`
		Height int    `yaml:"height"`
		Output string `yaml:"output"`
	} `yaml:"chart"`
	Viewer struct {
		Listen string `yaml:"listen"`
	} `yaml:"viewer"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional; variables already set in the process win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("FXLENS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("FXLENS_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("FXLENS_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("FXLENS_WINDOW_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FXLENS_WINDOW_DAYS: %w", err)
		}
		c.WindowDays = days
	}
	if v := os.Getenv("FXLENS_LISTEN"); v != "" {
		c.Viewer.Listen = v
	}
	if v := os.Getenv("FXLENS_REFRESH_CRON"); v != "" {
		c.Schedule.RefreshCron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if len(c.Instruments) == 0 {
		c.Instruments = []model.Instrument{
			{Label: "QQQ (USD)", Symbol: "QQQ"},
			{Label: "SPY (USD)", Symbol: "SPY"},
		}
	}
	if c.Rate.Symbol == "" {
		c.Rate = model.Instrument{Label: "USD/KRW", Symbol: "KRW=X"}
	}
	if c.Currency.Base == "" {
		c.Currency.Base = "USD"
	}
	if c.Currency.Quote == "" {
		c.Currency.Quote = "KRW"
	}
	if c.WindowDays == 0 {
		c.WindowDays = 30
	}
	if c.Chart.Title == "" {
		c.Chart.Title = "QQQ, SPY and USD/KRW (last 30 days)"
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 1200
	}
	if c.Viewer.Listen == "" {
		c.Viewer.Listen = "127.0.0.1:8050"
	}
}

// AllInstruments returns the priced instruments followed by the rate, in fetch order.
func (c *Config) AllInstruments() []model.Instrument {
	all := make([]model.Instrument, 0, len(c.Instruments)+1)
	all = append(all, c.Instruments...)
	return append(all, c.Rate)
}

// TelegramEnabled reports whether run summaries should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Instruments) != 2 {
		return fmt.Errorf("instruments: exactly 2 required, got %d", len(c.Instruments))
	}
	seen := map[string]bool{c.Rate.Label: true}
	for i, in := range c.Instruments {
		if in.Label == "" || in.Symbol == "" {
			return fmt.Errorf("instruments[%d]: label and symbol are required", i)
		}
		if seen[in.Label] {
			return fmt.Errorf("instruments[%d]: duplicate label %q", i, in.Label)
		}
		seen[in.Label] = true
	}
	if c.Rate.Label == "" {
		return fmt.Errorf("rate.label is required")
	}
	if c.WindowDays < 2 {
		return fmt.Errorf("window_days must be at least 2")
	}
	if c.Chart.Height <= 0 {
		return fmt.Errorf("chart.height must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
