package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"FxLens/internal/collector"
	"FxLens/internal/config"
	"FxLens/internal/notifier"
	"FxLens/internal/viewer"

	"go.uber.org/zap"
)

const defaultConfigPath = "configs/config.yaml"

func configPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return defaultConfigPath
}

func loadConfig(flagValue string) (*config.Config, error) {
	cfg, err := config.Load(configPath(flagValue))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	if cfg.DataSource.BaseURL != "" {
		return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	}
	return collector.NewYahooFetcher(cfg.Proxy)
}

func newNotifier(cfg *config.Config, logger *zap.Logger) *notifier.TelegramNotifier {
	if !cfg.TelegramEnabled() {
		return nil
	}
	return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
}

// serveViewer blocks until ctx is cancelled or the listener fails.
func serveViewer(ctx context.Context, addr string, store *viewer.Store, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           viewer.NewRouter(store, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("viewer listening", zap.String("url", "http://"+addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("viewer: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received, stopping viewer")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
