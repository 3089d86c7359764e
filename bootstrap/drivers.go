package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/meilisearch/meilisearch-go"

	"news-engine/config"
	"news-engine/driver"
	"news-engine/logger"
)

// initMeilisearchClient connects to the knowledge store with retry logic,
// so a store still booting alongside the engine does not fail startup.
func initMeilisearchClient(ctx context.Context, cfg *config.Config) (meilisearch.ServiceManager, error) {
	if cfg.Meilisearch.Host == "" {
		return nil, fmt.Errorf("meilisearch host is not configured")
	}

	logger.Logger.Info("Connecting to Meilisearch", "host", cfg.Meilisearch.Host)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 30 * time.Second

	client, err := backoff.Retry(ctx, func() (meilisearch.ServiceManager, error) {
		c := meilisearch.New(cfg.Meilisearch.Host, meilisearch.WithAPIKey(cfg.Meilisearch.APIKey))
		if _, healthErr := c.Health(); healthErr != nil {
			logger.Logger.Warn("Meilisearch not ready, retrying", "err", healthErr)
			return nil, healthErr
		}
		return c, nil
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(uint(config.StoreInitRetries)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Meilisearch: %w", err)
	}

	logger.Logger.Info("Connected to Meilisearch successfully")
	return client, nil
}

// initSearchProviderDriver builds the web-search driver.
func initSearchProviderDriver(cfg *config.Config) *driver.SearchProviderDriver {
	return driver.NewSearchProviderDriver(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Timeout)
}
