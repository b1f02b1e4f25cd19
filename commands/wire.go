package commands

import (
	"context"
	"fmt"
	"time"

	"mercari-scraper/config"
	"mercari-scraper/pipeline"
	"mercari-scraper/scraper/mercari"
	"mercari-scraper/storage"
	"mercari-scraper/utils"
)

func openStore(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.ListingStore, error) {
	switch cfg.StoreBackend {
	case "memory":
		logger.Warn("[store] Using in-memory store, listings will not survive restart")
		return storage.NewMemoryStore(), nil
	case "postgres", "":
		return storage.NewPostgresStore(ctx, cfg.DSN(), cfg.DBConnectRetries, logger)
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func newDriver(cfg *config.Config, logger *utils.Logger) (*mercari.Driver, error) {
	extractor, err := mercari.NewExtractor(cfg.MarketplaceOrigin, logger)
	if err != nil {
		return nil, err
	}
	delayer := &mercari.JitterDelayer{
		SettleMin: time.Duration(cfg.SettleMinMs) * time.Millisecond,
		SettleMax: time.Duration(cfg.SettleMaxMs) * time.Millisecond,
		PaceMin:   time.Duration(cfg.PaceMinMs) * time.Millisecond,
		PaceMax:   time.Duration(cfg.PaceMaxMs) * time.Millisecond,
	}
	launcher := &mercari.ChromeLauncher{ChromeBin: cfg.ChromeBin, Logger: logger}
	return mercari.NewDriver(launcher, extractor, delayer, mercari.DriverOptions{
		Origin:     cfg.MarketplaceOrigin,
		NavTimeout: cfg.NavTimeout(),
	}, logger), nil
}

func newPipeline(driver *mercari.Driver, store storage.ListingStore, sample storage.SampleWriter) *pipeline.Pipeline {
	return pipeline.New(driver, store, sample, logger)
}
