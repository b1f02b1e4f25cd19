package services

import (
	"context"
	"errors"
	"fmt"

	"mercari-scraper/models"
	"mercari-scraper/storage"
	"mercari-scraper/utils"
)

// ErrStore marks a persistence failure that aborts ingestion of a batch.
var ErrStore = errors.New("store failure")

// Ingester deduplicates and persists listings against a ListingStore.
type Ingester struct {
	store  storage.ListingStore
	logger *utils.Logger
}

func NewIngester(store storage.ListingStore, logger *utils.Logger) *Ingester {
	return &Ingester{store: store, logger: logger}
}

// Ingest stores each listing in batch order, skipping those whose
// ListingURL is already known. It returns how many were newly inserted.
// The first store error stops ingestion and is wrapped with ErrStore.
func (in *Ingester) Ingest(ctx context.Context, batch []models.Listing) (int, error) {
	inserted := 0
	for _, l := range batch {
		ok, err := in.store.InsertIfAbsent(ctx, l)
		if err != nil {
			return inserted, fmt.Errorf("%w: %v", ErrStore, err)
		}
		if ok {
			inserted++
		} else {
			in.logger.Debug("[store] Duplicate skipped: %s", l.ListingURL)
		}
	}

	in.logger.Info("[store] Inserted %d new of %d listings (%d duplicates)",
		inserted, len(batch), len(batch)-inserted)
	return inserted, nil
}
