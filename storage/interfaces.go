package storage

import (
	"context"

	"mercari-scraper/models"
)

// ListingStore is the interface any durable listing backend must satisfy.
// Listings are keyed by ListingURL.
type ListingStore interface {
	// InsertIfAbsent stores l unless a listing with the same ListingURL
	// already exists. It reports whether l was inserted.
	InsertIfAbsent(ctx context.Context, l models.Listing) (bool, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// SampleWriter exports a preview of a run's listings.
type SampleWriter interface {
	WriteSample(listings []models.Listing) error
	Close() error
}
