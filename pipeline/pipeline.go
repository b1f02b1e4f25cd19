package pipeline

import (
	"context"
	"fmt"

	"mercari-scraper/models"
	"mercari-scraper/services"
	"mercari-scraper/storage"
	"mercari-scraper/utils"
)

// Scraper produces the ordered listing batch for a query.
type Scraper interface {
	Scrape(ctx context.Context, q models.SearchQuery) ([]models.Listing, error)
}

// RunResult is what one run hands back to its caller.
type RunResult struct {
	Listings []models.Listing
	Inserted int
}

// Pipeline scrapes a query, then ingests the whole batch into the store.
type Pipeline struct {
	scraper  Scraper
	ingester *services.Ingester
	sample   storage.SampleWriter
	logger   *utils.Logger
}

// New wires a Pipeline. sample may be nil.
func New(scraper Scraper, store storage.ListingStore, sample storage.SampleWriter, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		scraper:  scraper,
		ingester: services.NewIngester(store, logger),
		sample:   sample,
		logger:   logger,
	}
}

// Run executes one scrape-and-ingest run. The returned listings include
// both newly inserted and already known records. On a store failure the
// scraped listings are still returned alongside the error.
func (p *Pipeline) Run(ctx context.Context, q models.SearchQuery) (RunResult, error) {
	q = q.WithDefaults()
	p.logger.Info("[pipeline] Running real-time search for %q", q.Keyword)

	listings, err := p.scraper.Scrape(ctx, q)
	if err != nil {
		return RunResult{Listings: listings}, fmt.Errorf("scrape: %w", err)
	}

	inserted, err := p.ingester.Ingest(ctx, listings)
	res := RunResult{Listings: listings, Inserted: inserted}
	if err != nil {
		return res, fmt.Errorf("ingest: %w", err)
	}

	if p.sample != nil {
		if err := p.sample.WriteSample(listings); err != nil {
			p.logger.Warn("[pipeline] Sample export failed: %v", err)
		}
	}

	p.logger.Info("[pipeline] Run complete: %d listings scraped, %d new", len(listings), inserted)
	return res, nil
}

// Search is the four-parameter entry point used by the HTTP wrapper and
// the CLI. An empty category becomes models.DefaultCategory.
func (p *Pipeline) Search(ctx context.Context, keyword, category string, priceMin, priceMax int) ([]models.Listing, error) {
	res, err := p.Run(ctx, models.NewSearchQuery(keyword, category, priceMin, priceMax))
	return res.Listings, err
}
