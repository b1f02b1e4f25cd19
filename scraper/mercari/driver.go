package mercari

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mercari-scraper/models"
	"mercari-scraper/utils"
)

// ErrPageLoad marks a results page that could not be navigated to or read.
// The driver skips such pages and carries on.
var ErrPageLoad = errors.New("page load failure")

// DefaultNavTimeout bounds a single page navigation.
const DefaultNavTimeout = 60 * time.Second

// Driver walks the paginated search results of one query using a single
// browser session.
type Driver struct {
	launcher   Launcher
	extractor  PageExtractor
	delayer    Delayer
	origin     string
	navTimeout time.Duration
	logger     *utils.Logger
}

// DriverOptions tunes a Driver. Zero values fall back to defaults.
type DriverOptions struct {
	Origin     string
	NavTimeout time.Duration
}

// NewDriver creates a ready-to-use Driver.
func NewDriver(launcher Launcher, extractor PageExtractor, delayer Delayer, opts DriverOptions, logger *utils.Logger) *Driver {
	if opts.Origin == "" {
		opts.Origin = DefaultOrigin
	}
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = DefaultNavTimeout
	}
	if delayer == nil {
		delayer = DefaultJitter()
	}
	return &Driver{
		launcher:   launcher,
		extractor:  extractor,
		delayer:    delayer,
		origin:     opts.Origin,
		navTimeout: opts.NavTimeout,
		logger:     logger,
	}
}

// Scrape fetches q.MaxPages result pages in order and returns every listing
// found, in page order then in-page order. Pages that fail to load are
// skipped and still count toward MaxPages. The browser session is released
// on every return path.
func (d *Driver) Scrape(ctx context.Context, q models.SearchQuery) ([]models.Listing, error) {
	q = q.WithDefaults()
	d.logger.Info("[mercari] Starting scrape: keyword=%q category=%q price=%d-%d pages=%d",
		q.Keyword, q.Category, q.PriceMin, q.PriceMax, q.MaxPages)

	session, err := d.launcher.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			d.logger.Warn("[mercari] Browser close: %v", err)
		}
	}()

	results := make([]models.Listing, 0)
	for page := 1; page <= q.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		pageURL := SearchURL(d.origin, q, page)
		d.logger.Info("[mercari] Scraping page %d/%d: %s", page, q.MaxPages, pageURL)

		listings, err := d.scrapePage(ctx, session, pageURL, q.Category)
		if err != nil {
			d.logger.Warn("[mercari] Page %d skipped: %v", page, err)
		} else {
			results = append(results, listings...)
			d.logger.Info("[mercari] Page %d done: %d listings (%d so far)", page, len(listings), len(results))
		}

		if err := d.delayer.Pace(ctx); err != nil {
			return results, err
		}
	}

	d.logger.Info("[mercari] Scrape complete: %d listings", len(results))
	return results, nil
}

func (d *Driver) scrapePage(ctx context.Context, session Session, pageURL, category string) ([]models.Listing, error) {
	navCtx, cancel := context.WithTimeout(ctx, d.navTimeout)
	err := session.Navigate(navCtx, pageURL)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: navigate: %v", ErrPageLoad, err)
	}

	if err := d.delayer.Settle(ctx); err != nil {
		return nil, err
	}

	html, err := session.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read content: %v", ErrPageLoad, err)
	}

	listings, err := d.extractor.Extract(html, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return listings, nil
}
