package mercari

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"mercari-scraper/models"
	"mercari-scraper/services"
	"mercari-scraper/utils"
)

// ErrItemParse marks a listing cell that is missing a required element or
// attribute. Such cells are skipped.
var ErrItemParse = errors.New("item parse failure")

// PageExtractor turns one rendered results page into listings.
type PageExtractor interface {
	Extract(html, category string) ([]models.Listing, error)
}

// Extractor reads listing cells from a results page with goquery.
type Extractor struct {
	origin *url.URL
	logger *utils.Logger
	now    func() time.Time
}

// NewExtractor returns an Extractor resolving relative links against origin.
func NewExtractor(origin string, logger *utils.Logger) (*Extractor, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("extractor: parse origin %q: %w", origin, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("extractor: origin %q is not absolute", origin)
	}
	return &Extractor{origin: u, logger: logger, now: time.Now}, nil
}

// Extract returns every well-formed listing on the page, in page order.
// Malformed cells are logged and skipped; a page with no cells yields an
// empty slice.
func (e *Extractor) Extract(html, category string) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("extractor: parse html: %w", err)
	}

	cells := doc.Find(ItemCellSelector)
	listings := make([]models.Listing, 0, cells.Length())
	cells.Each(func(i int, cell *goquery.Selection) {
		l, err := e.extractItem(cell, category)
		if err != nil {
			e.logger.Warn("[mercari] Skipping item %d: %v", i, err)
			return
		}
		listings = append(listings, l)
	})

	e.logger.Debug("[mercari] Extracted %d/%d item cells", len(listings), cells.Length())
	return listings, nil
}

func (e *Extractor) extractItem(cell *goquery.Selection, category string) (models.Listing, error) {
	titleEl := cell.Find(TitleSelector).First()
	if titleEl.Length() == 0 {
		return models.Listing{}, fmt.Errorf("%w: no %s element", ErrItemParse, TitleSelector)
	}
	title := strings.TrimSpace(titleEl.Text())
	if title == "" {
		return models.Listing{}, fmt.Errorf("%w: empty title", ErrItemParse)
	}

	priceEl := cell.Find(PriceSelector).First()
	if priceEl.Length() == 0 {
		return models.Listing{}, fmt.Errorf("%w: no price element", ErrItemParse)
	}

	image, err := requiredAttr(cell, ImageSelector, ImageSrcAttribute)
	if err != nil {
		return models.Listing{}, err
	}

	href, err := requiredAttr(cell, LinkSelector, LinkHrefAttribute)
	if err != nil {
		return models.Listing{}, err
	}
	link, err := e.resolve(href)
	if err != nil {
		return models.Listing{}, err
	}

	return models.Listing{
		Title:      title,
		Price:      services.ParsePrice(priceEl.Text()),
		ImageURL:   image,
		Category:   category,
		ListingURL: link,
		ScrapedAt:  e.now().UTC(),
	}, nil
}

// resolve makes href absolute against the marketplace origin.
func (e *Extractor) resolve(href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("%w: bad href %q: %v", ErrItemParse, href, err)
	}
	return e.origin.ResolveReference(ref).String(), nil
}

func requiredAttr(cell *goquery.Selection, selector, attr string) (string, error) {
	el := cell.Find(selector).First()
	if el.Length() == 0 {
		return "", fmt.Errorf("%w: no %s element", ErrItemParse, selector)
	}
	val, ok := el.Attr(attr)
	if !ok || strings.TrimSpace(val) == "" {
		return "", fmt.Errorf("%w: %s has no %s", ErrItemParse, selector, attr)
	}
	return val, nil
}
