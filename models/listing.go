package models

import "time"

// DefaultCategory is used when the caller does not tag a query.
const DefaultCategory = "uncategorized"

const (
	DefaultPriceMin = 1000
	DefaultPriceMax = 5000
	DefaultMaxPages = 5
)

// Listing is one extracted search result. ListingURL is its natural key:
// two listings with the same ListingURL are the same listing.
type Listing struct {
	Title      string    `json:"title"`
	Price      *int64    `json:"price"`
	ImageURL   string    `json:"image_url"`
	Category   string    `json:"category"`
	ListingURL string    `json:"listing_url"`
	ScrapedAt  time.Time `json:"scraped_at"`
}

// HasPrice reports whether the source price text could be parsed.
func (l Listing) HasPrice() bool {
	return l.Price != nil
}

// SearchQuery describes a single run. It is never persisted.
type SearchQuery struct {
	Keyword  string
	Category string
	PriceMin int
	PriceMax int
	MaxPages int
}

// NewSearchQuery builds a query with the default page count.
func NewSearchQuery(keyword, category string, priceMin, priceMax int) SearchQuery {
	return SearchQuery{
		Keyword:  keyword,
		Category: category,
		PriceMin: priceMin,
		PriceMax: priceMax,
	}.WithDefaults()
}

// WithDefaults fills the category and page count when they were omitted.
func (q SearchQuery) WithDefaults() SearchQuery {
	if q.Category == "" {
		q.Category = DefaultCategory
	}
	if q.MaxPages <= 0 {
		q.MaxPages = DefaultMaxPages
	}
	return q
}
