package mercari

import (
	"fmt"
	"net/url"
	"strings"

	"mercari-scraper/models"
)

// DefaultOrigin is the marketplace origin used for search and for resolving
// relative listing links.
const DefaultOrigin = "https://jp.mercari.com"

// CSS selectors for the search results page. The markup is not versioned by
// the marketplace; drift should only ever require edits here.
const (
	ItemCellSelector  = `li[data-testid="item-cell"]`
	TitleSelector     = "h3"
	PriceSelector     = `div[data-testid="item-price"]`
	ImageSelector     = "img"
	LinkSelector      = "a"
	ImageSrcAttribute = "src"
	LinkHrefAttribute = "href"
)

// SearchURL builds the results URL for a 1-indexed page.
func SearchURL(origin string, q models.SearchQuery, page int) string {
	return fmt.Sprintf("%s/search?keyword=%s&price_min=%d&price_max=%d&page_token=v%d",
		strings.TrimRight(origin, "/"), url.QueryEscape(q.Keyword), q.PriceMin, q.PriceMax, page)
}
