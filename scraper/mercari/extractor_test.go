package mercari

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercari-scraper/utils"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := NewExtractor(DefaultOrigin, utils.Discard())
	require.NoError(t, err)
	e.now = func() time.Time { return time.Date(2026, 10, 15, 18, 30, 0, 0, time.FixedZone("JST", 9*3600)) }
	return e
}

func TestExtractWellFormedCells(t *testing.T) {
	e := newTestExtractor(t)
	page := resultsPage(
		cell{href: "/item/m111", img: "https://static.mercdn.net/thumb/m111.jpg", title: "  Nike Air Max  ", price: "¥3,200"},
		cell{href: "https://jp.mercari.com/item/m222", img: "/img/m222.jpg", title: "Adidas Samba", price: "お得 ¥2,980(税込)"},
	)

	listings, err := e.Extract(page, "footwear")
	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "Nike Air Max", first.Title)
	require.NotNil(t, first.Price)
	assert.EqualValues(t, 3200, *first.Price)
	assert.Equal(t, "https://static.mercdn.net/thumb/m111.jpg", first.ImageURL)
	assert.Equal(t, "https://jp.mercari.com/item/m111", first.ListingURL)
	assert.Equal(t, "footwear", first.Category)
	assert.Equal(t, time.UTC, first.ScrapedAt.Location())
	assert.Equal(t, 9, first.ScrapedAt.Hour())

	second := listings[1]
	assert.Equal(t, "https://jp.mercari.com/item/m222", second.ListingURL)
	assert.Equal(t, "/img/m222.jpg", second.ImageURL, "image URL is kept as found")
	require.NotNil(t, second.Price)
	assert.EqualValues(t, 2980, *second.Price)
}

func TestExtractEmptyPage(t *testing.T) {
	e := newTestExtractor(t)

	listings, err := e.Extract(resultsPage(), "footwear")
	require.NoError(t, err)
	assert.NotNil(t, listings)
	assert.Empty(t, listings)

	listings, err = e.Extract("", "footwear")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestExtractSkipsMalformedCells(t *testing.T) {
	ok := cell{href: "/item/m1", img: "https://static.mercdn.net/m1.jpg", title: "ok", price: "¥500"}

	tests := []struct {
		name string
		bad  cell
	}{
		{"missing image", cell{href: "/item/m2", title: "x", price: "¥1", noImg: true}},
		{"missing title", cell{href: "/item/m2", img: "i.jpg", price: "¥1", noTitle: true}},
		{"blank title", cell{href: "/item/m2", img: "i.jpg", title: "   ", price: "¥1"}},
		{"missing price element", cell{href: "/item/m2", img: "i.jpg", title: "x", noPrice: true}},
		{"empty image src", cell{href: "/item/m2", img: "", title: "x", price: "¥1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(t)
			other := ok
			other.href = "/item/m3"

			listings, err := e.Extract(resultsPage(ok, tt.bad, other), "footwear")
			require.NoError(t, err)
			require.Len(t, listings, 2)
			assert.Equal(t, "https://jp.mercari.com/item/m1", listings[0].ListingURL)
			assert.Equal(t, "https://jp.mercari.com/item/m3", listings[1].ListingURL)
		})
	}
}

func TestExtractMissingLink(t *testing.T) {
	e := newTestExtractor(t)
	page := `<ul><li data-testid="item-cell"><img src="i.jpg"><h3>t</h3><div data-testid="item-price">¥1</div></li></ul>`

	listings, err := e.Extract(page, "footwear")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestExtractUnparseablePriceIsKept(t *testing.T) {
	e := newTestExtractor(t)
	page := resultsPage(cell{href: "/item/m9", img: "i.jpg", title: "Sold out", price: "SOLD"})

	listings, err := e.Extract(page, "footwear")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Nil(t, listings[0].Price)
}

func TestNewExtractorRejectsRelativeOrigin(t *testing.T) {
	_, err := NewExtractor("/just/a/path", utils.Discard())
	assert.Error(t, err)
}
