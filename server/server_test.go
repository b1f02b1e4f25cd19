package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercari-scraper/models"
	"mercari-scraper/utils"
)

type call struct {
	keyword, category  string
	priceMin, priceMax int
	ctxErr             error
}

type fakeSearcher struct {
	calls    []call
	listings []models.Listing
	err      error
}

func (f *fakeSearcher) Search(ctx context.Context, keyword, category string, priceMin, priceMax int) ([]models.Listing, error) {
	f.calls = append(f.calls, call{keyword, category, priceMin, priceMax, ctx.Err()})
	return f.listings, f.err
}

func listings(n int) []models.Listing {
	out := make([]models.Listing, n)
	for i := range out {
		out[i] = models.Listing{
			Title:      fmt.Sprintf("item %d", i),
			ListingURL: fmt.Sprintf("https://jp.mercari.com/item/m%d", i),
			Category:   "footwear",
			ScrapedAt:  time.Now().UTC(),
		}
	}
	return out
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, scrapeResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestScrapeReturnsCountAndSample(t *testing.T) {
	s := &fakeSearcher{listings: listings(25)}
	h := New(s, []string{"*"}, utils.Discard())

	rec, resp := post(t, h, `{"keyword":"shoes","category":"footwear","price_min":2000,"price_max":3000}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 25, resp.Count)
	assert.Len(t, resp.Items, 10)
	require.Len(t, s.calls, 1)
	assert.Equal(t, call{"shoes", "footwear", 2000, 3000, nil}, s.calls[0])
}

func TestScrapeDefaults(t *testing.T) {
	s := &fakeSearcher{}
	h := New(s, []string{"*"}, utils.Discard())

	rec, resp := post(t, h, `{"keyword":"shoes"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Items)
	require.Len(t, s.calls, 1)
	assert.Equal(t, "", s.calls[0].category)
	assert.Equal(t, models.DefaultPriceMin, s.calls[0].priceMin)
	assert.Equal(t, models.DefaultPriceMax, s.calls[0].priceMax)
}

func TestScrapeBadJSON(t *testing.T) {
	s := &fakeSearcher{}
	h := New(s, []string{"*"}, utils.Discard())

	rec, resp := post(t, h, `{"keyword":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Empty(t, s.calls)
}

func TestScrapeRunFailure(t *testing.T) {
	s := &fakeSearcher{listings: listings(3), err: errors.New("ingest: store failure: connection refused")}
	h := New(s, []string{"*"}, utils.Discard())

	rec, resp := post(t, h, `{"keyword":"shoes"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 3, resp.Count)
	assert.Contains(t, resp.Error, "connection refused")
}

func TestScrapeCORSPreflight(t *testing.T) {
	h := New(&fakeSearcher{}, []string{"http://localhost:3000"}, utils.Discard())

	req := httptest.NewRequest(http.MethodOptions, "/scrape", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
