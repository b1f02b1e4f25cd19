package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mercari-scraper/models"
	"mercari-scraper/storage"
	"mercari-scraper/utils"
)

// Searcher runs one scrape for the four request parameters.
type Searcher interface {
	Search(ctx context.Context, keyword, category string, priceMin, priceMax int) ([]models.Listing, error)
}

type scrapeRequest struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	PriceMin *int   `json:"price_min"`
	PriceMax *int   `json:"price_max"`
}

type scrapeResponse struct {
	Status string           `json:"status"`
	Count  int              `json:"count"`
	Items  []models.Listing `json:"items"`
	Error  string           `json:"error,omitempty"`
}

// New builds the HTTP handler exposing POST /scrape.
func New(searcher Searcher, allowedOrigins []string, logger *utils.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(logger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/scrape", scrapeHandler(searcher, logger))

	return r
}

func scrapeHandler(searcher Searcher, logger *utils.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scrapeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, scrapeResponse{Status: "error", Error: "invalid JSON body"})
			return
		}

		priceMin, priceMax := models.DefaultPriceMin, models.DefaultPriceMax
		if req.PriceMin != nil {
			priceMin = *req.PriceMin
		}
		if req.PriceMax != nil {
			priceMax = *req.PriceMax
		}

		// A run is not abortable by the client; only the server lifetime bounds it.
		ctx := context.WithoutCancel(r.Context())
		listings, err := searcher.Search(ctx, req.Keyword, req.Category, priceMin, priceMax)
		if err != nil {
			logger.Error("[server] Scrape for %q failed: %v", req.Keyword, err)
			writeJSON(w, http.StatusInternalServerError, scrapeResponse{
				Status: "error",
				Count:  len(listings),
				Items:  sample(listings),
				Error:  err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, scrapeResponse{
			Status: "ok",
			Count:  len(listings),
			Items:  sample(listings),
		})
	}
}

func sample(listings []models.Listing) []models.Listing {
	if listings == nil {
		return []models.Listing{}
	}
	if len(listings) > storage.SampleSize {
		return listings[:storage.SampleSize]
	}
	return listings
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func requestLogger(logger *utils.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("[server] %s %s -> %d (%v) req=%s",
				r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond),
				middleware.GetReqID(r.Context()))
		})
	}
}
