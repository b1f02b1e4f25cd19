package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"mercari-scraper/models"
)

// SampleSize is how many listings a run preview keeps.
const SampleSize = 10

// CSVWriter writes a preview of scraped listings to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	// Write header
	if err := w.Write([]string{
		"listing_url", "title", "price", "image_url", "category", "scraped_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteSample writes the first SampleSize listings. A missing price is
// written as an empty cell.
func (c *CSVWriter) WriteSample(listings []models.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(listings) > SampleSize {
		listings = listings[:SampleSize]
	}

	for _, l := range listings {
		price := ""
		if l.Price != nil {
			price = strconv.FormatInt(*l.Price, 10)
		}
		row := []string{
			l.ListingURL,
			l.Title,
			price,
			l.ImageURL,
			l.Category,
			l.ScrapedAt.UTC().Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
