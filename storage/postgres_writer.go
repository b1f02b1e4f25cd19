package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"mercari-scraper/models"
	"mercari-scraper/utils"
)

// PostgresStore persists listings to PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to accept
// connections, runs the schema migration and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, connectRetries int, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	retry := &utils.RetryConfig{MaxAttempts: connectRetries, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db, logger: logger}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	logger.Info("[store] Connected to PostgreSQL, table 'listings' is ready")
	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			listing_url TEXT        PRIMARY KEY,
			title       TEXT        NOT NULL,
			price       BIGINT,
			image_url   TEXT        NOT NULL,
			category    TEXT        NOT NULL,
			scraped_at  TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

// InsertIfAbsent inserts l in a single conditional statement, so concurrent
// runs racing on the same listing_url cannot both insert it.
func (ps *PostgresStore) InsertIfAbsent(ctx context.Context, l models.Listing) (bool, error) {
	res, err := ps.db.ExecContext(ctx, `
		INSERT INTO listings (listing_url, title, price, image_url, category, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (listing_url) DO NOTHING
	`, l.ListingURL, l.Title, l.Price, l.ImageURL, l.Category, l.ScrapedAt.UTC())
	if err != nil {
		return false, fmt.Errorf("postgres: insert %q: %w", l.ListingURL, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("postgres: rows affected: %w", err)
	}
	return n == 1, nil
}

// Count returns the number of stored listings.
func (ps *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := ps.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

// FetchAll retrieves every stored listing, oldest scrape first.
func (ps *PostgresStore) FetchAll(ctx context.Context) ([]models.Listing, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT listing_url, title, price, image_url, category, scraped_at
		FROM listings
		ORDER BY scraped_at, listing_url
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var (
			l     models.Listing
			price sql.NullInt64
		)
		if err := rows.Scan(&l.ListingURL, &l.Title, &price, &l.ImageURL, &l.Category, &l.ScrapedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if price.Valid {
			p := price.Int64
			l.Price = &p
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// Truncate removes all listings. Used to reset test databases.
func (ps *PostgresStore) Truncate(ctx context.Context) error {
	if _, err := ps.db.ExecContext(ctx, "TRUNCATE listings"); err != nil {
		return fmt.Errorf("postgres: truncate: %w", err)
	}
	return nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
