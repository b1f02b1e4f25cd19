package storage

import (
	"context"
	"sync"

	"mercari-scraper/models"
	"mercari-scraper/utils"
)

// MemoryStore keeps listings in process memory. It backs local runs with
// STORE_BACKEND=memory and tests.
type MemoryStore struct {
	keys *utils.URLSet

	mu       sync.Mutex
	listings []models.Listing
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: utils.NewURLSet()}
}

func (m *MemoryStore) InsertIfAbsent(_ context.Context, l models.Listing) (bool, error) {
	if !m.keys.Add(l.ListingURL) {
		return false, nil
	}
	m.mu.Lock()
	m.listings = append(m.listings, l)
	m.mu.Unlock()
	return true, nil
}

func (m *MemoryStore) Count(context.Context) (int, error) {
	return m.keys.Size(), nil
}

// All returns stored listings in insertion order.
func (m *MemoryStore) All() []models.Listing {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Listing, len(m.listings))
	copy(out, m.listings)
	return out
}

func (m *MemoryStore) Close() error { return nil }
