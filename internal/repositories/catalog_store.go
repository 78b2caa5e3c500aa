package repositories

import (
	"errors"
	"sync/atomic"
	"time"

	"grocerz/internal/models"
)

var errNotLoaded = errors.New("catalog has not been loaded")

// Snapshot is an immutable, point-in-time view of the catalog. Snapshots are
// shared between concurrent readers; nothing may mutate one after it is
// published.
type Snapshot struct {
	products []models.Product
	bySKU    map[string]int
	version  uint64
	loadedAt time.Time
}

// Products returns the snapshot's rows in their original insertion order.
// Callers must treat the returned slice as read-only.
func (s *Snapshot) Products() []models.Product { return s.products }

// Lookup finds a product by SKU. When a SKU appears more than once in one
// load, the first occurrence wins.
func (s *Snapshot) Lookup(sku string) (models.Product, bool) {
	idx, ok := s.bySKU[sku]
	if !ok {
		return models.Product{}, false
	}
	return s.products[idx], true
}

// Version returns the snapshot's load counter, starting at 1.
func (s *Snapshot) Version() uint64 { return s.version }

// LoadedAt returns when the snapshot was loaded.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// CatalogStore holds the current catalog snapshot behind an atomically
// swappable pointer: a reload either publishes a complete new snapshot or
// leaves the previous one serving. There is no update-in-place; refreshing
// the catalog means a full reload. Readers pin one snapshot per request so
// they never observe a mix of two loads.
type CatalogStore struct {
	source   CatalogSource
	snapshot atomic.Pointer[Snapshot]
	version  atomic.Uint64
}

// NewCatalogStore creates a store over the given source. No load happens
// until Reload is called.
func NewCatalogStore(source CatalogSource) *CatalogStore {
	return &CatalogStore{source: source}
}

// Reload performs a full load from the source and swaps the new snapshot in.
// On failure the previous snapshot, if any, keeps serving.
func (s *CatalogStore) Reload() error {
	products, err := s.source.Load()
	if err != nil {
		return err
	}

	bySKU := make(map[string]int, len(products))
	for i, p := range products {
		if _, exists := bySKU[p.SKU]; !exists {
			bySKU[p.SKU] = i
		}
	}

	s.snapshot.Store(&Snapshot{
		products: products,
		bySKU:    bySKU,
		version:  s.version.Add(1),
		loadedAt: time.Now(),
	})
	return nil
}

// Snapshot returns the current catalog snapshot. It fails with a
// *models.LoadError until the first successful Reload.
func (s *CatalogStore) Snapshot() (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, &models.LoadError{Source: "catalog", Err: errNotLoaded}
	}
	return snap, nil
}
