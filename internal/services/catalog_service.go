package services

import (
	"strings"

	"grocerz/internal/models"
	"grocerz/internal/repositories"
)

// SearchFilters are the optional predicates accepted by Search. Empty or
// whitespace-only values impose no constraint.
type SearchFilters struct {
	Q     string // case-insensitive substring over name OR sku
	Brand string // case-insensitive substring over brand
}

// CatalogService handles read-side business logic for the catalog.
type CatalogService struct {
	store *repositories.CatalogStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store *repositories.CatalogStore) *CatalogService {
	return &CatalogService{
		store: store,
	}
}

// Search applies the filters to the current catalog snapshot and annotates
// every surviving row with its availability label. Filters combine with AND
// across keys; within q, a row matches when its name OR its sku contains the
// term. Filtering only removes rows: results keep the snapshot's insertion
// order.
func (s *CatalogService) Search(filters SearchFilters) ([]models.ProductView, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(filters.Q))
	brand := strings.ToLower(strings.TrimSpace(filters.Brand))

	products := snap.Products()
	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		if brand != "" && !strings.Contains(strings.ToLower(p.Brand), brand) {
			continue
		}
		views = append(views, models.NewProductView(p))
	}
	return views, nil
}
