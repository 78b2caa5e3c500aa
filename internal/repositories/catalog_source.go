package repositories

import "grocerz/internal/models"

// RequiredColumns are the columns every catalog source must supply. A source
// missing any of them fails the whole load.
var RequiredColumns = []string{
	"sku", "name", "brand", "size", "color", "ingredient_tags", "aisle", "price", "stock_qty",
}

// CatalogSource defines the interface for loading the full product catalog
// from an external tabular provider. A load is always complete: there are no
// incremental or partial loads, and any malformed row fails the load with a
// *models.LoadError.
type CatalogSource interface {
	Load() ([]models.Product, error)
}
