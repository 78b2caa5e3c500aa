package models

// Availability labels derived from a product's stock quantity.
const (
	AvailabilityOut = "Out"
	AvailabilityLow = "Low"
	AvailabilityIn  = "In stock"
)

// lowStockThreshold is the quantity at which a product counts as fully
// stocked again. Exactly 10 units is "In stock", 9 is "Low".
const lowStockThreshold = 10

// Product represents one row of the catalog. String attributes are trimmed
// on load and empty when absent. Prices are integer minor currency units.
type Product struct {
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Size           string `json:"size"`
	Color          string `json:"color"`
	IngredientTags string `json:"ingredient_tags"`
	Aisle          string `json:"aisle"`
	PriceMinor     int64  `json:"price_minor"`
	StockQty       int    `json:"stock_qty"`
}

// Availability returns the stock-level label for the product.
// Zero or less is "Out", 1 through 9 is "Low", 10 and above is "In stock".
func (p Product) Availability() string {
	switch {
	case p.StockQty <= 0:
		return AvailabilityOut
	case p.StockQty < lowStockThreshold:
		return AvailabilityLow
	default:
		return AvailabilityIn
	}
}

// ProductView is a Product annotated with its display price and derived
// availability label, as returned by catalog searches.
type ProductView struct {
	Product
	Price        string `json:"price"`
	Availability string `json:"availability"`
}

// NewProductView builds the search-result view of a product.
func NewProductView(p Product) ProductView {
	return ProductView{
		Product:      p,
		Price:        FormatMinor(p.PriceMinor),
		Availability: p.Availability(),
	}
}
