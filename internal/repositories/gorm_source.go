package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"grocerz/internal/models"
)

// CatalogProduct is the database row model backing GORMCatalogSource. Price
// is stored as a decimal string so the database never holds a float
// approximation of a currency amount.
type CatalogProduct struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	SKU            string `gorm:"column:sku;type:varchar(64);index"`
	Name           string `gorm:"type:varchar(255)"`
	Brand          string `gorm:"type:varchar(255)"`
	Size           string `gorm:"type:varchar(64)"`
	Color          string `gorm:"type:varchar(64)"`
	IngredientTags string `gorm:"column:ingredient_tags;type:varchar(512)"`
	Aisle          string `gorm:"type:varchar(64)"`
	Price          string `gorm:"type:varchar(32)"`
	StockQty       int    `gorm:"column:stock_qty"`
}

// TableName sets the table backing the catalog.
func (CatalogProduct) TableName() string { return "catalog_products" }

// GORMCatalogSource loads the catalog from a relational table via GORM. Rows
// are read in primary-key order so reloads keep a stable insertion order.
type GORMCatalogSource struct {
	db *gorm.DB
}

// NewGORMCatalogSource creates a new instance of GORMCatalogSource.
func NewGORMCatalogSource(db *gorm.DB) *GORMCatalogSource {
	return &GORMCatalogSource{db: db}
}

// Migrate creates the catalog table if it does not exist.
func (s *GORMCatalogSource) Migrate() error {
	if err := s.db.AutoMigrate(&CatalogProduct{}); err != nil {
		return fmt.Errorf("failed to migrate catalog table: %w", err)
	}
	return nil
}

// Seed replaces the table contents with the given products. Intended for
// tests and development fixtures.
func (s *GORMCatalogSource) Seed(products []models.Product) error {
	if err := s.db.Where("1 = 1").Delete(&CatalogProduct{}).Error; err != nil {
		return fmt.Errorf("failed to clear catalog table: %w", err)
	}
	for _, p := range products {
		rec := CatalogProduct{
			SKU:            p.SKU,
			Name:           p.Name,
			Brand:          p.Brand,
			Size:           p.Size,
			Color:          p.Color,
			IngredientTags: p.IngredientTags,
			Aisle:          p.Aisle,
			Price:          models.FormatMinor(p.PriceMinor),
			StockQty:       p.StockQty,
		}
		if err := s.db.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.SKU, err)
		}
	}
	return nil
}

// Load reads every row and normalizes it under the same rules as the Excel
// source. A row with an unparseable price or negative stock fails the whole
// load.
func (s *GORMCatalogSource) Load() ([]models.Product, error) {
	var records []CatalogProduct
	if err := s.db.Order("id").Find(&records).Error; err != nil {
		return nil, &models.LoadError{Source: "catalog_products", Err: fmt.Errorf("query catalog table: %w", err)}
	}

	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		priceMinor, err := models.ParsePriceMinor(strings.TrimSpace(rec.Price))
		if err != nil {
			return nil, &models.LoadError{Source: "catalog_products", Column: "price", Row: int(rec.ID), Err: err}
		}
		if rec.StockQty < 0 {
			return nil, &models.LoadError{Source: "catalog_products", Column: "stock_qty", Row: int(rec.ID),
				Err: fmt.Errorf("negative stock quantity %d", rec.StockQty)}
		}
		products = append(products, models.Product{
			SKU:            strings.TrimSpace(rec.SKU),
			Name:           strings.TrimSpace(rec.Name),
			Brand:          strings.TrimSpace(rec.Brand),
			Size:           strings.TrimSpace(rec.Size),
			Color:          strings.TrimSpace(rec.Color),
			IngredientTags: strings.TrimSpace(rec.IngredientTags),
			Aisle:          strings.TrimSpace(rec.Aisle),
			PriceMinor:     priceMinor,
			StockQty:       rec.StockQty,
		})
	}
	return products, nil
}
