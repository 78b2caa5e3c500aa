package repositories_test

import (
	"testing"

	"grocerz/internal/models"
	"grocerz/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newGORMSource(t *testing.T) (*repositories.GORMCatalogSource, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	source := repositories.NewGORMCatalogSource(db)
	assert.NoError(t, source.Migrate())
	return source, db
}

func TestGORMCatalogSource_SeedAndLoad(t *testing.T) {
	source, _ := newGORMSource(t)

	seed := []models.Product{
		{SKU: "A1", Name: "Milk", Brand: "Farm", Size: "1L", IngredientTags: "dairy", Aisle: "3", PriceMinor: 5000, StockQty: 5},
		{SKU: "B2", Name: "Bread", Brand: "Bakehouse", PriceMinor: 250, StockQty: 12},
	}
	assert.NoError(t, source.Seed(seed))

	products, err := source.Load()
	assert.NoError(t, err)
	assert.Equal(t, seed, products)
}

func TestGORMCatalogSource_SeedReplacesContents(t *testing.T) {
	source, _ := newGORMSource(t)

	assert.NoError(t, source.Seed([]models.Product{
		{SKU: "A1", Name: "Milk", PriceMinor: 5000, StockQty: 5},
	}))
	assert.NoError(t, source.Seed([]models.Product{
		{SKU: "B2", Name: "Bread", PriceMinor: 250, StockQty: 12},
	}))

	products, err := source.Load()
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "B2", products[0].SKU)
}

func TestGORMCatalogSource_BadPriceFailsWholeLoad(t *testing.T) {
	source, db := newGORMSource(t)
	assert.NoError(t, source.Seed([]models.Product{
		{SKU: "A1", Name: "Milk", PriceMinor: 5000, StockQty: 5},
	}))

	// Corrupt the stored price directly; the next load must fail entirely.
	assert.NoError(t, db.Model(&repositories.CatalogProduct{}).
		Where("sku = ?", "A1").Update("price", "not-a-price").Error)

	products, err := source.Load()
	assert.Nil(t, products)

	var loadErr *models.LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "price", loadErr.Column)
}
