package repositories_test

import (
	"path/filepath"
	"testing"

	"grocerz/internal/models"
	"grocerz/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

var catalogHeader = []interface{}{
	"sku", "name", "brand", "size", "color", "ingredient_tags", "aisle", "price", "stock_qty",
}

// writeWorkbook builds an xlsx fixture with the given header and rows.
func writeWorkbook(t *testing.T, header []interface{}, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	assert.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}

	path := filepath.Join(t.TempDir(), "inventory.xlsx")
	assert.NoError(t, f.SaveAs(path))
	assert.NoError(t, f.Close())
	return path
}

func TestExcelCatalogSource_LoadNormalizesRows(t *testing.T) {
	path := writeWorkbook(t, catalogHeader, [][]interface{}{
		{"A1", "  Milk  ", "Farm", "1L", "", "dairy", "3", "50.00", "5"},
		{"B2", "Bread", "", "", "", "", "", "2.50", "0"},
	})
	source := repositories.NewExcelCatalogSource(path)

	products, err := source.Load()
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	assert.Equal(t, models.Product{
		SKU: "A1", Name: "Milk", Brand: "Farm", Size: "1L",
		IngredientTags: "dairy", Aisle: "3", PriceMinor: 5000, StockQty: 5,
	}, products[0])

	// Missing cells become empty strings, never a null marker.
	assert.Equal(t, "B2", products[1].SKU)
	assert.Equal(t, "", products[1].Brand)
	assert.Equal(t, int64(250), products[1].PriceMinor)
	assert.Equal(t, 0, products[1].StockQty)
}

func TestExcelCatalogSource_MissingFile(t *testing.T) {
	source := repositories.NewExcelCatalogSource(filepath.Join(t.TempDir(), "nope.xlsx"))

	_, err := source.Load()
	var loadErr *models.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestExcelCatalogSource_MissingRequiredColumn(t *testing.T) {
	header := []interface{}{"sku", "name", "brand", "size", "color", "ingredient_tags", "price", "stock_qty"} // no aisle
	path := writeWorkbook(t, header, [][]interface{}{
		{"A1", "Milk", "Farm", "1L", "", "dairy", "50.00", "5"},
	})
	source := repositories.NewExcelCatalogSource(path)

	_, err := source.Load()
	var loadErr *models.LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "aisle", loadErr.Column)
}

func TestExcelCatalogSource_BadPriceFailsWholeLoad(t *testing.T) {
	path := writeWorkbook(t, catalogHeader, [][]interface{}{
		{"A1", "Milk", "Farm", "1L", "", "dairy", "3", "50.00", "5"},
		{"B2", "Bread", "Bakehouse", "", "", "", "1", "not-a-price", "12"},
	})
	source := repositories.NewExcelCatalogSource(path)

	products, err := source.Load()
	assert.Nil(t, products) // no partial catalogs

	var loadErr *models.LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "price", loadErr.Column)
	assert.Equal(t, 3, loadErr.Row)
}

func TestExcelCatalogSource_BadStockFailsWholeLoad(t *testing.T) {
	path := writeWorkbook(t, catalogHeader, [][]interface{}{
		{"A1", "Milk", "Farm", "1L", "", "dairy", "3", "50.00", "lots"},
	})
	source := repositories.NewExcelCatalogSource(path)

	_, err := source.Load()
	var loadErr *models.LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "stock_qty", loadErr.Column)
}

func TestExcelCatalogSource_NegativeStockFailsWholeLoad(t *testing.T) {
	path := writeWorkbook(t, catalogHeader, [][]interface{}{
		{"A1", "Milk", "Farm", "1L", "", "dairy", "3", "50.00", "-2"},
	})
	source := repositories.NewExcelCatalogSource(path)

	_, err := source.Load()
	var loadErr *models.LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "stock_qty", loadErr.Column)
}
