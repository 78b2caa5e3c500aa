package repositories

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"grocerz/internal/models"
)

// ExcelCatalogSource loads the catalog from an Excel workbook. The first
// sheet's first row must be a header naming every required column; header
// matching is case-insensitive.
type ExcelCatalogSource struct {
	path string
}

// NewExcelCatalogSource creates a source reading from the workbook at path.
func NewExcelCatalogSource(path string) *ExcelCatalogSource {
	return &ExcelCatalogSource{path: path}
}

// Load reads the whole workbook and normalizes every row: string cells are
// trimmed (missing cells become empty strings), price parses to minor
// currency units and stock_qty to a non-negative integer. Any parse failure
// fails the whole load.
func (s *ExcelCatalogSource) Load() ([]models.Product, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, &models.LoadError{Source: s.path, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &models.LoadError{Source: s.path, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}
	if len(rows) == 0 {
		return nil, &models.LoadError{Source: s.path, Err: fmt.Errorf("workbook has no header row")}
	}

	colIndex := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		colIndex[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, &models.LoadError{Source: s.path, Column: col, Err: fmt.Errorf("required column missing")}
		}
	}

	// Trailing empty cells are omitted by excelize, so index past the row
	// end means an absent value.
	cell := func(row []string, col string) string {
		idx := colIndex[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	products := make([]models.Product, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		if isBlankRow(row) {
			continue
		}

		priceMinor, err := models.ParsePriceMinor(cell(row, "price"))
		if err != nil {
			return nil, &models.LoadError{Source: s.path, Column: "price", Row: rowNum, Err: err}
		}
		stockQty, err := strconv.Atoi(cell(row, "stock_qty"))
		if err != nil {
			return nil, &models.LoadError{Source: s.path, Column: "stock_qty", Row: rowNum, Err: err}
		}
		if stockQty < 0 {
			return nil, &models.LoadError{Source: s.path, Column: "stock_qty", Row: rowNum,
				Err: fmt.Errorf("negative stock quantity %d", stockQty)}
		}

		products = append(products, models.Product{
			SKU:            cell(row, "sku"),
			Name:           cell(row, "name"),
			Brand:          cell(row, "brand"),
			Size:           cell(row, "size"),
			Color:          cell(row, "color"),
			IngredientTags: cell(row, "ingredient_tags"),
			Aisle:          cell(row, "aisle"),
			PriceMinor:     priceMinor,
			StockQty:       stockQty,
		})
	}
	return products, nil
}

// isBlankRow reports whether every cell of the row is empty. Spreadsheets
// routinely carry trailing blank rows; these are skipped, not errors.
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
