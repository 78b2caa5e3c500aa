package models_test

import (
	"testing"

	"grocerz/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProductAvailabilityBoundaries(t *testing.T) {
	cases := []struct {
		qty  int
		want string
	}{
		{-3, models.AvailabilityOut},
		{0, models.AvailabilityOut},
		{1, models.AvailabilityLow},
		{9, models.AvailabilityLow},
		{10, models.AvailabilityIn},
		{250, models.AvailabilityIn},
	}

	for _, tc := range cases {
		p := models.Product{SKU: "A1", StockQty: tc.qty}
		assert.Equal(t, tc.want, p.Availability(), "stock_qty=%d", tc.qty)
	}
}

func TestNewProductView(t *testing.T) {
	p := models.Product{SKU: "A1", Name: "Milk", PriceMinor: 5000, StockQty: 5}
	view := models.NewProductView(p)

	assert.Equal(t, "50.00", view.Price)
	assert.Equal(t, models.AvailabilityLow, view.Availability)
	assert.Equal(t, p, view.Product)
}
