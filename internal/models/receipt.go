package models

// LineItem is a single purchased item, priced at checkout time. Display
// amounts are formatted decimal strings.
type LineItem struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	PriceEach string `json:"price_each"`
	LineTotal string `json:"line_total"`
}

// OrderPricing is the validated, priced result of a purchase request before
// signing. All amounts are integer minor currency units. With single-item
// purchases the grand total always equals the line total.
type OrderPricing struct {
	SKU            string
	Name           string
	Qty            int
	UnitPriceMinor int64
	LineTotalMinor int64
	TotalMinor     int64
}

// Receipt is returned to the caller after a successful checkout. Orders are
// never persisted; the receipt, with its signed payload, is the only
// artifact of the purchase.
type Receipt struct {
	OrderID   int64      `json:"order_id"`
	Reference string     `json:"reference"`
	Items     []LineItem `json:"items"`
	Total     string     `json:"total"`
	QRPayload string     `json:"qr_payload"`
	QRDataURL string     `json:"qr_data_url"`
}
