package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"grocerz/internal/models"
	"grocerz/internal/repositories"
)

// ReceiptEncoder renders a signed payload as a displayable image artifact.
type ReceiptEncoder interface {
	EncodeDataURL(payload string) (string, error)
}

// EventPublisher publishes checkout events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles the purchase path: stock validation, pricing, payment
// attestation and receipt assembly. Orders are never persisted and stock is
// never decremented: the stock figure is advisory, checked point-in-time
// against the single catalog snapshot pinned for the request.
type OrderService struct {
	store    *repositories.CatalogStore
	attest   *AttestationService
	encoder  ReceiptEncoder
	mqClient EventPublisher // optional; nil disables event publication
}

// NewOrderService creates a new OrderService.
func NewOrderService(store *repositories.CatalogStore, attest *AttestationService, encoder ReceiptEncoder, mqClient EventPublisher) *OrderService {
	return &OrderService{
		store:    store,
		attest:   attest,
		encoder:  encoder,
		mqClient: mqClient,
	}
}

// ValidateAndPrice checks that the product exists with sufficient stock and
// computes the order totals in minor currency units. qty must already be
// coerced to an integer of at least 1 by the boundary layer.
func (s *OrderService) ValidateAndPrice(sku string, qty int) (*models.OrderPricing, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return priceFromSnapshot(snap, sku, qty)
}

func priceFromSnapshot(snap *repositories.Snapshot, sku string, qty int) (*models.OrderPricing, error) {
	if qty < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", qty)
	}

	product, ok := snap.Lookup(sku)
	if !ok {
		return nil, &models.NotFoundError{SKU: sku}
	}
	if product.StockQty < qty {
		return nil, &models.InsufficientStockError{
			SKU:       sku,
			Requested: qty,
			Available: product.StockQty,
		}
	}

	lineTotal := product.PriceMinor * int64(qty)
	return &models.OrderPricing{
		SKU:            product.SKU,
		Name:           product.Name,
		Qty:            qty,
		UnitPriceMinor: product.PriceMinor,
		LineTotalMinor: lineTotal,
		TotalMinor:     lineTotal, // single line item
	}, nil
}

// Checkout validates and prices the purchase, signs the total and renders
// the QR artifact before assembling the receipt. A failed signature or
// encode step returns an error and no receipt; there are no partial
// receipts.
func (s *OrderService) Checkout(sku string, qty int) (*models.Receipt, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	pricing, err := priceFromSnapshot(snap, sku, qty)
	if err != nil {
		return nil, err
	}

	// The order ID is a nonce drawn from the clock, unique enough for a
	// receipt within this process, not across processes.
	orderID := time.Now().Unix()
	payload := s.attest.Sign(orderID, pricing.TotalMinor)

	dataURL, err := s.encoder.EncodeDataURL(payload)
	if err != nil {
		return nil, err
	}

	receipt := &models.Receipt{
		OrderID:   orderID,
		Reference: uuid.New().String(),
		Items: []models.LineItem{{
			SKU:       pricing.SKU,
			Name:      pricing.Name,
			Qty:       pricing.Qty,
			PriceEach: models.FormatMinor(pricing.UnitPriceMinor),
			LineTotal: models.FormatMinor(pricing.LineTotalMinor),
		}},
		Total:     models.FormatMinor(pricing.TotalMinor),
		QRPayload: payload,
		QRDataURL: dataURL,
	}

	s.publishReceiptIssued(receipt)

	return receipt, nil
}

// publishReceiptIssued emits a checkout event when a broker is configured.
// Publishing failures are logged, never surfaced: the receipt is already
// valid at this point.
func (s *OrderService) publishReceiptIssued(receipt *models.Receipt) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"orderID":   receipt.OrderID,
		"reference": receipt.Reference,
		"total":     receipt.Total,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal receipt event to JSON: %v", err)
		return
	}
	if err := s.mqClient.Publish("checkout.receipt_issued", body); err != nil {
		log.Printf("Warning: Failed to publish receipt event for order %d: %v", receipt.OrderID, err)
	} else {
		log.Printf("Successfully published receipt event for order %d", receipt.OrderID)
	}
}
