package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"grocerz/internal/models"
	"grocerz/internal/services"
)

// BuyRequest is the payload for a single-item purchase.
type BuyRequest struct {
	SKU string `form:"sku" validate:"required"`
	Qty int    `form:"qty" validate:"gte=1"`
}

// CheckoutHandler handles HTTP requests for purchases.
type CheckoutHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.OrderService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/buy", h.HandleBuy)
}

// HandleBuy validates the purchase request and returns the signed receipt.
// An absent or unparseable quantity defaults to a single unit; an explicit
// non-positive quantity is rejected.
func (h *CheckoutHandler) HandleBuy(c *fiber.Ctx) error {
	req := BuyRequest{
		SKU: strings.TrimSpace(c.FormValue("sku")),
		Qty: 1,
	}
	if raw := strings.TrimSpace(c.FormValue("qty")); raw != "" {
		if qty, err := strconv.Atoi(raw); err == nil {
			req.Qty = qty
		}
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "sku is required and qty must be at least 1",
			"error":   err.Error(),
		})
	}

	receipt, err := h.service.Checkout(req.SKU, req.Qty)
	if err != nil {
		return h.renderCheckoutError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// renderCheckoutError maps the checkout error kinds to HTTP responses with
// enough structure to render a user-facing message.
func (h *CheckoutHandler) renderCheckoutError(c *fiber.Ctx, err error) error {
	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found.",
			"sku":     notFound.SKU,
		})
	}

	var insufficient *models.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":   "Not enough stock.",
			"sku":       insufficient.SKU,
			"requested": insufficient.Requested,
			"available": insufficient.Available,
		})
	}

	var loadErr *models.LoadError
	if errors.As(err, &loadErr) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Catalog is not available",
			"error":   err.Error(),
		})
	}

	var encErr *models.EncodingError
	if errors.As(err, &encErr) {
		log.Printf("Error encoding receipt QR: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not render the receipt code",
			"error":   err.Error(),
		})
	}

	log.Printf("Error processing checkout: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not complete purchase",
		"error":   err.Error(),
	})
}
