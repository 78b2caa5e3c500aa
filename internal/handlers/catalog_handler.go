package handlers

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"grocerz/internal/models"
	"grocerz/internal/repositories"
	"grocerz/internal/services"
)

// CatalogHandler handles HTTP requests for catalog search and the admin
// catalog-replacement routes.
type CatalogHandler struct {
	service     *services.CatalogService
	store       *repositories.CatalogStore
	catalogPath string
}

// NewCatalogHandler creates a new CatalogHandler. catalogPath is where
// uploaded inventory workbooks are saved before reloading.
func NewCatalogHandler(service *services.CatalogService, store *repositories.CatalogStore, catalogPath string) *CatalogHandler {
	return &CatalogHandler{
		service:     service,
		store:       store,
		catalogPath: catalogPath,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleSearchProducts)

	adminRoutes := router.Group("/admin")
	adminRoutes.Post("/upload", h.HandleUploadCatalog)
	adminRoutes.Post("/reload", h.HandleReloadCatalog)
}

// HandleSearchProducts searches the catalog with the optional q and brand
// query filters.
func (h *CatalogHandler) HandleSearchProducts(c *fiber.Ctx) error {
	filters := services.SearchFilters{
		Q:     c.Query("q"),
		Brand: c.Query("brand"),
	}

	products, err := h.service.Search(filters)
	if err != nil {
		var loadErr *models.LoadError
		if errors.As(err, &loadErr) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "Catalog is not available",
				"error":   err.Error(),
			})
		}
		log.Printf("Error searching products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not search products",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"products": products,
		"count":    len(products),
	})
}

// HandleUploadCatalog replaces the catalog workbook on disk and reloads the
// snapshot. A failed load leaves the previous snapshot serving.
func (h *CatalogHandler) HandleUploadCatalog(c *fiber.Ctx) error {
	file, err := c.FormFile("excel")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please select an Excel file.",
		})
	}

	if err := os.MkdirAll(filepath.Dir(h.catalogPath), 0o755); err != nil {
		log.Printf("Error creating catalog directory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store uploaded file",
			"error":   err.Error(),
		})
	}
	if err := c.SaveFile(file, h.catalogPath); err != nil {
		log.Printf("Error saving uploaded catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store uploaded file",
			"error":   err.Error(),
		})
	}

	if err := h.store.Reload(); err != nil {
		log.Printf("Error reloading catalog after upload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Uploaded file could not be loaded; the previous catalog is still serving",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Inventory updated successfully",
	})
}

// HandleReloadCatalog re-runs the catalog load from the configured source.
func (h *CatalogHandler) HandleReloadCatalog(c *fiber.Ctx) error {
	if err := h.store.Reload(); err != nil {
		log.Printf("Error reloading catalog: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Catalog reload failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Catalog reloaded successfully",
	})
}
