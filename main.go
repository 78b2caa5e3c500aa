package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"grocerz/internal/handlers"
	"grocerz/internal/repositories"
	"grocerz/internal/services"
	"grocerz/pkg/qrcode"
	"grocerz/pkg/rabbitmq"
)

// devSecret is the development-only placeholder signing key. Deployments
// must override QR_SECRET: payloads signed with this value prove nothing.
const devSecret = "change-this-secret"

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("QR_SECRET", devSecret)
	viper.SetDefault("CATALOG_BACKEND", "excel") // excel | sqlite | postgres
	viper.SetDefault("CATALOG_PATH", "data/inventory.xlsx")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publication
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	qrSecret := viper.GetString("QR_SECRET")
	if qrSecret == devSecret {
		log.Println("WARNING: QR_SECRET is the development placeholder; set a real secret before issuing receipts")
	}

	// --- Initialize Catalog Store ---
	source, err := buildCatalogSource()
	if err != nil {
		log.Fatalf("Failed to initialize catalog source: %v", err)
	}
	store := repositories.NewCatalogStore(source)
	if err := store.Reload(); err != nil {
		// The server still starts: requests needing the catalog fail with
		// 503 until an upload or reload succeeds.
		log.Printf("Warning: initial catalog load failed: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
	}

	// --- Initialize Services ---
	attestService := services.NewAttestationService(qrSecret)
	catalogService := services.NewCatalogService(store)
	// A nil *rabbitmq.Client must not become a non-nil interface value.
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	orderService := services.NewOrderService(store, attestService, qrcode.NewEncoder(qrcode.DefaultSize), publisher)

	// --- Initialize Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService, store, viper.GetString("CATALOG_PATH"))
	checkoutHandler := handlers.NewCheckoutHandler(orderService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	catalogHandler.RegisterRoutes(apiV1)
	checkoutHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}
		if snap, err := store.Snapshot(); err != nil {
			status["catalog"] = "not loaded"
		} else {
			status["catalog"] = fiber.Map{
				"version":   snap.Version(),
				"products":  len(snap.Products()),
				"loaded_at": snap.LoadedAt().Format(time.RFC3339),
			}
		}
		return c.Status(fiber.StatusOK).JSON(status)
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Logs checkout events; downstream systems would consume the same queue.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for checkout events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received checkout event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeReceiptEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// buildCatalogSource selects the catalog source implementation from
// configuration. The database backends migrate their table on startup.
func buildCatalogSource() (repositories.CatalogSource, error) {
	switch backend := viper.GetString("CATALOG_BACKEND"); backend {
	case "excel", "":
		return repositories.NewExcelCatalogSource(viper.GetString("CATALOG_PATH")), nil

	case "sqlite":
		db, err := gorm.Open(sqlite.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		source := repositories.NewGORMCatalogSource(db)
		if err := source.Migrate(); err != nil {
			return nil, err
		}
		return source, nil

	case "postgres":
		db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		source := repositories.NewGORMCatalogSource(db)
		if err := source.Migrate(); err != nil {
			return nil, err
		}
		return source, nil

	default:
		return nil, fmt.Errorf("unknown CATALOG_BACKEND %q", backend)
	}
}
