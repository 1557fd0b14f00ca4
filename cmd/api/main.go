package main

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/modaline/storefront/internal/aws"
	"github.com/modaline/storefront/internal/cart"
	"github.com/modaline/storefront/internal/catalog"
	"github.com/modaline/storefront/internal/config"
	"github.com/modaline/storefront/internal/contact"
	"github.com/modaline/storefront/internal/handlers"
	"github.com/modaline/storefront/internal/orders"
	"github.com/modaline/storefront/internal/payments"
	"github.com/modaline/storefront/internal/settings"
	"github.com/modaline/storefront/internal/storage"
	"github.com/rs/zerolog"
)

func setupRouter(cfg handlers.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(r, cfg)

	return r
}

func main() {
	// best effort; deployed environments supply real env vars
	_ = godotenv.Load()

	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront-api").Logger()

	clients, err := aws.NewClients(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init aws clients")
	}

	ordersStore := orders.NewStore(clients.DynamoDB, cfg.OrdersTable)
	registry := payments.NewEventRegistry(clients.DynamoDB, cfg.PaymentEventsTable, cfg.EventTTL)

	var publisher *aws.Publisher
	if cfg.OrderEventsQueueURL != "" {
		publisher = aws.NewPublisher(clients.SQS, cfg.OrderEventsQueueURL)
	}

	var uploader *storage.Uploader
	if cfg.UploadBucket != "" {
		uploader = storage.NewUploader(clients.S3, cfg.UploadBucket)
	}

	hcfg := handlers.Config{
		Catalog:       catalog.NewStore(clients.DynamoDB, cfg.ProductsTable),
		Orders:        ordersStore,
		Settings:      settings.NewStore(clients.DynamoDB, cfg.SettingsTable),
		Contacts:      contact.NewStore(clients.DynamoDB, cfg.ContactsTable),
		Uploader:      uploader,
		CartPersister: cart.NewDynamoPersister(clients.DynamoDB, cfg.CartsTable),
		Processor:     payments.NewProcessor(registry, ordersStore, publisher, logger),
		PaymentSecret: cfg.PaymentSecret,
		AdminPassword: cfg.AdminPassword,
		Logger:        logger,
	}

	r := setupRouter(hcfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if cfg.RunLocal {
		logger.Info().Str("addr", cfg.Addr).Msg("running local server")
		if err := r.Run(cfg.Addr); err != nil {
			logger.Fatal().Err(err).Msg("failed to run local server")
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		// the adapter handles proxying; use adapter.ProxyWithContext for proper context propagation
		return adapter.ProxyWithContext(ctx, req)
	})
}
