package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/modaline/storefront/internal/cart"
	"github.com/modaline/storefront/internal/catalog"
	"github.com/modaline/storefront/internal/contact"
	"github.com/modaline/storefront/internal/orders"
	"github.com/modaline/storefront/internal/payments"
	"github.com/modaline/storefront/internal/settings"
	"github.com/modaline/storefront/internal/storage"
	"github.com/modaline/storefront/internal/validation"
	"github.com/rs/zerolog"
)

// Config groups dependencies for the HTTP surface.
type Config struct {
	Catalog       *catalog.Store
	Orders        *orders.Store
	Settings      *settings.Store
	Contacts      *contact.Store
	Uploader      *storage.Uploader // nil when no bucket is configured
	CartPersister cart.Persister
	Processor     *payments.Processor

	PaymentSecret string
	AdminPassword string
	Logger        zerolog.Logger
}

// RegisterRoutes wires every route group onto the engine.
func RegisterRoutes(r *gin.Engine, cfg Config) {
	v := validation.New()

	RegisterProductRoutes(r, cfg)
	RegisterOrderRoutes(r, cfg, v)
	RegisterPaymentRoutes(r, cfg, v)
	RegisterCartRoutes(r, cfg, v)
	RegisterContactRoutes(r, cfg, v)
	RegisterSettingsRoutes(r, cfg)
	RegisterAdminRoutes(r, cfg, v)
}
