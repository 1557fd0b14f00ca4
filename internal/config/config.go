package config

import (
	"os"
	"time"
)

// Config carries every environment-supplied setting the services need.
// Secrets stay here; the payment secret may be empty, in which case
// signature verification fails closed rather than being skipped.
type Config struct {
	OrdersTable        string
	ProductsTable      string
	PaymentEventsTable string
	CartsTable         string
	SettingsTable      string
	ContactsTable      string

	OrderEventsQueueURL string
	UploadBucket        string

	PaymentSecret string
	AdminPassword string

	EventTTL time.Duration
	RunLocal bool
	Addr     string
}

// Load reads configuration from the environment. Table names default to the
// conventional deployment names so local runs need only the secrets set.
func Load() Config {
	return Config{
		OrdersTable:        envOr("ORDERS_TABLE", "storefront-orders"),
		ProductsTable:      envOr("PRODUCTS_TABLE", "storefront-products"),
		PaymentEventsTable: envOr("PAYMENT_EVENTS_TABLE", "storefront-payment-events"),
		CartsTable:         envOr("CARTS_TABLE", "storefront-carts"),
		SettingsTable:      envOr("SETTINGS_TABLE", "storefront-settings"),
		ContactsTable:      envOr("CONTACTS_TABLE", "storefront-contacts"),

		OrderEventsQueueURL: os.Getenv("ORDER_EVENTS_QUEUE_URL"),
		UploadBucket:        os.Getenv("UPLOAD_BUCKET"),

		PaymentSecret: os.Getenv("PAYMENT_SECRET"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		EventTTL: 48 * time.Hour,
		RunLocal: os.Getenv("RUN_LOCAL") == "true",
		Addr:     envOr("ADDR", ":8080"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
