package config

import (
	"fmt"
	"os"

	"dealsync/internal/promo"

	"github.com/joho/godotenv"
)

type Config struct {
	// Shopify
	ShopDomain       string
	AdminAccessToken string
	APISecret        string
	APIVersion       string

	// Webhook verification
	SkipHMACVerification bool

	// Classification
	CitySource             string
	CityMetafieldNamespace string
	CityMetafieldKey       string

	PromoSource             string
	PromoMetafieldNamespace string
	PromoMetafieldKey       string

	// Deal collections, one per city. Empty means no managed collection.
	JeddahCollectionGID string
	RiyadhCollectionGID string
	DammamCollectionGID string

	// Kafka
	KafkaBrokers string

	// Database (worker audit trail)
	DatabaseURL string

	// API Configuration
	APIPort string
	APIHost string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		ShopDomain:              getEnv("SHOPIFY_SHOP", ""),
		AdminAccessToken:        getEnv("SHOPIFY_ADMIN_ACCESS_TOKEN", ""),
		APISecret:               getEnv("SHOPIFY_API_SECRET", ""),
		APIVersion:              getEnv("SHOPIFY_API_VERSION", "2025-10"),
		SkipHMACVerification:    getEnv("SKIP_HMAC", "") == "1",
		CitySource:              getEnv("CITY_SOURCE", "title"),
		CityMetafieldNamespace:  getEnv("CITY_METAFIELD_NAMESPACE", "custom"),
		CityMetafieldKey:        getEnv("CITY_METAFIELD_KEY", "city"),
		PromoSource:             getEnv("PROMO_SOURCE", "price"),
		PromoMetafieldNamespace: getEnv("PROMO_METAFIELD_NAMESPACE", "custom"),
		PromoMetafieldKey:       getEnv("PROMO_METAFIELD_KEY", "promo_active"),
		JeddahCollectionGID:     getEnv("DEALS_JEDDAH_COLLECTION_GID", ""),
		RiyadhCollectionGID:     getEnv("DEALS_RIYADH_COLLECTION_GID", ""),
		DammamCollectionGID:     getEnv("DEALS_DAMMAM_COLLECTION_GID", ""),
		KafkaBrokers:            getEnv("KAFKA_BROKERS", "localhost:9092"),
		DatabaseURL:             getEnv("DATABASE_URL", "sqlite://dealsync.db"),
		APIPort:                 getEnv("API_PORT", "8080"),
		APIHost:                 getEnv("API_HOST", "0.0.0.0"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
	}, nil
}

// ValidateShopify checks the credentials the webhook handler cannot run without.
func (c *Config) ValidateShopify() error {
	if c.ShopDomain == "" || c.AdminAccessToken == "" || c.APISecret == "" {
		return fmt.Errorf("missing env vars SHOPIFY_SHOP / SHOPIFY_ADMIN_ACCESS_TOKEN / SHOPIFY_API_SECRET")
	}
	return nil
}

// Promo materializes the immutable classification config threaded through
// the extractor and planner.
func (c *Config) Promo() promo.Config {
	return promo.Config{
		CitySource:              promo.ParseCitySource(c.CitySource),
		CityMetafieldNamespace:  c.CityMetafieldNamespace,
		CityMetafieldKey:        c.CityMetafieldKey,
		PromoSource:             promo.ParsePromoSource(c.PromoSource),
		PromoMetafieldNamespace: c.PromoMetafieldNamespace,
		PromoMetafieldKey:       c.PromoMetafieldKey,
		Collections: map[promo.City]string{
			promo.CityJeddah: c.JeddahCollectionGID,
			promo.CityRiyadh: c.RiyadhCollectionGID,
			promo.CityDammam: c.DammamCollectionGID,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
