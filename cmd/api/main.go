package main

import (
	"log"

	"dealsync/internal/api"
	"dealsync/internal/config"
	"dealsync/internal/events"
	"dealsync/internal/logger"
	"dealsync/internal/services/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize Shopify Admin API client
	client := shopify.NewClient(cfg.ShopDomain, cfg.AdminAccessToken, cfg.APIVersion, logger)

	// Initialize event publisher
	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, logger)
	defer publisher.Close()

	// Initialize API server
	server := api.New(cfg, logger, client, publisher)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
