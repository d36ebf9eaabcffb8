// Package handler exposes the webhook API as a single serverless function.
package handler

import (
	"net/http"
	"sync"

	"dealsync/internal/api"
	"dealsync/internal/config"
	"dealsync/internal/logger"
	"dealsync/internal/services/shopify"

	"github.com/gin-gonic/gin"
)

var (
	initOnce sync.Once
	router   *gin.Engine
	initErr  error
)

func setup() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}

	log := logger.New(cfg.LogLevel)
	client := shopify.NewClient(cfg.ShopDomain, cfg.AdminAccessToken, cfg.APIVersion, log)

	// No event publisher in the serverless runtime; reconciliation results
	// are returned in the response body only.
	server := api.New(cfg, log, client, nil)
	router = server.GetRouter()
}

// Handler is the Vercel entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(setup)
	if initErr != nil {
		http.Error(w, "service initialization failed", http.StatusInternalServerError)
		return
	}
	router.ServeHTTP(w, r)
}
