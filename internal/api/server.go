package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dealsync/internal/api/handlers"
	"dealsync/internal/api/middleware"
	"dealsync/internal/config"
	"dealsync/internal/events"
	"dealsync/internal/logger"
	"dealsync/internal/promo"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, mutator promo.CollectionMutator, publisher events.Publisher) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Initialize handlers
	webhookHandler := handlers.NewWebhookHandler(cfg, logger, mutator, publisher)

	// Health check endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Dealsync API is running",
			"status":  "healthy",
		})
	})

	// Routes
	v1 := router.Group("/api/v1")
	{
		shopify := v1.Group("/shopify")
		{
			shopify.POST("/webhook", webhookHandler.ProductUpdate)
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// GetRouter returns the Gin router for serverless deployments
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
