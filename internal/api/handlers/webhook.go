package handlers

import (
	"encoding/json"
	"net/http"

	"dealsync/internal/config"
	"dealsync/internal/events"
	"dealsync/internal/logger"
	"dealsync/internal/promo"
	"dealsync/internal/services/shopify"

	"github.com/gin-gonic/gin"
)

// WebhookHandler runs one reconciliation pass per product webhook delivery:
// verify the signature, classify each variant, plan add/remove decisions and
// apply them against the deal collections.
type WebhookHandler struct {
	cfg       *config.Config
	promoCfg  promo.Config
	logger    *logger.Logger
	mutator   promo.CollectionMutator
	publisher events.Publisher
}

// NewWebhookHandler wires the handler. publisher may be nil when no event
// stream is configured.
func NewWebhookHandler(cfg *config.Config, logger *logger.Logger, mutator promo.CollectionMutator, publisher events.Publisher) *WebhookHandler {
	return &WebhookHandler{
		cfg:       cfg,
		promoCfg:  cfg.Promo(),
		logger:    logger,
		mutator:   mutator,
		publisher: publisher,
	}
}

// ProductUpdate handles products/create and products/update webhooks.
func (h *WebhookHandler) ProductUpdate(c *gin.Context) {
	// Other product topics registered against this endpoint are acked and
	// ignored so the platform does not retry them.
	topic := c.GetHeader("X-Shopify-Topic")
	if topic != "" && topic != "products/create" && topic != "products/update" {
		h.logger.Debug("Ignoring webhook topic: %s", topic)
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Webhook received but not processed"})
		return
	}

	if err := h.cfg.ValidateShopify(); err != nil {
		h.logger.Error("Webhook rejected: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	rawBody, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Failed to read payload"})
		return
	}

	if h.cfg.SkipHMACVerification {
		h.logger.Warn("HMAC verification bypassed (testing mode: SKIP_HMAC=1)")
	} else if !shopify.VerifyWebhookHMAC(rawBody, c.GetHeader(shopify.WebhookSignatureHeader), h.cfg.APISecret) {
		h.logger.Warn("Invalid webhook signature from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Invalid webhook signature"})
		return
	}

	var product shopify.Product
	if err := json.Unmarshal(rawBody, &product); err != nil {
		h.logger.Error("Failed to parse webhook payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid payload"})
		return
	}

	h.logger.Debug("Incoming product %d with %d variants", product.ID, len(product.Variants))

	decisions, stats := promo.Plan(product, h.promoCfg)
	if stats.UnrecognizedCities > 0 {
		h.logger.Debug("Skipped %d variants with unrecognized city", stats.UnrecognizedCities)
	}
	if stats.UnconfiguredDestinations > 0 {
		h.logger.Warn("Skipped %d variants: no collection GID configured for their city", stats.UnconfiguredDestinations)
	}
	for _, d := range decisions {
		h.logger.Debug("Variant %d (%s) price=%v cap=%v action=%s", d.VariantID, d.City, d.Price, d.CompareAtPrice, d.Action)
	}

	results := promo.Execute(c.Request.Context(), h.mutator, shopify.ProductGID(product.ID), decisions)
	for _, r := range results {
		if !r.OK {
			h.logger.Error("Mutation failed for %s %s: %s", r.City, r.Action, r.Error)
		}
	}

	if h.publisher != nil {
		event := events.ReconciliationEvent{
			Type:      events.TypeReconciled,
			ProductID: product.ID,
			Decisions: decisions,
			Results:   results,
		}
		if err := h.publisher.PublishReconciliation(c.Request.Context(), event); err != nil {
			// Best effort: the reconciliation already happened.
			h.logger.Error("Failed to publish reconciliation event: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"product_id": product.ID,
		"decisions":  decisions,
		"results":    results,
	})
}
