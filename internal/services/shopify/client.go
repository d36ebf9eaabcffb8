package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dealsync/internal/logger"
)

type Client struct {
	shopDomain  string
	accessToken string
	apiURL      string
	httpClient  *http.Client
	logger      *logger.Logger
}

// NewClient builds an Admin GraphQL API client. shopDomain is the full shop
// host, e.g. "my-store.myshopify.com".
func NewClient(shopDomain, accessToken, apiVersion string, logger *logger.Logger) *Client {
	return &Client{
		shopDomain:  shopDomain,
		accessToken: accessToken,
		apiURL:      fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, apiVersion),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// UserError is a field-level warning reported by an Admin API mutation.
// The mutation itself still succeeds.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func (e UserError) String() string {
	if len(e.Field) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", strings.Join(e.Field, "."), e.Message)
}

const addToCollectionMutation = `mutation AddToCollection($id: ID!, $pids: [ID!]!) {
  collectionAddProducts(id: $id, productIds: $pids) {
    userErrors { field message }
  }
}`

const removeFromCollectionMutation = `mutation RemoveFromCollection($id: ID!, $pids: [ID!]!) {
  collectionRemoveProducts(id: $id, productIds: $pids) {
    userErrors { field message }
  }
}`

// AddProductToCollection adds a product to a collection. Adding an
// already-present product is a no-op on the platform side.
func (c *Client) AddProductToCollection(ctx context.Context, collectionGID, productGID string) error {
	var result struct {
		CollectionAddProducts struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"collectionAddProducts"`
	}

	err := c.graphql(ctx, addToCollectionMutation, map[string]interface{}{
		"id":   collectionGID,
		"pids": []string{productGID},
	}, &result)
	if err != nil {
		return fmt.Errorf("collectionAddProducts: %w", err)
	}

	c.logUserErrors("collectionAddProducts", result.CollectionAddProducts.UserErrors)
	return nil
}

// RemoveProductFromCollection removes a product from a collection. Removing
// an absent product is a no-op on the platform side.
func (c *Client) RemoveProductFromCollection(ctx context.Context, collectionGID, productGID string) error {
	var result struct {
		CollectionRemoveProducts struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"collectionRemoveProducts"`
	}

	err := c.graphql(ctx, removeFromCollectionMutation, map[string]interface{}{
		"id":   collectionGID,
		"pids": []string{productGID},
	}, &result)
	if err != nil {
		return fmt.Errorf("collectionRemoveProducts: %w", err)
	}

	c.logUserErrors("collectionRemoveProducts", result.CollectionRemoveProducts.UserErrors)
	return nil
}

func (c *Client) logUserErrors(mutation string, userErrors []UserError) {
	for _, ue := range userErrors {
		c.logger.Warn("%s userError: %s", mutation, ue.String())
	}
}

// graphql executes a single Admin API request and decodes the data payload
// into out. A non-2xx status or any response-level GraphQL error fails the
// call with the status and body attached.
func (c *Client) graphql(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return fmt.Errorf("GraphQL errors: %s", strings.Join(messages, "; "))
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode data: %w", err)
		}
	}

	return nil
}
