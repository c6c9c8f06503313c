package shopify

import (
	"context"
	"fmt"

	"shopify-template-sync/internal/domain"
	"shopify-template-sync/internal/ports"

	"github.com/rs/zerolog"
)

// DefaultAPIVersion is the Admin API version the tool was written against
const DefaultAPIVersion = "2022-10"

type client struct {
	api        ports.AdminAPI
	apiVersion string
	logger     zerolog.Logger
}

// NewClient creates a Shopify client adapter on top of a raw Admin API caller
func NewClient(api ports.AdminAPI, apiVersion string, logger zerolog.Logger) ports.ShopifyClient {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &client{
		api:        api,
		apiVersion: apiVersion,
		logger:     logger,
	}
}

// Asset API

// AssetExists probes a single asset key. Only a JSON object carrying a
// non-null "asset" member counts as existing; Shopify answers a missing key
// with {"errors":"Not Found"}.
func (c *client) AssetExists(ctx context.Context, shop domain.ShopConfig, key string) (bool, error) {
	if err := shop.Validate(); err != nil {
		return false, err
	}
	resp, err := c.api.Do(ctx, shop.AssetsURL(c.apiVersion, key), nil)
	if err != nil {
		return false, fmt.Errorf("failed to look up %s: %w", key, err)
	}
	obj, ok := resp.JSON.(map[string]any)
	if !ok {
		return false, nil
	}
	asset, ok := obj["asset"]
	return ok && asset != nil, nil
}

func (c *client) ListAssets(ctx context.Context, shop domain.ShopConfig) ([]domain.Asset, error) {
	if err := shop.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, shop.AssetsURL(c.apiVersion, ""), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	if !resp.IsJSON() {
		return nil, fmt.Errorf("unexpected asset list response from %s (status %d): %.200s", shop.Name, resp.Status, resp.Text())
	}
	var body struct {
		Assets []domain.Asset `json:"assets"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode asset list: %w", err)
	}
	return body.Assets, nil
}

// Files API

func (c *client) CreateImageFile(ctx context.Context, shop domain.ShopConfig, originalSource string) (*domain.FileCreateResult, error) {
	if err := shop.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, shop.GraphQLURL(c.apiVersion), fileCreateRequest(originalSource))
	if err != nil {
		return nil, fmt.Errorf("fileCreate failed for %s: %w", originalSource, err)
	}

	result := &domain.FileCreateResult{Source: originalSource, Status: resp.Status}
	if !resp.IsJSON() {
		result.Raw = resp.Text()
		return result, nil
	}

	var body fileCreateResponse
	if err := resp.Decode(&body); err != nil {
		// valid JSON of an unexpected shape
		result.Raw = resp.Text()
		return result, nil
	}
	result.Errors = graphQLErrorMessages(body.Errors)
	if body.Data != nil && body.Data.FileCreate != nil {
		result.Files = len(body.Data.FileCreate.Files)
		for _, ue := range body.Data.FileCreate.UserErrors {
			result.UserErrors = append(result.UserErrors, ue.Message)
		}
	}

	c.logger.Debug().
		Str("shop", shop.Name).
		Str("source", originalSource).
		Int("files", result.Files).
		Strs("errors", result.Errors).
		Strs("userErrors", result.UserErrors).
		Msg("fileCreate")

	return result, nil
}
