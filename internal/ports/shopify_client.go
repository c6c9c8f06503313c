package ports

import (
	"context"
	"encoding/json"

	"shopify-template-sync/internal/domain"
)

// Response is the result of an Admin API call.
// JSON is nil when the body was not valid JSON; Body always holds the raw bytes.
type Response struct {
	Status int
	Body   []byte
	JSON   any
}

// IsJSON reports whether the body parsed as JSON
func (r *Response) IsJSON() bool {
	return r != nil && r.JSON != nil
}

// Text returns the raw body
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// Decode unmarshals the body into v
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// AdminAPI performs a single authenticated call against a shop's Admin API.
// A nil payload issues a GET, anything else a JSON POST.
type AdminAPI interface {
	Do(ctx context.Context, url string, payload any) (*Response, error)
}

// ShopifyClient defines the Admin API operations the sync needs
type ShopifyClient interface {
	// Theme assets
	AssetExists(ctx context.Context, shop domain.ShopConfig, key string) (bool, error)
	ListAssets(ctx context.Context, shop domain.ShopConfig) ([]domain.Asset, error)

	// Files
	CreateImageFile(ctx context.Context, shop domain.ShopConfig, originalSource string) (*domain.FileCreateResult, error)
}

// ThemeTransfer moves a single theme file between a shop and the local working directory
type ThemeTransfer interface {
	Download(ctx context.Context, shop domain.ShopConfig, key string) error
	Deploy(ctx context.Context, shop domain.ShopConfig, key string, allowLive bool) error
	LocalPath(key string) string
}
