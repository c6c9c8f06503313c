package shopify

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"shopify-template-sync/internal/domain"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// ClientPool caches one go-shopify client per configured shop
type ClientPool struct {
	app        goshopify.App
	apiVersion string
	httpClient *http.Client

	mu      sync.Mutex
	clients map[string]*goshopify.Client
}

// NewClientPool creates a pool for the given Admin API version.
// A nil httpClient keeps go-shopify's default.
func NewClientPool(apiVersion string, httpClient *http.Client) *ClientPool {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &ClientPool{
		apiVersion: apiVersion,
		httpClient: httpClient,
		clients:    make(map[string]*goshopify.Client),
	}
}

// GetClient returns the client of a shop, creating it on first use
func (p *ClientPool) GetClient(shop domain.ShopConfig) (*goshopify.Client, error) {
	if err := shop.Validate(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[shop.Name]; ok {
		return c, nil
	}

	opts := []goshopify.Option{goshopify.WithVersion(p.apiVersion)}
	if p.httpClient != nil {
		opts = append(opts, goshopify.WithHTTPClient(p.httpClient))
	}
	c, err := goshopify.NewClient(p.app, shop.Store, shop.Password, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", shop.Name, err)
	}
	p.clients[shop.Name] = c
	return c, nil
}

// responseStatus returns the HTTP status carried by a go-shopify error, or 0
func responseStatus(err error) int {
	var rerr goshopify.ResponseError
	if errors.As(err, &rerr) {
		return rerr.Status
	}
	return 0
}
