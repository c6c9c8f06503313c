package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"shopify-template-sync/internal/domain"
	"shopify-template-sync/internal/ports"

	"github.com/rs/zerolog"
)

// shopSubdomain captures the config key from a store URL
var shopSubdomain = regexp.MustCompile(`https://(.+)\.myshopify`)

// Requester performs raw Admin API calls, authenticating each one with the
// password of the config entry named after the URL's shop subdomain.
type Requester struct {
	shops      *domain.Shops
	httpClient *http.Client
	logger     zerolog.Logger
}

// RequesterOption configures a Requester
type RequesterOption func(*Requester)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) RequesterOption {
	return func(r *Requester) {
		r.httpClient = client
	}
}

// NewRequester creates a requester bound to the loaded shop config
func NewRequester(shops *domain.Shops, logger zerolog.Logger, opts ...RequesterOption) *Requester {
	r := &Requester{
		shops:      shops,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.AdminAPI = (*Requester)(nil)

// Do issues a GET when payload is nil and a JSON POST otherwise.
// The body is returned parsed when it is JSON and raw in every case.
func (r *Requester) Do(ctx context.Context, url string, payload any) (*ports.Response, error) {
	m := shopSubdomain.FindStringSubmatch(url)
	if m == nil {
		return nil, fmt.Errorf("%w: no shop subdomain in %s", domain.ErrUnknownShop, url)
	}
	shop, err := r.shops.Lookup(m[1])
	if err != nil {
		return nil, err
	}
	if shop.Password == "" {
		return nil, fmt.Errorf("%w: %s has no password", domain.ErrIncompleteShop, shop.Name)
	}

	method := http.MethodGet
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request payload: %w", err)
		}
		method = http.MethodPost
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", shop.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", shop.Name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", shop.Name, err)
	}

	out := &ports.Response{Status: resp.StatusCode, Body: data}
	var parsed any
	if err := json.Unmarshal(data, &parsed); err == nil {
		out.JSON = parsed
	}

	r.logger.Debug().
		Str("shop", shop.Name).
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Bool("json", out.IsJSON()).
		Msg("Admin API call")

	return out, nil
}
