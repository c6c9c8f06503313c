package shopify

import (
	"context"
	"fmt"
	"net/http"

	"shopify-template-sync/internal/domain"

	"github.com/rs/zerolog"
)

// AccessChecker verifies that configured access tokens are still accepted
type AccessChecker struct {
	pool   *ClientPool
	logger zerolog.Logger
}

// NewAccessChecker creates a new access checker
func NewAccessChecker(pool *ClientPool, logger zerolog.Logger) *AccessChecker {
	return &AccessChecker{
		pool:   pool,
		logger: logger,
	}
}

// AccessStatus is the result of checking one shop
type AccessStatus struct {
	Shop     string
	Valid    bool
	ShopName string
	Err      error
}

// Check makes a lightweight shop.json call with the shop's token.
// A 401 or 403 means the token is invalid or revoked; other failures are returned as errors.
func (a *AccessChecker) Check(ctx context.Context, shop domain.ShopConfig) (bool, string, error) {
	c, err := a.pool.GetClient(shop)
	if err != nil {
		return false, "", err
	}

	info, err := c.Shop.Get(ctx, nil)
	if err != nil {
		status := responseStatus(err)
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			a.logger.Warn().
				Str("shop", shop.Name).
				Int("status", status).
				Msg("Token validation failed: token is invalid or revoked")
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to get shop %s: %w", shop.Name, err)
	}

	a.logger.Debug().
		Str("shop", shop.Name).
		Msg("Token validation successful")
	return true, info.Name, nil
}

// CheckAll checks every shop in declaration order
func (a *AccessChecker) CheckAll(ctx context.Context, shops *domain.Shops) []AccessStatus {
	statuses := make([]AccessStatus, 0, shops.Len())
	for _, name := range shops.Names() {
		cfg, _ := shops.Get(name)
		valid, shopName, err := a.Check(ctx, cfg)
		statuses = append(statuses, AccessStatus{
			Shop:     name,
			Valid:    valid,
			ShopName: shopName,
			Err:      err,
		})
	}
	return statuses
}
