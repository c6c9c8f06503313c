package shopify

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"shopify-template-sync/internal/domain"
	"shopify-template-sync/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

const liveThemeRole = "main"

// ThemeTransfer downloads and deploys single theme files through the Asset API.
// Local copies live under workDir, at the path of their asset key.
type ThemeTransfer struct {
	pool    *ClientPool
	workDir string
	logger  zerolog.Logger
}

// NewThemeTransfer creates a theme transfer rooted at workDir
func NewThemeTransfer(pool *ClientPool, workDir string, logger zerolog.Logger) *ThemeTransfer {
	if workDir == "" {
		workDir = "."
	}
	return &ThemeTransfer{
		pool:    pool,
		workDir: workDir,
		logger:  logger,
	}
}

var _ ports.ThemeTransfer = (*ThemeTransfer)(nil)

// LocalPath returns where the local copy of an asset key lives
func (t *ThemeTransfer) LocalPath(key string) string {
	return filepath.Join(t.workDir, filepath.FromSlash(key))
}

// Download fetches one asset of the shop's theme into the working directory
func (t *ThemeTransfer) Download(ctx context.Context, shop domain.ShopConfig, key string) error {
	c, err := t.pool.GetClient(shop)
	if err != nil {
		return err
	}

	asset, err := c.Asset.Get(ctx, uint64(shop.ThemeID), key)
	if err != nil {
		return fmt.Errorf("failed to get %s from %s (status %d): %w", key, shop.Name, responseStatus(err), err)
	}

	content, err := assetContent(asset)
	if err != nil {
		return err
	}

	dest := t.LocalPath(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	t.logger.Info().
		Str("shop", shop.Name).
		Str("key", key).
		Str("path", dest).
		Int("bytes", len(content)).
		Msg("Downloaded theme file")
	return nil
}

// Deploy uploads the local copy of key to the shop's theme.
// Without allowLive, deploying to the published theme is refused.
func (t *ThemeTransfer) Deploy(ctx context.Context, shop domain.ShopConfig, key string, allowLive bool) error {
	src := t.LocalPath(key)
	content, err := os.ReadFile(src)
	if err != nil {
		return &domain.TemplateReadError{Path: src, Err: err}
	}

	c, err := t.pool.GetClient(shop)
	if err != nil {
		return err
	}

	if !allowLive {
		theme, err := c.Theme.Get(ctx, uint64(shop.ThemeID), nil)
		if err != nil {
			return fmt.Errorf("failed to get theme %d of %s: %w", shop.ThemeID, shop.Name, err)
		}
		if theme.Role == liveThemeRole {
			return fmt.Errorf("%w: theme %d of %s", domain.ErrLiveTheme, shop.ThemeID, shop.Name)
		}
	}

	_, err = c.Asset.Update(ctx, uint64(shop.ThemeID), goshopify.Asset{
		Key:   key,
		Value: string(content),
	})
	if err != nil {
		return fmt.Errorf("failed to update %s on %s (status %d): %w", key, shop.Name, responseStatus(err), err)
	}

	t.logger.Info().
		Str("shop", shop.Name).
		Str("key", key).
		Int64("themeId", shop.ThemeID).
		Msg("Deployed theme file")
	return nil
}

// assetContent returns text assets as-is and decodes binary (attachment) ones
func assetContent(asset *goshopify.Asset) ([]byte, error) {
	if asset == nil {
		return nil, fmt.Errorf("empty asset response")
	}
	if asset.Value == "" && asset.Attachment != "" {
		data, err := base64.StdEncoding.DecodeString(asset.Attachment)
		if err != nil {
			return nil, fmt.Errorf("failed to decode attachment of %s: %w", asset.Key, err)
		}
		return data, nil
	}
	return []byte(asset.Value), nil
}
