package application

import (
	"context"
	"fmt"
	"os"

	"shopify-template-sync/internal/domain"
	"shopify-template-sync/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ImageSyncService re-creates the images a template references on a target shop
type ImageSyncService struct {
	client ports.ShopifyClient
	logger zerolog.Logger
}

// NewImageSyncService creates a new image sync service
func NewImageSyncService(client ports.ShopifyClient, logger zerolog.Logger) *ImageSyncService {
	return &ImageSyncService{
		client: client,
		logger: logger,
	}
}

// Resync uploads every shopify://shop_images reference found in the local
// template at path to target. The CDN base URL is always taken from source.
func (s *ImageSyncService) Resync(ctx context.Context, source domain.ShopConfig, target domain.ShopConfig, path string) (*domain.ImageSyncResult, error) {
	result := &domain.ImageSyncResult{Shop: target.Name}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.TemplateReadError{Path: path, Err: err}
	}
	if domain.IsEmptyTemplate(data) {
		s.logger.Debug().Str("path", path).Msg("Template is empty, no images to sync")
		return result, nil
	}

	doc, err := domain.ParseTemplate(data)
	if err != nil {
		return nil, err
	}
	refs := domain.CollectLegacyImageRefs(doc)
	if len(refs) == 0 {
		s.logger.Debug().Str("path", path).Msg("Template has no image references")
		return result, nil
	}

	assets, err := s.client.ListAssets(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets of %s: %w", source.Name, err)
	}
	base, err := domain.FilesBaseURLFromAssets(assets)
	if err != nil {
		return nil, err
	}

	result.URLs = make([]string, len(refs))
	for i, ref := range refs {
		result.URLs[i] = domain.ResolveImageURL(base, ref)
	}

	s.logger.Info().
		Str("shop", target.Name).
		Str("filesBase", base).
		Int("images", len(result.URLs)).
		Msg("Uploading images")

	results := make([]domain.FileCreateResult, len(result.URLs))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range result.URLs {
		g.Go(func() error {
			res, err := s.client.CreateImageFile(gctx, target, u)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", u, err)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Results = results

	for _, res := range results {
		if !res.OK() {
			s.logger.Warn().
				Str("shop", target.Name).
				Str("source", res.Source).
				Int("status", res.Status).
				Strs("errors", res.Errors).
				Strs("userErrors", res.UserErrors).
				Msg("Image upload not accepted")
		}
	}

	result.Failed, result.Message = domain.BatchVerdict(results)
	return result, nil
}
