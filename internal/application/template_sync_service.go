package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopify-template-sync/internal/domain"
	"shopify-template-sync/internal/ports"

	"github.com/rs/zerolog"
)

// TemplateSyncService fetches a template from the source shop and pushes it,
// with its images, to every selected shop in order
type TemplateSyncService struct {
	shops     *domain.Shops
	transfer  ports.ThemeTransfer
	client    ports.ShopifyClient
	images    *ImageSyncService
	prompter  ports.Prompter
	reporter  ports.Reporter
	publisher ports.EventPublisher
	history   ports.SyncRunRepository
	logger    zerolog.Logger

	autoConfirm bool
	now         func() time.Time
}

// TemplateSyncOption configures a TemplateSyncService
type TemplateSyncOption func(*TemplateSyncService)

// WithAutoConfirm answers every confirmation with yes, without prompting
func WithAutoConfirm(yes bool) TemplateSyncOption {
	return func(s *TemplateSyncService) { s.autoConfirm = yes }
}

// WithEventPublisher sends every step of a run to publisher
func WithEventPublisher(publisher ports.EventPublisher) TemplateSyncOption {
	return func(s *TemplateSyncService) { s.publisher = publisher }
}

// WithHistory saves each completed run to repo
func WithHistory(repo ports.SyncRunRepository) TemplateSyncOption {
	return func(s *TemplateSyncService) { s.history = repo }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) TemplateSyncOption {
	return func(s *TemplateSyncService) { s.now = now }
}

// NewTemplateSyncService creates a new template sync service
func NewTemplateSyncService(
	shops *domain.Shops,
	transfer ports.ThemeTransfer,
	client ports.ShopifyClient,
	images *ImageSyncService,
	prompter ports.Prompter,
	reporter ports.Reporter,
	logger zerolog.Logger,
	opts ...TemplateSyncOption,
) *TemplateSyncService {
	s := &TemplateSyncService{
		shops:    shops,
		transfer: transfer,
		client:   client,
		images:   images,
		prompter: prompter,
		reporter: reporter,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one sync. A failed fetch aborts with ErrTemplateNotFound
// before any target shop is touched; per-shop failures are reported and
// recorded in the returned run without stopping the loop.
func (s *TemplateSyncService) Run(ctx context.Context, session *domain.Session) (*domain.SyncRun, error) {
	source, err := s.shops.Lookup(session.Env)
	if err != nil {
		return nil, err
	}

	run := &domain.SyncRun{
		Source:    source.Name,
		Template:  session.Template,
		StartedAt: s.now(),
	}

	if err := s.transfer.Download(ctx, source, session.Template); err != nil {
		s.logger.Debug().
			Err(err).
			Str("shop", source.Name).
			Str("template", session.Template).
			Msg("Template download failed")
		return run, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, session.Template)
	}
	s.publish(ctx, run, domain.EventTemplateFetched, source.Name, "", 0)
	s.logger.Info().
		Str("shop", source.Name).
		Str("template", session.Template).
		Str("path", s.transfer.LocalPath(session.Template)).
		Msg("Template downloaded")

	for _, name := range session.Shops {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		outcome, err := s.syncShop(ctx, source, name, run)
		run.Outcomes = append(run.Outcomes, outcome)
		if err != nil {
			return run, err
		}
	}

	run.FinishedAt = s.now()
	s.saveHistory(ctx, run)

	s.reporter.Info("%s: %d shop(s) synced, %d with errors",
		run.Template, len(run.Outcomes)-run.Failures(), run.Failures())
	return run, nil
}

func (s *TemplateSyncService) syncShop(ctx context.Context, source domain.ShopConfig, name string, run *domain.SyncRun) (domain.ShopOutcome, error) {
	outcome := domain.ShopOutcome{Shop: name}

	target, err := s.shops.Lookup(name)
	if err != nil {
		return outcome, err
	}

	exists, err := s.client.AssetExists(ctx, target, run.Template)
	if err != nil {
		s.logger.Warn().Err(err).Str("shop", name).Msg("Existence check failed, treating template as absent")
		exists = false
	}
	outcome.Existed = exists

	push := true
	if exists {
		push, err = s.confirm(fmt.Sprintf("%s already has %s, overwrite?", name, run.Template), false)
		if err != nil {
			return outcome, err
		}
	}

	switch {
	case !push:
		outcome.PushSkipped = true
		s.reporter.Info("%s: kept the existing %s", name, run.Template)
		s.publish(ctx, run, domain.EventTemplateSkipped, name, "", 0)
	default:
		if err := s.transfer.Deploy(ctx, target, run.Template, true); err != nil {
			outcome.PushError = err.Error()
			s.reporter.Failure("%s: failed to push template", name)
			s.reporter.Detail("%v", err)
			s.publish(ctx, run, domain.EventTemplatePushFailed, name, err.Error(), 0)
		} else {
			outcome.Pushed = true
			s.reporter.Success("%s: template pushed", name)
			s.publish(ctx, run, domain.EventTemplatePushed, name, "", 0)
		}
	}

	// asked even when the push was declined
	upload, err := s.confirm(fmt.Sprintf("Upload images to %s?", name), true)
	if err != nil {
		return outcome, err
	}
	if !upload {
		return outcome, nil
	}
	outcome.ImagesRequested = true

	res, err := s.images.Resync(ctx, source, target, s.transfer.LocalPath(run.Template))
	if err != nil {
		outcome.ImageError = err.Error()
		s.reporter.Failure("%s: failed to upload images", name)
		s.reporter.Detail("%v", err)
		s.publish(ctx, run, domain.EventImagesFailed, name, err.Error(), 0)

		var readErr *domain.TemplateReadError
		if errors.As(err, &readErr) {
			return outcome, err
		}
		return outcome, nil
	}

	outcome.ImagesFound = len(res.URLs)
	outcome.ImagesUploaded = res.Uploaded()
	if res.Failed {
		outcome.ImageError = res.Message
		s.reporter.Failure("%s: failed to upload images", name)
		s.reporter.Detail("%s", res.Message)
		s.publish(ctx, run, domain.EventImagesFailed, name, res.Message, len(res.URLs)-res.Uploaded())
		return outcome, nil
	}

	s.reporter.Success("%s: images uploaded", name)
	s.publish(ctx, run, domain.EventImagesUploaded, name, "", res.Uploaded())
	return outcome, nil
}

func (s *TemplateSyncService) confirm(message string, defaultValue bool) (bool, error) {
	if s.autoConfirm {
		return true, nil
	}
	answer, err := s.prompter.Confirm(message, defaultValue)
	if err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return answer, nil
}

func (s *TemplateSyncService) publish(ctx context.Context, run *domain.SyncRun, t domain.SyncEventType, shop string, detail string, count int) {
	if s.publisher == nil {
		return
	}
	event := &domain.SyncEvent{
		Type:       t,
		Shop:       shop,
		Template:   run.Template,
		Detail:     detail,
		Count:      count,
		OccurredAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("type", string(t)).Msg("Failed to publish sync event")
	}
}

func (s *TemplateSyncService) saveHistory(ctx context.Context, run *domain.SyncRun) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, run); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to save sync run")
		return
	}
	s.logger.Debug().Str("runId", run.ID).Msg("Sync run saved")
}
