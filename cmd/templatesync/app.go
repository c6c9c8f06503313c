package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopify-template-sync/internal/application"
	"shopify-template-sync/internal/domain"
	"shopify-template-sync/internal/infrastructure/config"
	"shopify-template-sync/internal/infrastructure/console"
	"shopify-template-sync/internal/infrastructure/metrics"
	"shopify-template-sync/internal/infrastructure/prompt"
	"shopify-template-sync/internal/infrastructure/pubsub"
	"shopify-template-sync/internal/infrastructure/repository"
	"shopify-template-sync/internal/infrastructure/shopify"
	"shopify-template-sync/internal/ports"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const httpTimeout = 60 * time.Second

// app holds what every command needs
type app struct {
	opts     config.Options
	logger   zerolog.Logger
	reporter *console.Reporter
	shops    *domain.Shops
	closers  []func()
}

func newApp(cmd *cobra.Command) (*app, error) {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	logger, err := newLogger(v.GetString(config.KeyLogLevel), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	config.LoadDotEnv(logger)
	opts := config.LoadOptions(v)

	shops, err := config.LoadShops(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("config", opts.ConfigPath).
		Strs("shops", shops.Names()).
		Msg("Config loaded")

	return &app{
		opts:     opts,
		logger:   logger,
		reporter: console.NewReporter(cmd.OutOrStdout()),
		shops:    shops,
	}, nil
}

func newLogger(level string, out io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) httpClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// history connects to MongoDB when MONGODB_URI is set
func (a *app) history(ctx context.Context) (ports.SyncRunRepository, error) {
	if a.opts.MongoURI == "" {
		return nil, nil
	}
	client, err := repository.Connect(ctx, a.opts.MongoURI)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		_ = client.Disconnect(context.Background())
	})
	return repository.NewMongoSyncRunRepository(client.Database(a.opts.MongoDatabase)), nil
}

// eventBus wires the optional Redis and metrics sinks
func (a *app) eventBus(ctx context.Context) (*pubsub.EventBus, *metrics.Recorder) {
	bus := pubsub.NewEventBus(a.logger)

	var recorder *metrics.Recorder
	if a.opts.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		bus.Subscribe("metrics", recorder, nil)
	}

	if a.opts.RedisURL != "" {
		client, err := pubsub.NewRedisClient(ctx, a.opts.RedisURL)
		if err != nil {
			a.logger.Warn().Err(err).Msg("Redis unavailable, events will not be published")
		} else {
			a.closers = append(a.closers, func() { _ = client.Close() })
			bus.Subscribe("redis", pubsub.NewRedisPublisher(client, a.opts.RedisChannel, a.logger), nil)
		}
	}

	return bus, recorder
}

func runSync(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := cmd.Context()

	selector := application.NewSelector(a.shops, prompt.NewSurveyPrompter(), a.logger)
	session, err := selector.Select(a.opts.Env, a.opts.Template, a.opts.Shops)
	if err != nil {
		return err
	}

	httpClient := a.httpClient()
	requester := shopify.NewRequester(a.shops, a.logger, shopify.WithHTTPClient(httpClient))
	client := shopify.NewClient(requester, a.opts.APIVersion, a.logger)
	transfer := shopify.NewThemeTransfer(shopify.NewClientPool(a.opts.APIVersion, httpClient), a.opts.Dir, a.logger)

	bus, recorder := a.eventBus(ctx)
	opts := []application.TemplateSyncOption{
		application.WithAutoConfirm(a.opts.Yes),
		application.WithEventPublisher(bus),
	}
	repo, err := a.history(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("MongoDB unavailable, run history will not be saved")
	} else if repo != nil {
		opts = append(opts, application.WithHistory(repo))
	}

	svc := application.NewTemplateSyncService(
		a.shops,
		transfer,
		client,
		application.NewImageSyncService(client, a.logger),
		prompt.NewSurveyPrompter(),
		a.reporter,
		a.logger,
		opts...,
	)

	run, runErr := svc.Run(ctx, session)

	if recorder != nil {
		if run != nil && !run.FinishedAt.IsZero() {
			recorder.ObserveRun(run)
		}
		if err := recorder.WriteTextfile(a.opts.MetricsFile); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to write metrics")
		}
	}

	return runErr
}
