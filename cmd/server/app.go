package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/posts-api/internal/api"
	"github.com/phrazzld/posts-api/internal/api/middleware"
	"github.com/phrazzld/posts-api/internal/api/pipeline"
	"github.com/phrazzld/posts-api/internal/config"
	"github.com/phrazzld/posts-api/internal/events"
	"github.com/phrazzld/posts-api/internal/platform/memory"
	"github.com/phrazzld/posts-api/internal/platform/metrics"
	"github.com/phrazzld/posts-api/internal/platform/postgres"
	"github.com/phrazzld/posts-api/internal/platform/redis"
	"github.com/phrazzld/posts-api/internal/service"
	"github.com/phrazzld/posts-api/internal/store"
)

// application holds the shared application dependencies and owns their
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	posts       store.PostStore
	postService service.PostService

	eventEmitter *events.InMemoryEventEmitter

	funnel  *pipeline.Funnel
	metrics *metrics.Collector

	controllers []api.Controller
}

// newApplication connects the configured store and builds the services and
// controllers on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	posts, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return newApplicationWithStore(cfg, logger, posts)
}

func newApplicationWithStore(cfg *config.Config, logger *slog.Logger, posts store.PostStore) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		posts:  posts,
		funnel: pipeline.NewFunnel(logger).WithMapper(api.MapError),
	}

	if cfg.Metrics.Enabled {
		app.metrics = metrics.NewCollector()
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLoggingHandler(logger))
	if app.metrics != nil {
		app.eventEmitter.RegisterHandler(events.HandlerFunc(func(_ context.Context, e *events.PostEvent) error {
			app.metrics.PostEvent(string(e.Type))
			return nil
		}))
	}

	var err error
	app.postService, err = service.NewPostService(posts, logger, service.WithEventEmitter(app.eventEmitter))
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}

	gateOpts := []middleware.GateOption{
		middleware.WithForbidUnknownFields(cfg.Validation.ForbidUnknownFields),
		middleware.WithMetrics(app.metrics),
	}
	app.controllers = []api.Controller{
		api.NewPostHandler(app.postService, app.funnel, gateOpts...),
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// openStore connects to the post store selected by cfg.Driver.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.PostStore, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		posts, err := redis.Open(ctx, cfg.URL,
			redis.WithPrefix(cfg.KeyPrefix),
			redis.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return posts, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return postgres.NewPostgresPostStore(db, logger), nil

	case config.DriverMemory:
		logger.Warn("using in-memory post store, data will not survive a restart")
		return memory.NewPostStore(), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down and cleans up.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the store connection.
func (app *application) cleanup() {
	if app.posts != nil {
		if err := app.posts.Close(); err != nil {
			app.logger.Error("error closing post store", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
