package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/phrazzld/posts-api/internal/config"
	"github.com/phrazzld/posts-api/internal/domain"
	"github.com/phrazzld/posts-api/internal/platform/memory"
	"github.com/phrazzld/posts-api/internal/platform/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 1,
		},
		Database: config.DatabaseConfig{
			Driver: config.DriverMemory,
		},
		Metrics: config.MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

func TestOpenStoreMemory(t *testing.T) {
	posts, err := openStore(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &memory.PostStore{}, posts)
}

func TestOpenStoreRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	posts, err := openStore(context.Background(), config.DatabaseConfig{
		Driver:    config.DriverRedis,
		URL:       "redis://" + mr.Addr(),
		KeyPrefix: "test:",
	}, discardLogger())
	require.NoError(t, err)
	defer func() { _ = posts.Close() }()
	assert.IsType(t, &redis.PostStore{}, posts)

	p, err := domain.NewPost("title", "content")
	require.NoError(t, err)
	require.NoError(t, posts.Create(context.Background(), p))
	assert.True(t, mr.Exists("test:post:"+p.ID.String()))
}

func TestOpenStoreErrors(t *testing.T) {
	ctx := context.Background()

	_, err := openStore(ctx, config.DatabaseConfig{Driver: "cassandra"}, discardLogger())
	assert.ErrorContains(t, err, `unsupported database driver "cassandra"`)

	_, err = openStore(ctx, config.DatabaseConfig{Driver: config.DriverRedis, URL: "not a url"}, discardLogger())
	assert.ErrorContains(t, err, "failed to open redis store")
}

func TestNewApplication(t *testing.T) {
	cfg := testConfig()

	app, err := newApplication(context.Background(), cfg, discardLogger())
	require.NoError(t, err)

	assert.NotNil(t, app.postService)
	assert.NotNil(t, app.metrics)
	assert.Len(t, app.controllers, 1)

	app.cleanup()
}

func TestNewApplicationWithoutMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false

	app, err := newApplicationWithStore(cfg, discardLogger(), memory.NewPostStore())
	require.NoError(t, err)
	assert.Nil(t, app.metrics)
}
