package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/posts-api/internal/api/middleware"
	"github.com/phrazzld/posts-api/internal/api/pipeline"
	"github.com/phrazzld/posts-api/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollectorWithRegistry(reg)

	r := chi.NewRouter()
	r.Use(middleware.Metrics(c))
	r.Get("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	for _, path := range []string{"/posts/a", "/posts/b", "/health", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP posts_api_http_requests_total Total number of HTTP requests by route, method and status code
# TYPE posts_api_http_requests_total counter
posts_api_http_requests_total{code="200",method="GET",route="/health"} 1
posts_api_http_requests_total{code="404",method="GET",route="/posts/{id}"} 2
posts_api_http_requests_total{code="404",method="GET",route="unmatched"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "posts_api_http_requests_total"))
}

func TestMetricsCountsPanickingRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollectorWithRegistry(reg)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(pipeline.NewFunnel(slog.New(slog.NewTextHandler(io.Discard, nil)))))
	r.Use(middleware.Metrics(c))
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	expected := `
# HELP posts_api_http_requests_total Total number of HTTP requests by route, method and status code
# TYPE posts_api_http_requests_total counter
posts_api_http_requests_total{code="500",method="GET",route="/boom"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "posts_api_http_requests_total"))
}
