package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/posts-api/internal/platform/metrics"
)

// unmatchedRoute labels requests that matched no route, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency per chi route pattern.
// Requests that panic are counted as 500.
func Metrics(c *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			completed := false
			defer func() {
				status := ww.Status()
				switch {
				case !completed:
					// Panicking; a recoverer further out answers with 500.
					status = http.StatusInternalServerError
				case status == 0:
					status = http.StatusOK
				}
				c.ObserveRequest(routePattern(r), r.Method, status, time.Since(start))
			}()

			next.ServeHTTP(ww, r)
			completed = true
		})
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
