package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/posts-api/internal/api/pipeline"
	"github.com/phrazzld/posts-api/internal/platform/logger"
)

// Recoverer turns a panic in a downstream handler into a 500 response
// written by the funnel. http.ErrAbortHandler is re-panicked.
func Recoverer(f *pipeline.Funnel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// ALLOW-PANIC: net/http uses this to abort the connection
					panic(rec)
				}

				logger.FromContext(r.Context()).Error("panic recovered",
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())))

				f.Handle(ww, r, fmt.Errorf("panic: %v", rec))
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
