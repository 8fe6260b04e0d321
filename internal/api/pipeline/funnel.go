package pipeline

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/posts-api/internal/api/shared"
	"github.com/phrazzld/posts-api/internal/platform/logger"
	"github.com/phrazzld/posts-api/internal/redact"
)

// ErrorMapper classifies errors that are not already an *shared.HTTPError.
// It returns ok=false when it does not recognise err.
type ErrorMapper func(err error) (status int, message string, ok bool)

// Funnel is the single place where handler errors become HTTP responses.
// It is safe for concurrent use once built.
type Funnel struct {
	logger  *slog.Logger
	mappers []ErrorMapper
}

// NewFunnel creates a Funnel that logs with l.
func NewFunnel(l *slog.Logger) *Funnel {
	if l == nil {
		// ALLOW-PANIC: constructor dependency
		panic("logger cannot be nil")
	}
	return &Funnel{logger: l.With("component", "error_funnel")}
}

// WithMapper returns a copy of f that consults m for errors that are not
// an *shared.HTTPError. Mappers are tried in the order they were added.
func (f *Funnel) WithMapper(m ErrorMapper) *Funnel {
	mappers := make([]ErrorMapper, 0, len(f.mappers)+1)
	mappers = append(mappers, f.mappers...)
	return &Funnel{logger: f.logger, mappers: append(mappers, m)}
}

// Resolve returns the status code and client message for err.
func (f *Funnel) Resolve(err error) (int, string) {
	var httpErr *shared.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode(), httpErr.ClientMessage()
	}
	for _, m := range f.mappers {
		if status, msg, ok := m(err); ok {
			if msg == "" {
				msg = shared.DefaultErrorMessage
			}
			return shared.ValidStatus(status), msg
		}
	}
	return http.StatusInternalServerError, shared.DefaultErrorMessage
}

// Handle writes the error response for err. A nil err is treated as an
// unclassified failure. When the response has already been started, Handle
// only logs.
func (f *Funnel) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = errors.New("handler failed without an error value")
	}

	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, f.logger)

	if started(w) {
		log.ErrorContext(ctx, "error after response was started",
			slog.String("path", r.URL.Path),
			slog.String("method", r.Method),
			slog.String("error", redact.Error(err)))
		return
	}

	status, message := f.Resolve(err)
	r = r.WithContext(logger.WithLogger(ctx, log))
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// NotFound is the router's handler for unknown routes.
func (f *Funnel) NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.Handle(w, r, shared.NewHTTPError(http.StatusNotFound, "Not found"))
	}
}

// MethodNotAllowed is the router's handler for known routes hit with the wrong method.
func (f *Funnel) MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.Handle(w, r, shared.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed"))
	}
}

type statusReporter interface {
	Status() int
}

func started(w http.ResponseWriter) bool {
	if sr, ok := w.(statusReporter); ok {
		return sr.Status() != 0
	}
	return false
}
