package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/posts-api/internal/api/pipeline"
	"github.com/phrazzld/posts-api/internal/api/shared"
	"github.com/phrazzld/posts-api/internal/platform/logger"
	"github.com/phrazzld/posts-api/internal/platform/metrics"
	"github.com/phrazzld/posts-api/internal/schema"
)

// InvalidRequestFormatMessage is returned when the body is not a JSON object.
const InvalidRequestFormatMessage = "Invalid request format"

// RequestTooLargeMessage is returned when the body exceeds shared.MaxBodyBytes.
const RequestTooLargeMessage = "Request body too large"

type instanceKey struct{}

// GateOption configures a validation gate.
type GateOption func(*gate)

type gate struct {
	schema  *schema.Schema
	opts    schema.EvalOptions
	metrics *metrics.Collector
}

// WithSkipMissingProperties leaves absent fields unchecked.
func WithSkipMissingProperties() GateOption {
	return func(g *gate) {
		g.opts.SkipMissingProperties = true
	}
}

// WithForbidUnknownFields rejects properties the schema does not declare.
func WithForbidUnknownFields(forbid bool) GateOption {
	return func(g *gate) {
		g.opts.ForbidUnknownFields = forbid
	}
}

// WithMetrics counts rejected bodies on c.
func WithMetrics(c *metrics.Collector) GateOption {
	return func(g *gate) {
		g.metrics = c
	}
}

// Validate returns a stage that checks the request body against s.
// On success the coerced Instance is available to later stages through
// InstanceFromContext. On failure the chain stops with a 400 HTTPError
// carrying every violation message.
func Validate(s *schema.Schema, opts ...GateOption) pipeline.Stage {
	if s == nil {
		// ALLOW-PANIC: routes are registered at startup
		panic("schema cannot be nil")
	}

	g := &gate{schema: s}
	for _, opt := range opts {
		opt(g)
	}

	return func(next pipeline.Handler) pipeline.Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			ctx := r.Context()

			raw, err := shared.DecodeJSONObject(r)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					return shared.WrapHTTPError(http.StatusRequestEntityTooLarge, RequestTooLargeMessage, err)
				}
				return shared.WrapHTTPError(http.StatusBadRequest, InvalidRequestFormatMessage, err)
			}

			inst, violations := g.schema.Check(ctx, raw, g.opts)
			if len(violations) > 0 {
				g.metrics.ValidationFailed(g.schema.Name())
				logger.FromContext(ctx).Debug("request body failed validation",
					slog.String("schema", g.schema.Name()),
					slog.Any("fields", violations.Fields()))
				return shared.BadRequest(violations.Message())
			}

			return next(w, r.WithContext(context.WithValue(ctx, instanceKey{}, inst)))
		}
	}
}

// ValidatePartial is Validate for partial updates: absent fields pass.
func ValidatePartial(s *schema.Schema, opts ...GateOption) pipeline.Stage {
	return Validate(s, append([]GateOption{WithSkipMissingProperties()}, opts...)...)
}

// InstanceFromContext returns the Instance stored by a validation gate.
func InstanceFromContext(ctx context.Context) (schema.Instance, bool) {
	inst, ok := ctx.Value(instanceKey{}).(schema.Instance)
	return inst, ok
}
