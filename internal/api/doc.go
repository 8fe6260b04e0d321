// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services, translating HTTP concerns to
// business operations.
//
// Handlers are pipeline.Handler values: they return errors instead of
// writing error responses, and the funnel (see MapError) turns those errors
// into status codes and client messages.
package api
