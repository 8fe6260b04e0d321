// Package pipeline runs HTTP handlers as an ordered chain of stages that
// return errors, and funnels every error into a single response path.
//
// A route is registered as
//
//	r.Post("/posts", pipeline.Handle(funnel, h.createPost, middleware.Validate(CreatePost)))
//
// Stages run in the order given, then the handler. The first stage to return
// an error stops the chain and the error goes to the Funnel, which writes
// exactly one response.
package pipeline

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handler is an http.HandlerFunc that reports failure by returning an error
// instead of writing an error response itself.
type Handler func(w http.ResponseWriter, r *http.Request) error

// Stage wraps a Handler. A stage either calls next or returns an error.
type Stage func(next Handler) Handler

// Chain builds a Handler that runs stages in order and then h.
func Chain(h Handler, stages ...Stage) Handler {
	for i := len(stages) - 1; i >= 0; i-- {
		h = stages[i](h)
	}
	return h
}

// Handle adapts a chain to net/http. A non-nil error from the chain is passed
// to f exactly once.
func Handle(f *Funnel, h Handler, stages ...Stage) http.HandlerFunc {
	chained := Chain(h, stages...)
	return func(w http.ResponseWriter, r *http.Request) {
		ww := wrap(w, r)
		if err := chained(ww, r); err != nil {
			f.Handle(ww, r, err)
		}
	}
}

// wrap returns w as a chi WrapResponseWriter so the funnel can tell whether
// a response was already started.
func wrap(w http.ResponseWriter, r *http.Request) chimw.WrapResponseWriter {
	if ww, ok := w.(chimw.WrapResponseWriter); ok {
		return ww
	}
	return chimw.NewWrapResponseWriter(w, r.ProtoMajor)
}
