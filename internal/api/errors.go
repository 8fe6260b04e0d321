package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/posts-api/internal/domain"
	"github.com/phrazzld/posts-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-friendly message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Post not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Post already exists"

	case errors.Is(err, domain.ErrPostTitleTooLong):
		return "title must be at most 200 characters"

	case errors.Is(err, domain.ErrPostContentTooLong):
		return "content must be at most 10000 characters"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid post data"

	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable"

	default:
		return "Something went wrong"
	}
}

// MapError is the funnel mapper for store and domain errors. Unrecognised
// errors are left to the funnel's default.
func MapError(err error) (int, string, bool) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		return 0, "", false
	}
	return status, GetSafeErrorMessage(err), true
}
