package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/posts-api/internal/domain"
	"github.com/phrazzld/posts-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantOK      bool
	}{
		{"not found", fmt.Errorf("get: %w", store.ErrPostNotFound), http.StatusNotFound, "Post not found", true},
		{"duplicate", store.ErrPostExists, http.StatusConflict, "Post already exists", true},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest, "Invalid post data", true},
		{"title too long", domain.ErrPostTitleTooLong, http.StatusBadRequest, "title must be at most 200 characters", true},
		{"content too long", domain.ErrPostContentTooLong, http.StatusBadRequest, "content must be at most 10000 characters", true},
		{"unavailable", store.ErrUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable", true},
		{"unknown", errors.New("boom"), 0, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, msg, ok := MapError(tc.err)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantMessage, msg)
		})
	}
}

func TestGetSafeErrorMessageDefault(t *testing.T) {
	assert.Equal(t, "Something went wrong", GetSafeErrorMessage(errors.New("pq: secret")))
	assert.Equal(t, http.StatusInternalServerError, MapErrorToStatusCode(errors.New("x")))
}
