package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/posts-api/internal/api/middleware"
	"github.com/phrazzld/posts-api/internal/api/pipeline"
	"github.com/phrazzld/posts-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestRecovererWritesFunnelResponse(t *testing.T) {
	buf, log, cleanup := logger.SetupTestLogger(t)
	defer cleanup()

	f := pipeline.NewFunnel(log)
	h := middleware.Recoverer(f)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("store exploded")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Something went wrong"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestRecovererAfterResponseStarted(t *testing.T) {
	f := pipeline.NewFunnel(discardLogger())
	h := middleware.Recoverer(f)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		panic("late")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRecovererRepanicsAbortHandler(t *testing.T) {
	f := pipeline.NewFunnel(discardLogger())
	h := middleware.Recoverer(f)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
