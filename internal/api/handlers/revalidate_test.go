package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zirz1911/global-security-hub/internal/api/handlers"
	"github.com/zirz1911/global-security-hub/internal/api/middleware"
	"github.com/zirz1911/global-security-hub/internal/cache"
	"github.com/zirz1911/global-security-hub/internal/testutil"
)

func setupRevalidateTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup, *fakeRevalidator) {
	tc := testutil.NewTestContext(t)

	logger := discardLogger()
	pageCache := cache.New(nil, logger, time.Hour, time.Hour)
	revalidator := &fakeRevalidator{}
	handler := handlers.NewRevalidateHandler(pageCache, revalidator, logger)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.Sessions))
		r.Post("/api/v1/revalidate", handler.Revalidate)
	})

	return r, tc, revalidator
}

func TestRevalidateHandler(t *testing.T) {
	router, tc, revalidator := setupRevalidateTestRouter(t)
	defer tc.Cleanup()

	t.Run("no body flushes the default paths", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/revalidate", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		require.NotEmpty(t, revalidator.paths)
		assert.ElementsMatch(t, cache.DefaultPaths, revalidator.paths[len(revalidator.paths)-1])
	})

	t.Run("explicit path", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/revalidate", map[string]string{
			"path": "/org/some-id",
		}, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"/org/some-id"}, revalidator.paths[len(revalidator.paths)-1])
	})

	t.Run("relative path is rejected", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/revalidate", map[string]string{
			"path": "org/some-id",
		}, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("requires auth", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/v1/revalidate", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
