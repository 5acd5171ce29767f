package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zirz1911/global-security-hub/internal/api/dto"
	"github.com/zirz1911/global-security-hub/internal/api/handlers"
	"github.com/zirz1911/global-security-hub/internal/auth"
	"github.com/zirz1911/global-security-hub/internal/testutil"
)

func setupAuthTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	authService := auth.NewService(tc.DB, tc.Sessions)
	handler := handlers.NewAuthHandler(authService, tc.Sessions)

	r := chi.NewRouter()
	r.Post("/api/v1/auth/login", handler.Login)
	r.Post("/api/v1/auth/logout", handler.Logout)

	return r, tc
}

func TestAuthHandler_Login(t *testing.T) {
	router, tc := setupAuthTestRouter(t)
	defer tc.Cleanup()

	t.Run("valid credentials set the session cookie", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/v1/auth/login", map[string]string{
			"email":    tc.User.Email,
			"password": "testpassword123",
		})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.True(t, resp.Success)
		assert.Equal(t, tc.User.Email, resp.User.Email)

		cookies := rr.Result().Cookies()
		require.NotEmpty(t, cookies)
		var session *http.Cookie
		for _, c := range cookies {
			if c.Name == auth.CookieName {
				session = c
			}
		}
		require.NotNil(t, session)
		assert.NotEmpty(t, session.Value)
		assert.True(t, session.HttpOnly)

		// The issued token must validate
		claims, err := tc.Sessions.Validate(session.Value)
		require.NoError(t, err)
		assert.Equal(t, tc.User.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/v1/auth/login", map[string]string{
			"email":    tc.User.Email,
			"password": "wrong-password",
		})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown email reports the same error as a bad password", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/v1/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "testpassword123",
		})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("inactive account", func(t *testing.T) {
		require.NoError(t, tc.DB.Model(tc.User).Update("is_active", false).Error)
		defer tc.DB.Model(tc.User).Update("is_active", true)

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/v1/auth/login", map[string]string{
			"email":    tc.User.Email,
			"password": "testpassword123",
		})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/v1/auth/login", map[string]string{
			"email": tc.User.Email,
		})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	router, tc := setupAuthTestRouter(t)
	defer tc.Cleanup()

	req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/auth/logout", nil, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var cleared *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
