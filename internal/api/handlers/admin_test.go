package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zirz1911/global-security-hub/internal/api/handlers"
	"github.com/zirz1911/global-security-hub/internal/api/middleware"
	"github.com/zirz1911/global-security-hub/internal/directory"
	"github.com/zirz1911/global-security-hub/internal/testutil"
	"github.com/zirz1911/global-security-hub/internal/web"
)

func setupAdminTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	templates, err := web.LoadTemplates()
	require.NoError(t, err)

	store := directory.NewStore(tc.DB)
	handler := handlers.NewAdminHandler(store, templates, discardLogger())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.Sessions))
		r.Get("/admin", handler.Dashboard)
		r.Get("/admin/organizations", handler.Organizations)
		r.Get("/admin/organizations/new", handler.NewOrganizationForm)
		r.Get("/admin/organizations/{id}/edit", handler.EditOrganizationForm)
		r.Get("/admin/organizations/{id}/personnel", handler.Personnel)
	})

	return r, tc
}

func TestAdminHandler_Dashboard(t *testing.T) {
	router, tc := setupAdminTestRouter(t)
	defer tc.Cleanup()

	org := testutil.CreateTestOrg(t, tc.DB, "Interpol")
	testutil.CreateTestPersonnel(t, tc.DB, org.ID, "Jane Doe")

	req := testutil.AuthenticatedRequest(t, "GET", "/admin", nil, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := rr.Body.String()
	assert.Contains(t, body, tc.User.Name)
	assert.Contains(t, body, "Interpol")
}

func TestAdminHandler_RequiresSession(t *testing.T) {
	router, tc := setupAdminTestRouter(t)
	defer tc.Cleanup()

	req := testutil.UnauthenticatedRequest(t, "GET", "/admin", nil)
	req.Header.Set("Accept", "text/html")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestAdminHandler_Organizations(t *testing.T) {
	router, tc := setupAdminTestRouter(t)
	defer tc.Cleanup()

	org := testutil.CreateTestOrg(t, tc.DB, "Staffed Org")
	testutil.CreateTestPersonnel(t, tc.DB, org.ID, "One")
	testutil.CreateTestPersonnel(t, tc.DB, org.ID, "Two")

	req := testutil.AuthenticatedRequest(t, "GET", "/admin/organizations", nil, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Staffed Org")
}

func TestAdminHandler_Forms(t *testing.T) {
	router, tc := setupAdminTestRouter(t)
	defer tc.Cleanup()

	org := testutil.CreateTestOrg(t, tc.DB, "Editable Org")

	t.Run("new form", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/admin/organizations/new", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "New Organization")
	})

	t.Run("edit form is prefilled", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/admin/organizations/"+org.ID.String()+"/edit", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Editable Org")
	})

	t.Run("edit form for unknown org is 404", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/admin/organizations/00000000-0000-0000-0000-000000000000/edit", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
