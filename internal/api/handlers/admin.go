package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/zirz1911/global-security-hub/internal/api/middleware"
	"github.com/zirz1911/global-security-hub/internal/database/models"
	"github.com/zirz1911/global-security-hub/internal/directory"
	"github.com/zirz1911/global-security-hub/internal/web"
)

// AdminHandler renders the admin console pages. Mutations go through the
// JSON API; these pages only read.
type AdminHandler struct {
	store     *directory.Store
	templates *web.Templates
	logger    *slog.Logger
}

func NewAdminHandler(store *directory.Store, templates *web.Templates, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{store: store, templates: templates, logger: logger}
}

type dashboardView struct {
	UserName   string
	Stats      directory.DashboardStats
	Recent     []models.Organization
	TypeCounts []directory.TypeCount
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.renderError(w, "failed to load dashboard stats", err)
		return
	}

	recent, err := h.store.RecentlyUpdated(r.Context(), 5)
	if err != nil {
		h.renderError(w, "failed to load recent organizations", err)
		return
	}

	summaries, err := h.store.ListSummaries(r.Context(), false)
	if err != nil {
		h.renderError(w, "failed to load organizations", err)
		return
	}

	h.render(w, "admin_dashboard.html", dashboardView{
		UserName:   middleware.GetUserName(r.Context()),
		Stats:      stats,
		Recent:     recent,
		TypeCounts: directory.CountByType(summaries),
	})
}

type organizationsView struct {
	UserName string
	Orgs     []directory.OrgWithCount
}

// Organizations handles GET /admin/organizations
func (h *AdminHandler) Organizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.store.ListWithPersonnelCounts(r.Context())
	if err != nil {
		h.renderError(w, "failed to list organizations", err)
		return
	}

	h.render(w, "admin_organizations.html", organizationsView{
		UserName: middleware.GetUserName(r.Context()),
		Orgs:     orgs,
	})
}

type orgFormView struct {
	UserName string
	Org      *models.Organization
}

// NewOrganizationForm handles GET /admin/organizations/new
func (h *AdminHandler) NewOrganizationForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin_org_form.html", orgFormView{
		UserName: middleware.GetUserName(r.Context()),
	})
}

// EditOrganizationForm handles GET /admin/organizations/{id}/edit
func (h *AdminHandler) EditOrganizationForm(w http.ResponseWriter, r *http.Request) {
	org, ok := h.loadOrg(w, r)
	if !ok {
		return
	}

	h.render(w, "admin_org_form.html", orgFormView{
		UserName: middleware.GetUserName(r.Context()),
		Org:      org,
	})
}

type personnelView struct {
	UserName string
	Org      *models.Organization
}

// Personnel handles GET /admin/organizations/{id}/personnel
func (h *AdminHandler) Personnel(w http.ResponseWriter, r *http.Request) {
	org, ok := h.loadOrg(w, r)
	if !ok {
		return
	}

	h.render(w, "admin_personnel.html", personnelView{
		UserName: middleware.GetUserName(r.Context()),
		Org:      org,
	})
}

type personnelFormView struct {
	UserName string
	Org      *models.Organization
	Person   *models.Personnel
}

// NewPersonnelForm handles GET /admin/organizations/{id}/personnel/new
func (h *AdminHandler) NewPersonnelForm(w http.ResponseWriter, r *http.Request) {
	org, ok := h.loadOrg(w, r)
	if !ok {
		return
	}

	h.render(w, "admin_personnel_form.html", personnelFormView{
		UserName: middleware.GetUserName(r.Context()),
		Org:      org,
	})
}

// EditPersonnelForm handles GET /admin/organizations/{id}/personnel/{personnelID}/edit
func (h *AdminHandler) EditPersonnelForm(w http.ResponseWriter, r *http.Request) {
	org, ok := h.loadOrg(w, r)
	if !ok {
		return
	}

	personnelID, err := uuid.Parse(chi.URLParam(r, "personnelID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var person *models.Personnel
	for i := range org.Personnel {
		if org.Personnel[i].ID == personnelID {
			person = &org.Personnel[i]
			break
		}
	}
	if person == nil {
		http.NotFound(w, r)
		return
	}

	h.render(w, "admin_personnel_form.html", personnelFormView{
		UserName: middleware.GetUserName(r.Context()),
		Org:      org,
		Person:   person,
	})
}

func (h *AdminHandler) loadOrg(w http.ResponseWriter, r *http.Request) (*models.Organization, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	org, err := h.store.GetOrganization(r.Context(), id)
	if err != nil {
		if errors.Is(err, directory.ErrOrganizationNotFound) {
			http.NotFound(w, r)
		} else {
			h.renderError(w, "failed to load organization", err)
		}
		return nil, false
	}
	return org, true
}

func (h *AdminHandler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.renderError(w, "failed to render "+name, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (h *AdminHandler) renderError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
