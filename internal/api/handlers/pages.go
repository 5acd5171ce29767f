package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/zirz1911/global-security-hub/internal/cache"
	"github.com/zirz1911/global-security-hub/internal/database/models"
	"github.com/zirz1911/global-security-hub/internal/directory"
	"github.com/zirz1911/global-security-hub/internal/web"
)

// PageHandler renders the public HTML pages. Unfiltered first pages are
// served from the page cache when one is configured.
type PageHandler struct {
	store     *directory.Store
	pageCache *cache.PageCache
	templates *web.Templates
	logger    *slog.Logger
}

func NewPageHandler(store *directory.Store, pageCache *cache.PageCache, templates *web.Templates, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		store:     store,
		pageCache: pageCache,
		templates: templates,
		logger:    logger,
	}
}

type homeView struct {
	Orgs       []directory.OrgSummary
	Page       directory.Page
	Window     []int
	Filters    directory.Filters
	Countries  []string
	TypeCounts []directory.TypeCount
	TotalOrgs  int
	Query      string
}

type orgView struct {
	Org    *models.Organization
	Active []models.Personnel
	Former []models.Personnel
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	filters := directory.Filters{
		Search:  r.URL.Query().Get("search"),
		Country: r.URL.Query().Get("country"),
		Type:    r.URL.Query().Get("type"),
	}
	pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))

	// Only the unfiltered first page hits the cache; filtered views vary
	// too much to be worth keeping.
	cacheable := filters.IsZero() && pageNum <= 1
	if cacheable {
		if html, ok := h.pageCache.Get(r.Context(), "/"); ok {
			writeHTML(w, html)
			return
		}
	}

	html, err := h.renderHome(r.Context(), filters, pageNum)
	if err != nil {
		h.logger.Error("failed to render home page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if cacheable {
		h.pageCache.Set(r.Context(), "/", html)
	}
	writeHTML(w, html)
}

// Organization handles GET /org/{id}
func (h *PageHandler) Organization(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	path := cache.OrgPath(id)
	if html, ok := h.pageCache.Get(r.Context(), path); ok {
		writeHTML(w, html)
		return
	}

	html, err := h.RenderOrganization(r.Context(), id)
	if err != nil {
		if errors.Is(err, directory.ErrOrganizationNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("failed to render organization page", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pageCache.Set(r.Context(), path, html)
	writeHTML(w, html)
}

// LoginPage handles GET /login
func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "login.html", nil); err != nil {
		h.logger.Error("failed to render login page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

// RenderHome produces the default home page, used both by the request
// path and by the background re-warm worker.
func (h *PageHandler) RenderHome(ctx context.Context) ([]byte, error) {
	return h.renderHome(ctx, directory.Filters{}, 1)
}

func (h *PageHandler) renderHome(ctx context.Context, filters directory.Filters, pageNum int) ([]byte, error) {
	summaries, err := h.store.ListSummaries(ctx, true)
	if err != nil {
		return nil, err
	}

	filtered := directory.ApplyFilters(summaries, filters)
	page := directory.Paginate(filtered, directory.PageSize, pageNum)

	view := homeView{
		Orgs:       page.Items,
		Page:       page,
		Window:     directory.PageWindow(page.Number, page.TotalPages),
		Filters:    filters,
		Countries:  directory.DistinctCountries(summaries),
		TypeCounts: directory.CountByType(summaries),
		TotalOrgs:  len(summaries),
		Query:      filterQuery(filters),
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "home.html", view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderOrganization produces the detail page for one organization.
func (h *PageHandler) RenderOrganization(ctx context.Context, id uuid.UUID) ([]byte, error) {
	org, err := h.store.GetOrganization(ctx, id)
	if err != nil {
		return nil, err
	}

	active, former := directory.SplitCurrent(org.Personnel)
	view := orgView{Org: org, Active: active, Former: former}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "org.html", view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// filterQuery rebuilds the filter portion of the query string so
// pagination links keep the active filters.
func filterQuery(f directory.Filters) string {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Country != "" {
		q.Set("country", f.Country)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if len(q) == 0 {
		return ""
	}
	return "&" + q.Encode()
}

func writeHTML(w http.ResponseWriter, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}
