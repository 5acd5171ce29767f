package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/zirz1911/global-security-hub/internal/api/dto"
	"github.com/zirz1911/global-security-hub/internal/api/validation"
	"github.com/zirz1911/global-security-hub/internal/cache"
	"github.com/zirz1911/global-security-hub/internal/database/models"
	"github.com/zirz1911/global-security-hub/internal/directory"
)

type OrganizationHandler struct {
	store       *directory.Store
	pageCache   *cache.PageCache
	revalidator Revalidator
	logger      *slog.Logger
}

func NewOrganizationHandler(store *directory.Store, pageCache *cache.PageCache, revalidator Revalidator, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		store:       store,
		pageCache:   pageCache,
		revalidator: revalidator,
		logger:      logger,
	}
}

// OrganizationRequest carries both create and update payloads; the two
// operations require the same fields.
type OrganizationRequest struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name,omitempty"`
	Country     string `json:"country"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Established *int   `json:"established,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (r OrganizationRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	// Country is required but otherwise free text
	if r.Country == "" {
		errors["country"] = "Country is required"
	}
	if r.Type == "" {
		errors["type"] = "Type is required"
	} else if !models.IsValidOrgType(r.Type) {
		errors["type"] = "Invalid organization type"
	}
	if r.Email != "" && !validation.IsValidEmail(r.Email) {
		errors["email"] = "Invalid email format"
	}
	if r.Website != "" && !validation.IsValidURL(r.Website) {
		errors["website"] = "Invalid website URL"
	}
	if r.LogoURL != "" && !validation.IsValidURL(r.LogoURL) {
		errors["logo_url"] = "Invalid logo URL"
	}
	if r.Established != nil && !validation.IsValidYear(*r.Established) {
		errors["established"] = "Invalid established year"
	}
	return errors
}

func (r OrganizationRequest) toModel() *models.Organization {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return &models.Organization{
		Name:        r.Name,
		FullName:    r.FullName,
		Country:     r.Country,
		Type:        models.OrgType(r.Type),
		Description: r.Description,
		Website:     r.Website,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Established: r.Established,
		LogoURL:     r.LogoURL,
		IsActive:    isActive,
	}
}

// List handles GET /api/v1/orgs
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") != "false"

	summaries, err := h.store.ListSummaries(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("failed to list organizations", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list organizations"})
		return
	}

	filters := directory.Filters{
		Search:  r.URL.Query().Get("search"),
		Country: r.URL.Query().Get("country"),
		Type:    r.URL.Query().Get("type"),
	}
	filtered := directory.ApplyFilters(summaries, filters)

	pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))
	page := directory.Paginate(filtered, directory.PageSize, pageNum)

	writeJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:       page.Items,
		Total:      page.TotalItems,
		Page:       page.Number,
		PerPage:    directory.PageSize,
		TotalPages: page.TotalPages,
	})
}

// Get handles GET /api/v1/orgs/{id}
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid organization ID"})
		return
	}

	org, err := h.store.GetOrganization(r.Context(), id)
	if err != nil {
		if errors.Is(err, directory.ErrOrganizationNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Organization not found"})
			return
		}
		h.logger.Error("failed to get organization", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get organization"})
		return
	}

	writeJSON(w, http.StatusOK, org)
}

// Create handles POST /api/v1/orgs
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	org := req.toModel()
	if err := h.store.CreateOrganization(r.Context(), org); err != nil {
		if errors.Is(err, directory.ErrDuplicateName) {
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "An organization with this name already exists"})
			return
		}
		h.logger.Error("failed to create organization", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create organization"})
		return
	}

	h.revalidate(r, "/")

	writeJSON(w, http.StatusCreated, org)
}

// Update handles PUT /api/v1/orgs/{id}
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid organization ID"})
		return
	}

	var req OrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	org, err := h.store.UpdateOrganization(r.Context(), id, req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, directory.ErrOrganizationNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Organization not found"})
		case errors.Is(err, directory.ErrDuplicateName):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "An organization with this name already exists"})
		default:
			h.logger.Error("failed to update organization", "id", id, "error", err)
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update organization"})
		}
		return
	}

	h.revalidate(r, "/", cache.OrgPath(id), "/admin/organizations")

	writeJSON(w, http.StatusOK, org)
}

// Delete handles DELETE /api/v1/orgs/{id}
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid organization ID"})
		return
	}

	if err := h.store.DeleteOrganization(r.Context(), id); err != nil {
		var attached *directory.PersonnelAttachedError
		switch {
		case errors.Is(err, directory.ErrOrganizationNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Organization not found"})
		case errors.As(err, &attached):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{
				Error: fmt.Sprintf("Cannot delete organization with %d personnel. Please remove all personnel first.", attached.Count),
			})
		default:
			h.logger.Error("failed to delete organization", "id", id, "error", err)
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete organization"})
		}
		return
	}

	h.revalidate(r, "/", cache.OrgPath(id), "/admin/organizations")

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Organization deleted successfully"})
}

// revalidate drops the affected cached pages right away and queues a
// background re-warm.
func (h *OrganizationHandler) revalidate(r *http.Request, paths ...string) {
	h.pageCache.Invalidate(r.Context(), paths...)
	if h.revalidator != nil {
		if err := h.revalidator.EnqueueRevalidate(paths...); err != nil {
			h.logger.Warn("failed to enqueue revalidation", "paths", paths, "error", err)
		}
	}
}
