package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/zirz1911/global-security-hub/internal/api/dto"
	"github.com/zirz1911/global-security-hub/internal/api/validation"
	"github.com/zirz1911/global-security-hub/internal/cache"
	"github.com/zirz1911/global-security-hub/internal/database/models"
	"github.com/zirz1911/global-security-hub/internal/directory"
)

type PersonnelHandler struct {
	store       *directory.Store
	pageCache   *cache.PageCache
	revalidator Revalidator
	logger      *slog.Logger
}

func NewPersonnelHandler(store *directory.Store, pageCache *cache.PageCache, revalidator Revalidator, logger *slog.Logger) *PersonnelHandler {
	return &PersonnelHandler{
		store:       store,
		pageCache:   pageCache,
		revalidator: revalidator,
		logger:      logger,
	}
}

type PersonnelRequest struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	Rank      string `json:"rank,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
	IsCurrent *bool  `json:"is_current,omitempty"`
	StartDate string `json:"start_date,omitempty"`
}

func (r PersonnelRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.Position == "" {
		errors["position"] = "Position is required"
	}
	if r.PhotoURL != "" && !validation.IsValidURL(r.PhotoURL) {
		errors["photo_url"] = "Invalid photo URL"
	}
	if r.StartDate != "" {
		if _, err := time.Parse("2006-01-02", r.StartDate); err != nil {
			errors["start_date"] = "Start date must be in YYYY-MM-DD format"
		}
	}
	return errors
}

func (r PersonnelRequest) toModel(orgID uuid.UUID) *models.Personnel {
	isCurrent := true
	if r.IsCurrent != nil {
		isCurrent = *r.IsCurrent
	}
	p := &models.Personnel{
		OrganizationID: orgID,
		Name:           r.Name,
		Position:       r.Position,
		Rank:           r.Rank,
		PhotoURL:       r.PhotoURL,
		Bio:            r.Bio,
		IsCurrent:      isCurrent,
	}
	if r.StartDate != "" {
		if t, err := time.Parse("2006-01-02", r.StartDate); err == nil {
			p.StartDate = &t
		}
	}
	return p
}

// Create handles POST /api/v1/orgs/{id}/personnel
func (h *PersonnelHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid organization ID"})
		return
	}

	var req PersonnelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	person := req.toModel(orgID)
	if err := h.store.CreatePersonnel(r.Context(), orgID, person); err != nil {
		if errors.Is(err, directory.ErrOrganizationNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Organization not found"})
			return
		}
		h.logger.Error("failed to create personnel", "org_id", orgID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create personnel"})
		return
	}

	h.revalidate(r, cache.OrgPath(orgID))

	writeJSON(w, http.StatusCreated, person)
}

// Update handles PUT /api/v1/orgs/{id}/personnel/{personnelID}
func (h *PersonnelHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, personnelID, ok := h.parseIDs(w, r)
	if !ok {
		return
	}

	var req PersonnelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	person, err := h.store.UpdatePersonnel(r.Context(), orgID, personnelID, req.toModel(orgID))
	if err != nil {
		h.writeStoreError(w, err, orgID, personnelID)
		return
	}

	h.revalidate(r, cache.OrgPath(orgID))

	writeJSON(w, http.StatusOK, person)
}

// Delete handles DELETE /api/v1/orgs/{id}/personnel/{personnelID}
func (h *PersonnelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, personnelID, ok := h.parseIDs(w, r)
	if !ok {
		return
	}

	if err := h.store.DeletePersonnel(r.Context(), orgID, personnelID); err != nil {
		h.writeStoreError(w, err, orgID, personnelID)
		return
	}

	h.revalidate(r, cache.OrgPath(orgID))

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Personnel deleted successfully"})
}

func (h *PersonnelHandler) parseIDs(w http.ResponseWriter, r *http.Request) (orgID, personnelID uuid.UUID, ok bool) {
	orgID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid organization ID"})
		return uuid.Nil, uuid.Nil, false
	}
	personnelID, err = uuid.Parse(chi.URLParam(r, "personnelID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid personnel ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return orgID, personnelID, true
}

func (h *PersonnelHandler) writeStoreError(w http.ResponseWriter, err error, orgID, personnelID uuid.UUID) {
	switch {
	case errors.Is(err, directory.ErrOrganizationNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Organization not found"})
	case errors.Is(err, directory.ErrPersonnelNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Personnel not found"})
	case errors.Is(err, directory.ErrWrongOrganization):
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "Personnel does not belong to this organization"})
	default:
		h.logger.Error("personnel operation failed", "org_id", orgID, "personnel_id", personnelID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Operation failed"})
	}
}

func (h *PersonnelHandler) revalidate(r *http.Request, orgPath string) {
	paths := append([]string{}, cache.DefaultPaths...)
	paths = append(paths, orgPath)
	h.pageCache.Invalidate(r.Context(), paths...)
	if h.revalidator != nil {
		if err := h.revalidator.EnqueueRevalidate(paths...); err != nil {
			h.logger.Warn("failed to enqueue revalidation", "paths", paths, "error", err)
		}
	}
}
