package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zirz1911/global-security-hub/internal/api/dto"
	"github.com/zirz1911/global-security-hub/internal/cache"
)

// Revalidator queues a background re-render of cached pages after the
// synchronous invalidation has already happened.
type Revalidator interface {
	EnqueueRevalidate(paths ...string) error
}

type RevalidateHandler struct {
	pageCache   *cache.PageCache
	revalidator Revalidator
	logger      *slog.Logger
}

func NewRevalidateHandler(pageCache *cache.PageCache, revalidator Revalidator, logger *slog.Logger) *RevalidateHandler {
	return &RevalidateHandler{
		pageCache:   pageCache,
		revalidator: revalidator,
		logger:      logger,
	}
}

type RevalidateRequest struct {
	Path string `json:"path,omitempty"`
}

// Revalidate handles POST /api/v1/revalidate. Without a path it flushes
// the default set of cached pages.
func (h *RevalidateHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	var req RevalidateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	paths := cache.DefaultPaths
	if req.Path != "" {
		if !strings.HasPrefix(req.Path, "/") {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Path must start with /"})
			return
		}
		paths = []string{req.Path}
	}

	h.pageCache.Invalidate(r.Context(), paths...)
	if h.revalidator != nil {
		if err := h.revalidator.EnqueueRevalidate(paths...); err != nil {
			h.logger.Warn("failed to enqueue revalidation", "paths", paths, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{
		Message: "Revalidation triggered",
		Data:    map[string]any{"paths": paths},
	})
}
