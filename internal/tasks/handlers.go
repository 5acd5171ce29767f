package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/zirz1911/global-security-hub/internal/cache"
)

// PageRenderer produces the HTML for cacheable pages. The server's page
// handler implements it so the worker re-warms with the same output the
// request path serves.
type PageRenderer interface {
	RenderHome(ctx context.Context) ([]byte, error)
	RenderOrganization(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type Handler struct {
	renderer  PageRenderer
	pageCache *cache.PageCache
	logger    *slog.Logger
}

func NewHandler(renderer PageRenderer, pageCache *cache.PageCache, logger *slog.Logger) *Handler {
	return &Handler{
		renderer:  renderer,
		pageCache: pageCache,
		logger:    logger,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypePageRevalidate, h.HandlePageRevalidate)
	mux.HandleFunc(TypeSchedulerTick, h.HandleSchedulerTick)
}

func (h *Handler) HandlePageRevalidate(ctx context.Context, t *asynq.Task) error {
	var payload PageRevalidatePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	h.logger.Info("revalidating pages", "paths", payload.Paths)

	for _, path := range payload.Paths {
		if err := h.rewarm(ctx, path); err != nil {
			h.logger.Error("failed to rewarm page", "path", path, "error", err)
		}
	}
	return nil
}

// HandleSchedulerTick refreshes the home page on the configured schedule
// so the cached copy never drifts past its window.
func (h *Handler) HandleSchedulerTick(ctx context.Context, t *asynq.Task) error {
	h.logger.Info("scheduled home page refresh")
	return h.rewarm(ctx, "/")
}

func (h *Handler) rewarm(ctx context.Context, path string) error {
	// Admin and other non-cacheable paths were already dropped from the
	// cache at enqueue time; nothing to rebuild.
	if !h.pageCache.Cacheable(path) {
		return nil
	}

	var (
		html []byte
		err  error
	)
	switch {
	case path == "/":
		html, err = h.renderer.RenderHome(ctx)
	case strings.HasPrefix(path, "/org/"):
		id, parseErr := uuid.Parse(strings.TrimPrefix(path, "/org/"))
		if parseErr != nil {
			return fmt.Errorf("invalid organization path %q: %w", path, parseErr)
		}
		html, err = h.renderer.RenderOrganization(ctx, id)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	h.pageCache.Set(ctx, path, html)
	return nil
}
