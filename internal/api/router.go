package api

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/zirz1911/global-security-hub/internal/api/handlers"
	"github.com/zirz1911/global-security-hub/internal/api/middleware"
	"github.com/zirz1911/global-security-hub/internal/auth"
	"github.com/zirz1911/global-security-hub/internal/cache"
	"github.com/zirz1911/global-security-hub/internal/directory"
	"github.com/zirz1911/global-security-hub/internal/web"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router

	// Pages is exposed so the worker process can reuse the same renderer
	// for cache re-warms.
	Pages *handlers.PageHandler
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	Sessions       *auth.SessionService
	AuthService    *auth.Service
	PageCache      *cache.PageCache
	Revalidator    handlers.Revalidator
	Templates      *web.Templates
	StaticFS       fs.FS
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - applied globally to prevent abuse
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	// CORS - restrict to configured origins, or allow all in development
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		// Default to localhost for development - configure in production
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	store := directory.NewStore(cfg.DB)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.Sessions)
	orgHandler := handlers.NewOrganizationHandler(store, cfg.PageCache, cfg.Revalidator, cfg.Logger)
	personnelHandler := handlers.NewPersonnelHandler(store, cfg.PageCache, cfg.Revalidator, cfg.Logger)
	revalidateHandler := handlers.NewRevalidateHandler(cfg.PageCache, cfg.Revalidator, cfg.Logger)
	pageHandler := handlers.NewPageHandler(store, cfg.PageCache, cfg.Templates, cfg.Logger)
	adminHandler := handlers.NewAdminHandler(store, cfg.Templates, cfg.Logger)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// Public directory reads
		r.Get("/orgs", orgHandler.List)
		r.Get("/orgs/{id}", orgHandler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Sessions))

			r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
				userID := middleware.GetUserID(r.Context())
				user, err := cfg.AuthService.GetUserByID(r.Context(), userID)
				if err != nil {
					http.Error(w, "User not found", http.StatusNotFound)
					return
				}
				writeJSON(w, http.StatusOK, user)
			})

			// Organization mutations
			r.Post("/orgs", orgHandler.Create)
			r.Put("/orgs/{id}", orgHandler.Update)
			r.Delete("/orgs/{id}", orgHandler.Delete)

			// Personnel endpoints, scoped under their organization
			r.Route("/orgs/{id}/personnel", func(r chi.Router) {
				r.Post("/", personnelHandler.Create)
				r.Put("/{personnelID}", personnelHandler.Update)
				r.Delete("/{personnelID}", personnelHandler.Delete)
			})

			r.Post("/revalidate", revalidateHandler.Revalidate)
		})
	})

	// Public pages
	r.Get("/", pageHandler.Home)
	r.Get("/org/{id}", pageHandler.Organization)
	r.Get("/login", pageHandler.LoginPage)

	// Admin console
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Sessions))
		r.Get("/admin", adminHandler.Dashboard)
		r.Get("/admin/organizations", adminHandler.Organizations)
		r.Get("/admin/organizations/new", adminHandler.NewOrganizationForm)
		r.Get("/admin/organizations/{id}/edit", adminHandler.EditOrganizationForm)
		r.Get("/admin/organizations/{id}/personnel", adminHandler.Personnel)
		r.Get("/admin/organizations/{id}/personnel/new", adminHandler.NewPersonnelForm)
		r.Get("/admin/organizations/{id}/personnel/{personnelID}/edit", adminHandler.EditPersonnelForm)
	})

	// Static files
	if cfg.StaticFS != nil {
		fileServer := http.FileServer(http.FS(cfg.StaticFS))
		r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	return &Router{Router: r, Pages: pageHandler}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
