// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mixlist/mixlist/internal/analytics"
	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/core/genre"
	"github.com/mixlist/mixlist/internal/core/playlist"
	"github.com/mixlist/mixlist/internal/media"
	"github.com/mixlist/mixlist/internal/platform/config"
	"github.com/mixlist/mixlist/internal/platform/constants"
	"github.com/mixlist/mixlist/internal/platform/middleware"
	"github.com/mixlist/mixlist/internal/platform/sec"
	"github.com/mixlist/mixlist/internal/upload"
	"github.com/mixlist/mixlist/internal/users/account"
	"github.com/mixlist/mixlist/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, logout, and the /me profile.
	Auth *auth.Handler

	// Account handles user administration and profile updates.
	Account *account.Handler

	// UserFeeds serves per-user favorites and recommendation feeds.
	UserFeeds *playlist.UserFeedHandler

	// Genre handles the genre taxonomy.
	Genre *genre.Handler

	// Playlist handles playlists, their songs, and social interactions.
	Playlist *playlist.Handler

	// Discover serves the public trending/new/popular-genre feeds.
	Discover *playlist.DiscoverHandler

	// Media resolves song metadata from the external providers.
	Media *media.Handler

	// Upload stores and removes cover-art images.
	Upload *upload.Handler

	// Analytics serves the staff dashboard.
	Analytics *analytics.Handler

	// Audit exposes the append-only audit trail to administrators.
	Audit *audit.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(appCtx context.Context, cfg *config.Config, log *slog.Logger, resolver middleware.SessionResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(appCtx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(resolver))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration, plus the
	// Prometheus scrape target.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Stored cover art is served directly from the upload directory.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	// Credential endpoints get their own, much stricter token bucket.
	credentialGuard := middleware.RateLimit(appCtx, constants.AuthRateLimitRPS, constants.AuthRateLimitBurst)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(router chi.Router) {
			h.Auth.RegisterRoutes(router, credentialGuard)
		})

		api.Route("/users", func(router chi.Router) {
			h.Account.RegisterRoutes(router)
			router.Group(func(feeds chi.Router) {
				feeds.Use(middleware.RequireAuth)
				h.UserFeeds.RegisterRoutes(feeds)
			})
		})

		api.Route("/genres", func(router chi.Router) {
			h.Genre.RegisterRoutes(router)
		})

		api.Route("/playlists", func(router chi.Router) {
			h.Playlist.RegisterRoutes(router)
		})

		api.Route("/recommendations", func(router chi.Router) {
			h.Discover.RegisterRoutes(router)
		})

		api.Route("/songs", func(router chi.Router) {
			h.Media.RegisterRoutes(router)
		})

		api.Route("/uploads", func(router chi.Router) {
			h.Upload.RegisterRoutes(router)
		})

		api.Route("/analytics", func(router chi.Router) {
			router.Use(middleware.RequireRole(sec.RoleAdministrator, sec.RoleManagement))
			h.Analytics.RegisterRoutes(router)
		})

		api.Route("/audit-logs", func(router chi.Router) {
			router.Use(middleware.RequireRole(sec.RoleAdministrator))
			h.Audit.RegisterRoutes(router)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
