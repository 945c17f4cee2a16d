// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

// Command api is the entry point for the Mixlist HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Seed the administrator account and warm the principal cache.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mixlist/mixlist/internal/analytics"
	"github.com/mixlist/mixlist/internal/api"
	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/core/genre"
	"github.com/mixlist/mixlist/internal/core/playlist"
	"github.com/mixlist/mixlist/internal/media"
	"github.com/mixlist/mixlist/internal/platform/config"
	"github.com/mixlist/mixlist/internal/platform/constants"
	"github.com/mixlist/mixlist/internal/platform/migration"
	pgstore "github.com/mixlist/mixlist/internal/platform/postgres"
	redisstore "github.com/mixlist/mixlist/internal/platform/redis"
	"github.com/mixlist/mixlist/internal/upload"
	"github.com/mixlist/mixlist/internal/users/account"
	"github.com/mixlist/mixlist/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "mixlist"))
	slog.SetDefault(log)

	log.Info("[Mixlist] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "mixlist"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application context cancels background goroutines (rate limiter
	// cleanup) on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Identity bootstrap ─────────────────────────────────────────────
	userRepository := auth.NewPostgresUserRepository(pool)
	sessionRepository := auth.NewPostgresSessionRepository(pool)
	sessionCache := auth.NewSessionCacheRepository(rdb)

	must(log, auth.SeedAdministrator(startupCtx, userRepository, cfg.AdminPassword, log), "seed administrator")

	principals := auth.NewPrincipalCache(userRepository, log)
	must(log, principals.ReloadAll(startupCtx), "warm principal cache")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	auditService := audit.NewService(audit.NewPostgresRepository(pool), log)

	authService := auth.NewService(userRepository, sessionRepository, sessionCache, principals, auditService, log)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(userRepository, sessionRepository, principals, auditService, log)
	accountHandler := account.NewHandler(accountService)

	genreService := genre.NewService(genre.NewPostgresRepository(pool), auditService, log)
	genreHandler := genre.NewHandler(genreService)

	// Metadata providers run without credentials; lookups then fail with a
	// clear error instead of preventing boot.
	mediaService := media.NewService(
		media.NewYouTubeProvider(cfg.YouTubeAPIKey),
		media.NewSpotifyProvider(cfg.SpotifyClientID, cfg.SpotifyClientSecret),
		log,
	)
	mediaHandler := media.NewHandler(mediaService)

	playlistService := playlist.NewService(
		playlist.NewPostgresRepository(pool),
		playlist.NewPostgresSongRepository(pool),
		playlist.NewPostgresSocialRepository(pool),
		mediaService,
		auditService,
		log,
	)
	playlistHandler := playlist.NewHandler(playlistService)
	discoverHandler := playlist.NewDiscoverHandler(playlistService)
	userFeedHandler := playlist.NewUserFeedHandler(playlistService)

	uploadHandler := upload.NewHandler(upload.NewService(cfg.UploadDir, log))

	analyticsService := analytics.NewService(analytics.NewPostgresRepository(pool), log)
	analyticsHandler := analytics.NewHandler(analyticsService)

	auditHandler := audit.NewHandler(auditService)

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		UserFeeds: userFeedHandler,
		Genre:     genreHandler,
		Playlist:  playlistHandler,
		Discover:  discoverHandler,
		Media:     mediaHandler,
		Upload:    uploadHandler,
		Analytics: analyticsHandler,
		Audit:     auditHandler,
	}

	server := api.NewServer(appCtx, cfg, log, authService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
