// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

/*
Package api assembles the HTTP server: the router, the global middleware
chain and the mounting of every domain's routes under /api.

# Route Map

	/health                 liveness probe (public)
	/ready                  readiness probe (public)
	/api/auth/...           session lifecycle (mixed public/protected)
	/api/admin/...          directories        (admin only)
	/api/analysis/...       inference results  (any authenticated role)
*/
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hamzahey/brainwave-api/internal/admin"
	"github.com/hamzahey/brainwave-api/internal/analysis"
	"github.com/hamzahey/brainwave-api/internal/auth"
	"github.com/hamzahey/brainwave-api/internal/platform/config"
	"github.com/hamzahey/brainwave-api/internal/platform/constants"
	"github.com/hamzahey/brainwave-api/internal/platform/middleware"
	"github.com/hamzahey/brainwave-api/internal/platform/sec"
)

// Dependencies carries everything the server needs, constructed in main.
type Dependencies struct {
	Config   *config.Config
	Logger   *slog.Logger
	Pool     *pgxpool.Pool
	Redis    *redis.Client
	Tokens   *sec.TokenService
	Auth     *auth.Handler
	Admin    *admin.Handler
	Analysis *analysis.Handler
}

// NewServer builds the fully-wired HTTP server.
func NewServer(ctx context.Context, deps Dependencies) *http.Server {
	return &http.Server{
		Addr:              ":" + deps.Config.ServerPort,
		Handler:           NewRouter(ctx, deps),
		ReadTimeout:       constants.DefaultReadTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
	}
}

// NewRouter builds the chi router with the global middleware chain and all
// domain routes. ctx bounds the rate limiter's cleanup goroutine.
func NewRouter(ctx context.Context, deps Dependencies) chi.Router {
	router := chi.NewRouter()

	// Global middleware. Order matters: request IDs and logging first so
	// everything downstream (including panics) is traceable.
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Logger))
	router.Use(chimw.CleanPath)
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(ctx))
	router.Use(middleware.PanicRecovery(deps.Logger))
	router.Use(middleware.CORS(deps.Config))

	authenticate := middleware.Authenticate(deps.Tokens)
	requireAdmin := middleware.RequireRole(sec.RoleAdmin)

	// Probes stay outside /api: infrastructure reaches them unauthenticated.
	health := &healthHandler{pool: deps.Pool, redis: deps.Redis}
	router.Get("/health", health.alive)
	router.Get("/ready", health.ready)

	router.Route("/api", func(api chi.Router) {
		api.Mount("/auth", deps.Auth.Routes(authenticate, requireAdmin))

		api.Group(func(protected chi.Router) {
			protected.Use(authenticate)

			protected.With(requireAdmin).Mount("/admin", deps.Admin.Routes())
			protected.Mount("/analysis", deps.Analysis.Routes())
		})
	})

	return router
}
