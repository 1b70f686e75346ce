// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

/*
Package api assembles the HTTP surface of the Hirefly server.

It owns the router construction (middleware chain plus domain route mounting)
and the http.Server lifecycle, but no business logic: every endpoint is
implemented in its domain package and mounted here.
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

	"github.com/hirefly/hirefly/internal/companies"
	"github.com/hirefly/hirefly/internal/jobs"
	"github.com/hirefly/hirefly/internal/platform/config"
	"github.com/hirefly/hirefly/internal/platform/constants"
	"github.com/hirefly/hirefly/internal/platform/middleware"
	"github.com/hirefly/hirefly/internal/users/account"
	"github.com/hirefly/hirefly/internal/users/auth"
)

// Handlers bundles the domain HTTP handlers mounted by the server.
type Handlers struct {
	Auth      *auth.Handler
	Account   *account.Handler
	Jobs      *jobs.Handler
	Companies *companies.Handler
}

// Dependencies carries the infrastructure handles the server needs for
// readiness probing.
type Dependencies struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

// NewServer builds the fully-wired http.Server.
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, handlers Handlers, deps Dependencies) *http.Server {
	router := NewRouter(ctx, cfg, logger, handlers, deps)

	return &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadTimeout:       constants.DefaultReadTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
	}
}

// NewRouter constructs the chi router with the full middleware chain and all
// domain subtrees mounted.
func NewRouter(ctx context.Context, cfg *config.Config, logger *slog.Logger, handlers Handlers, deps Dependencies) chi.Router {
	router := chi.NewRouter()

	// ── Global Middleware Chain (order matters) ──────────────────────
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(ctx))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(middleware.CORS(cfg))
	router.Use(chimw.CleanPath)

	// ── Probes ───────────────────────────────────────────────────────
	health := &healthHandler{pool: deps.Pool, redis: deps.Redis}
	router.Get("/health", health.liveness)
	router.Get("/ready", health.readiness)

	// ── API Subtrees ─────────────────────────────────────────────────
	router.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", handlers.Auth.Routes())
		api.Mount("/users", handlers.Account.Routes())
		api.Mount("/jobs", handlers.Jobs.Routes())
		api.Mount("/companies", handlers.Companies.Routes())
	})

	return router
}
