// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

// Command api runs the Hirefly HTTP API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hirefly/hirefly/internal/api"
	"github.com/hirefly/hirefly/internal/companies"
	"github.com/hirefly/hirefly/internal/jobs"
	"github.com/hirefly/hirefly/internal/platform/config"
	"github.com/hirefly/hirefly/internal/platform/constants"
	"github.com/hirefly/hirefly/internal/platform/middleware"
	"github.com/hirefly/hirefly/internal/platform/migration"
	"github.com/hirefly/hirefly/internal/platform/postgres"
	"github.com/hirefly/hirefly/internal/platform/redis"
	"github.com/hirefly/hirefly/internal/platform/sec"
	"github.com/hirefly/hirefly/internal/users/account"
	"github.com/hirefly/hirefly/internal/users/auth"
)

func main() {
	// ── 1. Logging ───────────────────────────────────────────────────
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// ── 2. Configuration ─────────────────────────────────────────────
	cfg, err := config.Load()
	must(logger, "config_load_failed", err)

	if cfg.Debug {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		slog.SetDefault(logger)
	}

	// ── 3. Backing Stores ────────────────────────────────────────────
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	must(logger, "postgres_connect_failed", err)
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, logger)
	must(logger, "redis_connect_failed", err)
	defer func() { _ = redisClient.Close() }()

	must(logger, "migration_failed", migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger))

	// ── 4. Security Services ─────────────────────────────────────────
	// An empty JWT_SECRET aborts startup; the server never falls back to a
	// default signing key.
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, auth.AccessTokenTTL)
	must(logger, "token_service_init_failed", err)

	// ── 5. Domain Wiring ─────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	stateStore := auth.NewOAuthStateStore(redisClient)

	var provider auth.ProfileProvider
	if cfg.HasGoogleOAuth() {
		provider = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
		logger.Info("federated_login_enabled", slog.String("provider", "google"))
	} else {
		logger.Warn("federated_login_disabled")
	}

	authService := auth.NewService(userRepository, stateStore, provider, tokenService)
	authenticator := middleware.NewAuthenticator(tokenService, authService)

	accountService := account.NewService(userRepository)
	jobService := jobs.NewService(jobs.NewRepository(pool))
	companyService := companies.NewService(companies.NewRepository(pool))

	handlers := api.Handlers{
		Auth:      auth.NewHandler(authService, authenticator, cfg.FrontendURL),
		Account:   account.NewHandler(accountService, authenticator),
		Jobs:      jobs.NewHandler(jobService, authenticator),
		Companies: companies.NewHandler(companyService, authenticator),
	}

	// ── 6. HTTP Server ───────────────────────────────────────────────
	server := api.NewServer(ctx, cfg, logger, handlers, api.Dependencies{
		Pool:  pool,
		Redis: redisClient,
	})

	go func() {
		logger.Info("server_starting",
			slog.String("addr", server.Addr),
			slog.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_listen_failed", slog.Any("error", err))
			cancel()
		}
	}()

	// ── 7. Graceful Shutdown ─────────────────────────────────────────
	<-ctx.Done()
	logger.Info("server_shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", slog.Any("error", err))
	}

	logger.Info("server_stopped")
}

// must aborts the process on a fatal startup error.
func must(logger *slog.Logger, message string, err error) {
	if err != nil {
		logger.Error(message, slog.Any("error", err))
		os.Exit(1)
	}
}
