// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/hirefly/hirefly/internal/platform/constants"
	"github.com/hirefly/hirefly/internal/platform/postgres"
	"github.com/hirefly/hirefly/internal/platform/redis"
	"github.com/hirefly/hirefly/internal/platform/respond"
)

// healthHandler serves the liveness and readiness probes.
type healthHandler struct {
	pool  *pgxpool.Pool
	redis *goredis.Client
}

type healthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// liveness reports that the process is running. It never touches backing
// stores, so a degraded database does not restart the process.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.JSON(writer, http.StatusOK, healthStatus{
		Status:  "ok",
		Version: constants.AppVersion,
	})
}

// readiness verifies the backing stores are reachable; orchestrators pull the
// instance out of rotation when it fails.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	checks := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	status := http.StatusOK

	if err := postgres.Ping(request.Context(), handler.pool); err != nil {
		checks["postgres"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if err := redis.Ping(request.Context(), handler.redis); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	body := healthStatus{Status: "ok", Version: constants.AppVersion, Checks: checks}
	if status != http.StatusOK {
		body.Status = "degraded"
	}

	respond.JSON(writer, status, body)
}
