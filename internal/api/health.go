// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	rediscli "github.com/redis/go-redis/v9"

	"github.com/hamzahey/brainwave-api/internal/platform/constants"
	"github.com/hamzahey/brainwave-api/internal/platform/postgres"
	"github.com/hamzahey/brainwave-api/internal/platform/redis"
	"github.com/hamzahey/brainwave-api/internal/platform/respond"
)

// probeTimeout bounds each dependency check so a hung backend cannot stall
// the orchestrator's probe.
const probeTimeout = 2 * time.Second

type healthHandler struct {
	pool  *pgxpool.Pool
	redis *rediscli.Client
}

type healthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// alive reports process liveness only. It must stay dependency-free so a
// database outage does not get the process restarted.
func (h *healthHandler) alive(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, healthStatus{Status: "ok", Version: constants.AppVersion})
}

// ready reports whether the server can actually serve traffic: both the
// database and Redis must answer a ping.
func (h *healthHandler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	checks := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := postgres.Ping(ctx, h.pool); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}
	if err := redis.Ping(ctx, h.redis); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	status := healthStatus{Status: "ok", Version: constants.AppVersion, Checks: checks}
	if !healthy {
		status.Status = "degraded"
		respond.JSON(w, http.StatusServiceUnavailable, respond.SuccessEnvelope{Data: status})
		return
	}
	respond.OK(w, status)
}
