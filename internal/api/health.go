// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/getemall/getemall/internal/platform/respond"
)

// ComponentStatus is the health of one backing component.
type ComponentStatus string

const (
	StatusOK   ComponentStatus = "OK"
	StatusDown ComponentStatus = "DOWN"
)

// ComponentCheck is the result of probing one component.
type ComponentCheck struct {
	Status  ComponentStatus `json:"status"`
	Message string          `json:"message,omitempty"`
}

// Readiness is the body of the readiness probe.
type Readiness struct {
	Status     ComponentStatus           `json:"status"`
	Components map[string]ComponentCheck `json:"componentStatuses"`
	Message    string                    `json:"message"`
}

// Check probes a dependency; a nil error means it is usable.
type Check func(ctx context.Context) error

// HealthDependencies holds the injectable checkers for the readiness probe.
// A nil checker is left out of the report.
type HealthDependencies struct {
	// CheckLogin looks up the reference user through the user store.
	CheckLogin Check

	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase Check

	// CheckSessions pings the session store.
	CheckSessions Check
}

// liveness handles GET /health and GET /api/admin/liveness.
func (handler *ServiceHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]ComponentStatus{"status": StatusOK})
}

// readiness handles GET /api/admin/readiness. Any DOWN component answers 503.
func (handler *ServiceHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	report := Readiness{Status: StatusOK, Components: map[string]ComponentCheck{}}

	probes := []struct {
		name    string
		check   Check
		message string
	}{
		{name: "login", check: handler.health.CheckLogin, message: "Login component not ready"},
		{name: "db", check: handler.health.CheckDatabase, message: "Database not reachable"},
		{name: "sessions", check: handler.health.CheckSessions, message: "Session store not reachable"},
	}

	for _, probe := range probes {
		if probe.check == nil {
			continue
		}
		result := ComponentCheck{Status: StatusOK}
		if err := probe.check(request.Context()); err != nil {
			result = ComponentCheck{Status: StatusDown, Message: probe.message}
			report.Status = StatusDown
			handler.logger.ErrorContext(request.Context(), "readiness_check_failed",
				slog.String("component", probe.name),
				slog.Any("error", err),
			)
		}
		report.Components[probe.name] = result
	}

	status := http.StatusOK
	report.Message = "Service is ready"
	if report.Status == StatusDown {
		status = http.StatusServiceUnavailable
		report.Message = "Service NOT ready"
	}

	respond.JSON(writer, status, respond.SuccessEnvelope{Data: report})
}
