// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"net/http"
	"runtime"
	"sync"

	"github.com/getemall/getemall/internal/platform/constants"
	"github.com/getemall/getemall/internal/platform/ctxutil"
	"github.com/getemall/getemall/internal/platform/middleware"
	"github.com/getemall/getemall/internal/platform/respond"
	"github.com/getemall/getemall/internal/platform/sec"
)

// Metadata describes the running build.
type Metadata struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	BuildDate    string `json:"buildDate"`
	BuildUser    string `json:"buildUser"`
	BuildMachine string `json:"buildMachine"`
	GoVersion    string `json:"goVersion"`
}

// ServiceHandler serves the probes and the administration endpoints.
type ServiceHandler struct {
	health   HealthDependencies
	shutdown func()
	once     sync.Once
	logger   *slog.Logger
}

// NewServiceHandler constructs a [ServiceHandler]. shutdown is invoked at
// most once, asynchronously, by POST /api/admin/stop.
func NewServiceHandler(health HealthDependencies, shutdown func(), logger *slog.Logger) *ServiceHandler {
	return &ServiceHandler{health: health, shutdown: shutdown, logger: logger}
}

// Routes returns the service routing table.
func (handler *ServiceHandler) Routes() []middleware.Route {
	return []middleware.Route{
		{Method: http.MethodGet, Pattern: "/health", Handler: handler.liveness, Roles: sec.Anyone},
		{Method: http.MethodGet, Pattern: "/api/admin/liveness", Handler: handler.liveness, Roles: sec.Anyone},
		{Method: http.MethodGet, Pattern: "/api/admin/readiness", Handler: handler.readiness, Roles: sec.Anyone},
		{Method: http.MethodGet, Pattern: "/api/admin/metadata", Handler: handler.metadata, Roles: sec.Admins},
		{Method: http.MethodPost, Pattern: "/api/admin/stop", Handler: handler.stop, Roles: sec.Admins},
	}
}

// metadata handles GET /api/admin/metadata.
func (handler *ServiceHandler) metadata(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, Metadata{
		Name:         constants.AppName,
		Version:      constants.AppVersion,
		BuildDate:    constants.BuildDate,
		BuildUser:    constants.BuildUser,
		BuildMachine: constants.BuildMachine,
		GoVersion:    runtime.Version(),
	})
}

/*
POST /api/admin/stop.

Description: Answers first, then starts the graceful shutdown.

Response:
  - 202: Shutdown scheduled
*/
func (handler *ServiceHandler) stop(writer http.ResponseWriter, request *http.Request) {
	user := constants.AnonymousUser
	if current := ctxutil.CurrentUser(request.Context()); current != nil {
		user = current.Name
	}
	handler.logger.InfoContext(request.Context(), "service_stop_requested", slog.String("user", user))

	respond.Accepted(writer, map[string]string{"message": "bye!"})

	if handler.shutdown != nil {
		go handler.once.Do(handler.shutdown)
	}
}
