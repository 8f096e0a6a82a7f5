// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/getemall/getemall/internal/platform/sec"
)

// Route is one entry of a routing table.
//
// Roles lists who may call the endpoint. Leaving it empty means logged-in
// users, see [sec.RoleSet.Effective]. Public endpoints must say [sec.Anyone].
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	Roles   sec.RoleSet
}

// Mount registers every route on router behind an [AccessManager] for its roles.
func Mount(router chi.Router, logger *slog.Logger, routes ...Route) {
	for _, route := range routes {
		router.With(AccessManager(route.Roles, logger)).Method(route.Method, route.Pattern, route.Handler)
	}
}
