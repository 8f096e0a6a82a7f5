// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - Every domain contributes a routing table ([middleware.Route]); each entry
    declares the roles allowed to call it.
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

	"github.com/getemall/getemall/internal/core/organization"
	"github.com/getemall/getemall/internal/platform/config"
	"github.com/getemall/getemall/internal/platform/constants"
	"github.com/getemall/getemall/internal/platform/middleware"
	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/internal/platform/session"
	"github.com/getemall/getemall/internal/users/auth"
	"github.com/getemall/getemall/internal/users/profile"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets. A nil handler
// contributes no routes.
type Handlers struct {
	// Service serves the probes, metadata and stop endpoints.
	Service *ServiceHandler

	// Auth handles login, logout and the login state.
	Auth *auth.Handler

	// Profile handles accounts, their extension and pictures.
	Profile *profile.Handler

	// Organization handles the organization catalogue.
	Organization *organization.Handler
}

// Sessions carries what the session middleware needs.
type Sessions struct {
	Store   session.Store
	Signer  *sec.CookieSigner
	Options middleware.SessionOptions
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers every routing table.
//
// users backs HTTP Basic credentials (see [middleware.Sessionize]).
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, sessions Sessions, users middleware.Authenticator, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.Sessions(sessions.Store, sessions.Signer, sessions.Options, log))
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Sessionize(users))
	r.Use(chimw.CleanPath)

	middleware.Mount(r, log, routes(h)...)

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

// routes concatenates the routing tables of the configured handlers.
func routes(h Handlers) []middleware.Route {
	var table []middleware.Route
	if h.Service != nil {
		table = append(table, h.Service.Routes()...)
	}
	if h.Auth != nil {
		table = append(table, h.Auth.Routes()...)
	}
	if h.Profile != nil {
		table = append(table, h.Profile.Routes()...)
	}
	if h.Organization != nil {
		table = append(table, h.Organization.Routes()...)
	}
	return table
}

// Handler exposes the router, middleware chain included.
func (s *Server) Handler() http.Handler {
	return s.router
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
