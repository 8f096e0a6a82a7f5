// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/getemall/getemall/internal/platform/ctxkey"
	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/internal/platform/session"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Session & Identity

// WithSession returns a new context carrying the request's session.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, s)
}

// GetSession retrieves the session, or nil when the session middleware did not run.
func GetSession(ctx context.Context) *session.Session {
	s, _ := ctx.Value(ctxkey.KeySession).(*session.Session)
	return s
}

// CurrentUser returns the session user, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *sec.User {
	return GetSession(ctx).CurrentUser()
}

// CurrentRole returns the session role, [sec.RoleAnonymous] when unset.
func CurrentRole(ctx context.Context) sec.UserRole {
	return GetSession(ctx).Role()
}
