// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/getemall/getemall/internal/platform/apperr"
	"github.com/getemall/getemall/internal/platform/ctxutil"
	"github.com/getemall/getemall/internal/platform/respond"
	"github.com/getemall/getemall/internal/platform/sec"
)

// Authenticator checks credentials. It is satisfied by the auth package's UserDao.
//
// A nil user with a nil error means the credentials did not match.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*sec.User, error)
}

// Sessionize logs the session in from HTTP Basic credentials before routing.
//
// # Flow
//  1. Requests without an Authorization header pass through untouched.
//  2. Valid credentials replace the session user, unless it is already the same
//     user, and move the session to a fresh id.
//  3. Invalid credentials or a failing user store leave the session as it was.
//
// Must be registered after [Sessions].
func Sessionize(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			username, password, ok := request.BasicAuth()
			current := ctxutil.GetSession(request.Context())

			if ok && current != nil {
				user, err := authenticator.Authenticate(request.Context(), username, password)
				if err == nil && user != nil && !current.CurrentUser().Same(user) {
					current.SetUser(user)
					current.Renew()
				}
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// AccessManager admits the request when the session role is in roles.
// An empty roles declaration admits logged-in users only.
//
// Denials are logged as "access_denied" and answered with 401. An anonymous
// GET that is denied is remembered as the session's login redirect.
func AccessManager(roles sec.RoleSet, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			role := ctxutil.CurrentRole(ctx)

			if !roles.Allows(role) {
				if current := ctxutil.GetSession(ctx); current != nil && role == sec.RoleAnonymous && request.Method == http.MethodGet {
					current.SetLoginRedirect(request.URL.Path)
				}

				logger.InfoContext(ctx, "access_denied",
					slog.String("user", actorName(ctx)),
					slog.String("path", request.URL.Path),
					slog.String("role", string(role)),
				)
				respond.Error(writer, request, apperr.Unauthorized("Access denied"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
