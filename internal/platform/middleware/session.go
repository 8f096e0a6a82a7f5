// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/getemall/getemall/internal/platform/constants"
	"github.com/getemall/getemall/internal/platform/ctxutil"
	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/internal/platform/session"
	"github.com/getemall/getemall/pkg/uuid"
)

// SessionOptions configures the session cookie.
type SessionOptions struct {
	TTL    time.Duration
	Secure bool
}

// Sessions binds a [session.Session] to every request.
//
// # Flow
//  1. Verify the signed cookie and load the session it names.
//  2. On a missing, forged or expired cookie, start a fresh session.
//  3. Run the handler with the session in context. The cookie is (re)issued
//     right before the response header goes out, carrying the session id as
//     it stands then and a fresh MaxAge.
//  4. Persist the session if the handler changed it, and drop the id it had
//     before a [session.Session.Renew].
//
// A failing store never fails the request: the request runs with a fresh
// session and the failure is logged.
func Sessions(store session.Store, signer *sec.CookieSigner, options SessionOptions, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			current := loadSession(request, store, signer, logger)
			if current == nil {
				current = session.New(uuid.Random())
			}

			cookieWriter := &sessionCookieWriter{ResponseWriter: writer}
			cookieWriter.issue = func() {
				if err := setSessionCookie(writer, signer, current.ID, options); err != nil {
					logger.ErrorContext(ctx, "session_cookie_failed", slog.Any("error", err))
				}
			}

			next.ServeHTTP(cookieWriter, request.WithContext(ctxutil.WithSession(ctx, current)))
			cookieWriter.issueOnce()

			if previous := current.PreviousID(); previous != "" {
				if err := store.Delete(ctx, previous); err != nil {
					logger.ErrorContext(ctx, "session_delete_failed", slog.Any("error", err))
				}
			}
			if !current.Dirty() {
				return
			}
			if err := store.Save(ctx, current); err != nil {
				logger.ErrorContext(ctx, "session_save_failed",
					slog.String("request_id", ctxutil.GetRequestID(ctx)),
					slog.Any("error", err),
				)
			}
		})
	}
}

// sessionCookieWriter sets the session cookie before the first header or body write.
type sessionCookieWriter struct {
	http.ResponseWriter
	issue  func()
	issued bool
}

func (w *sessionCookieWriter) issueOnce() {
	if !w.issued {
		w.issued = true
		w.issue()
	}
}

func (w *sessionCookieWriter) WriteHeader(code int) {
	w.issueOnce()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionCookieWriter) Write(body []byte) (int, error) {
	w.issueOnce()
	return w.ResponseWriter.Write(body)
}

// Unwrap exposes the underlying writer to [http.ResponseController].
func (w *sessionCookieWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// loadSession returns the session named by the request cookie, or nil.
func loadSession(request *http.Request, store session.Store, signer *sec.CookieSigner, logger *slog.Logger) *session.Session {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil {
		return nil
	}

	id, err := signer.Verify(cookie.Value)
	if err != nil {
		return nil
	}

	loaded, err := store.Load(request.Context(), id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			logger.ErrorContext(request.Context(), "session_load_failed", slog.Any("error", err))
		}
		return nil
	}
	return loaded
}

func setSessionCookie(writer http.ResponseWriter, signer *sec.CookieSigner, id string, options SessionOptions) error {
	value, err := signer.Sign(id)
	if err != nil {
		return err
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(options.TTL.Seconds()),
		HttpOnly: true,
		Secure:   options.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
