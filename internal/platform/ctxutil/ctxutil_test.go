// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getemall/getemall/internal/platform/ctxutil"
	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/internal/platform/session"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Session verifies identity lookups with and without a session.
*/
func TestContext_Session(t *testing.T) {
	ctx := context.Background()

	// 1. No session: anonymous
	assert.Nil(t, ctxutil.GetSession(ctx))
	assert.Nil(t, ctxutil.CurrentUser(ctx))
	assert.Equal(t, sec.RoleAnonymous, ctxutil.CurrentRole(ctx))

	// 2. Authenticated session
	s := session.New("sid")
	s.SetUser(&sec.User{Name: "admin", Role: sec.RoleAdmin})
	ctx = ctxutil.WithSession(ctx, s)

	assert.Same(t, s, ctxutil.GetSession(ctx))
	assert.Equal(t, "admin", ctxutil.CurrentUser(ctx).Name)
	assert.Equal(t, sec.RoleAdmin, ctxutil.CurrentRole(ctx))
}
