// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getemall/getemall/internal/platform/constants"
)

// ConnectionProvider hands out live database connections.
//
// The caller owns the returned connection and must Close it, which gives it
// back to the pool.
type ConnectionProvider interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// DBTX is the query surface shared by [*sql.Conn] and [*sql.Tx].
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Provider is the pool-backed [ConnectionProvider].
//
// Before a connection is returned it is pinged with a short timeout. A
// connection failing the ping is discarded and one fresh connection is
// attempted, so a database outage never leaves the provider in a broken state:
// the first call after connectivity is restored succeeds.
type Provider struct {
	db       *sql.DB
	timeout  time.Duration
	logger   *slog.Logger
	reconnMu sync.Mutex
}

// NewProvider creates a [Provider] over db.
func NewProvider(db *sql.DB, logger *slog.Logger) *Provider {
	return &Provider{db: db, timeout: constants.ConnectionLivenessTimeout, logger: logger}
}

// Conn implements [ConnectionProvider].
func (provider *Provider) Conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := provider.db.Conn(ctx)
	if err == nil {
		if err = provider.ping(ctx, conn); err == nil {
			return conn, nil
		}
		discard(conn)
	}

	provider.logger.Warn("db_connection_invalid_reconnecting", slog.Any("error", err))

	// One reconnect at a time.
	provider.reconnMu.Lock()
	defer provider.reconnMu.Unlock()

	conn, err = provider.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: unable to obtain connection: %w", err)
	}
	if err := provider.ping(ctx, conn); err != nil {
		discard(conn)
		return nil, fmt.Errorf("postgres: connection not alive: %w", err)
	}

	provider.logger.Info("db_connection_reestablished")
	return conn, nil
}

// Check obtains and releases a connection. It backs the readiness probe.
func (provider *Provider) Check(ctx context.Context) error {
	conn, err := provider.Conn(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

func (provider *Provider) ping(ctx context.Context, conn *sql.Conn) error {
	pingCtx, cancel := context.WithTimeout(ctx, provider.timeout)
	defer cancel()
	return conn.PingContext(pingCtx)
}

// discard returns conn to database/sql flagged as bad so the pool drops it.
func discard(conn *sql.Conn) {
	_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	_ = conn.Close()
}
