// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Execer runs a statement without returning rows. [*sql.DB] satisfies it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// EnsureSchema creates schema when it does not exist yet. Migrations run with
// search_path set to it and have nowhere to create tables otherwise. An empty
// name is a no-op.
func EnsureSchema(ctx context.Context, db Execer, schema string) error {
	if schema == "" {
		return nil
	}

	statement := "CREATE SCHEMA IF NOT EXISTS " + pgx.Identifier{schema}.Sanitize()
	if _, err := db.ExecContext(ctx, statement); err != nil {
		return fmt.Errorf("postgres: unable to create schema %q: %w", schema, err)
	}
	return nil
}
