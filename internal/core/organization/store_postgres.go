// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/getemall/getemall/internal/platform/dberr"
	"github.com/getemall/getemall/internal/platform/postgres"
)

// constraints classifies integrity violations on the organizations table.
var constraints = []dberr.Constraint{
	dberr.Rule(`organization_name_un`, dberr.UniqueError("Name already taken")),
	dberr.Rule(`organization_users_fk`, dberr.FKError("Owner not found")),
}

const (
	queryList = `
		SELECT id, name, owner
		FROM organizations
		ORDER BY id
	`
	queryByID = `
		SELECT id, name, owner
		FROM organizations
		WHERE id = $1
	`
	queryByName = `
		SELECT id, name, owner
		FROM organizations
		WHERE name = $1
	`
	queryInsert = `
		INSERT INTO organizations (name, owner)
		VALUES ($1, $2)
		RETURNING id
	`
	queryUpdate = `
		UPDATE organizations
		SET name = $2, owner = $3
		WHERE id = $1
	`
	queryDelete = `
		DELETE FROM organizations
		WHERE id = $1
	`
)

// PostgresStore implements [Store] over a [postgres.ConnectionProvider].
type PostgresStore struct {
	db     postgres.ConnectionProvider
	logger *slog.Logger
}

// NewPostgresStore constructs a PostgreSQL backed organization store.
func NewPostgresStore(db postgres.ConnectionProvider, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// # Retrieval

// List implements [Store].
func (store *PostgresStore) List(ctx context.Context) (dberr.ReturnCode, []Organization) {
	organizations := []Organization{}

	err := store.withConn(ctx, func(conn postgres.DBTX) error {
		rows, err := conn.QueryContext(ctx, queryList)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var org Organization
			if err := rows.Scan(&org.ID, &org.Name, &org.Owner); err != nil {
				return err
			}
			organizations = append(organizations, org)
		}
		return rows.Err()
	})
	if err != nil {
		message := "Unable to recover organizations list due an internal error"
		store.technical(ctx, message, err)
		return dberr.DBError(message), []Organization{}
	}

	return dberr.Succeeded, organizations
}

// GetByID implements [Store].
func (store *PostgresStore) GetByID(ctx context.Context, id int) (dberr.ReturnCode, *Organization) {
	org, err := store.fetchOne(ctx, queryByID, id)
	if err != nil {
		message := fmt.Sprintf("Unable to recover organization id='%d' due an internal error", id)
		store.technical(ctx, message, err)
		return dberr.DBError(message), nil
	}
	return dberr.Succeeded, org
}

// GetByName implements [Store].
func (store *PostgresStore) GetByName(ctx context.Context, name string) (dberr.ReturnCode, *Organization) {
	org, err := store.fetchOne(ctx, queryByName, name)
	if err != nil {
		message := fmt.Sprintf("Unable to recover organization '%s' due an internal error", name)
		store.technical(ctx, message, err)
		return dberr.DBError(message), nil
	}
	return dberr.Succeeded, org
}

// # Mutation

// Insert implements [Store].
func (store *PostgresStore) Insert(ctx context.Context, org Organization) (dberr.ReturnCode, *Organization) {
	var id int
	err := store.withConn(ctx, func(conn postgres.DBTX) error {
		return conn.QueryRowContext(ctx, queryInsert, org.Name, org.Owner).Scan(&id)
	})

	switch {
	case err == nil:
		org.ID = id
		return dberr.Inserted, &org

	case errors.Is(err, sql.ErrNoRows):
		message := fmt.Sprintf("Unknown problem while persisting organization '%s'", org.Name)
		store.logger.ErrorContext(ctx, message)
		return dberr.Error(message), nil

	default:
		rc := dberr.Classify(err, constraints, fmt.Sprintf("Unable to persist organization '%s' due an internal error", org.Name))
		store.failed(ctx, rc, err, slog.String("name", org.Name))
		return rc, nil
	}
}

// Update implements [Store].
func (store *PostgresStore) Update(ctx context.Context, org Organization) dberr.ReturnCode {
	var rows int64
	err := store.withConn(ctx, func(conn postgres.DBTX) error {
		result, err := conn.ExecContext(ctx, queryUpdate, org.ID, org.Name, org.Owner)
		if err != nil {
			return err
		}
		rows, err = result.RowsAffected()
		return err
	})
	if err != nil {
		rc := dberr.Classify(err, constraints, fmt.Sprintf("Unable to update organization id='%d' due an internal error", org.ID))
		store.failed(ctx, rc, err, slog.Int("id", org.ID))
		return rc
	}

	if rows != 1 {
		store.logger.InfoContext(ctx, "organization_update_not_found", slog.Int("id", org.ID))
		return dberr.NotFound
	}
	return dberr.Updated
}

// Delete implements [Store].
//
// The pre-image is read first: an absent row is Unaltered, an unreadable one
// is DBError with no pre-image.
func (store *PostgresStore) Delete(ctx context.Context, id int) (dberr.ReturnCode, *Organization) {
	rc, existing := store.GetByID(ctx, id)
	if rc != dberr.Succeeded {
		return dberr.DBError(fmt.Sprintf("Unable to access organization id='%d' for deleting it", id)), nil
	}
	if existing == nil {
		return dberr.Unaltered, nil
	}

	var rows int64
	err := store.withConn(ctx, func(conn postgres.DBTX) error {
		result, err := conn.ExecContext(ctx, queryDelete, id)
		if err != nil {
			return err
		}
		rows, err = result.RowsAffected()
		return err
	})
	if err != nil {
		rc := dberr.Classify(err, constraints, fmt.Sprintf("Unable to delete organization id='%d' due an internal error", id))
		store.failed(ctx, rc, err, slog.Int("id", id))
		return rc, existing
	}

	if rows == 0 {
		message := fmt.Sprintf("Unknown problem while deleting organization id='%d'", id)
		store.logger.ErrorContext(ctx, message)
		return dberr.Error(message), existing
	}
	return dberr.Deleted, existing
}

// # Helpers

// withConn runs fn on a connection checked out from the provider.
func (store *PostgresStore) withConn(ctx context.Context, fn func(conn postgres.DBTX) error) error {
	conn, err := store.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

// fetchOne runs a single-row query; an empty result is (nil, nil).
func (store *PostgresStore) fetchOne(ctx context.Context, query string, arg any) (*Organization, error) {
	var org Organization
	err := store.withConn(ctx, func(conn postgres.DBTX) error {
		return conn.QueryRowContext(ctx, query, arg).Scan(&org.ID, &org.Name, &org.Owner)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// technical logs a driver failure under its fixed message.
func (store *PostgresStore) technical(ctx context.Context, message string, err error) {
	store.logger.ErrorContext(ctx, message, slog.Any("error", err))
}

// failed logs a classified write failure. Constraint errors are functional
// and keep the driver text out of the log message.
func (store *PostgresStore) failed(ctx context.Context, rc dberr.ReturnCode, err error, attrs ...any) {
	if rc.IsConstraintError() {
		store.logger.WarnContext(ctx, "organization_constraint_violation", append(attrs, slog.String("code", rc.String()))...)
		return
	}
	store.technical(ctx, rc.Message(), err)
}
