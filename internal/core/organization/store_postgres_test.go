// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getemall/getemall/internal/core/organization"
	"github.com/getemall/getemall/internal/platform/dberr"
	"github.com/getemall/getemall/internal/platform/postgres"
)

const (
	sqlList   = `SELECT id, name, owner\s+FROM organizations\s+ORDER BY id`
	sqlByID   = `SELECT id, name, owner\s+FROM organizations\s+WHERE id = \$1`
	sqlByName = `SELECT id, name, owner\s+FROM organizations\s+WHERE name = \$1`
	sqlInsert = `INSERT INTO organizations \(name, owner\)`
	sqlUpdate = `UPDATE organizations\s+SET name = \$2, owner = \$3`
	sqlDelete = `DELETE FROM organizations\s+WHERE id = \$1`
)

var columns = []string{"id", "name", "owner"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) (*organization.PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return organization.NewPostgresStore(postgres.NewProvider(db, discardLogger()), discardLogger()), mock
}

func violation(code, constraint string) error {
	return &pgconn.PgError{Severity: "ERROR", Code: code, ConstraintName: constraint, Message: "violates constraint"}
}

/*
TestPostgresStore_List covers the happy path and the technical failure.
*/
func TestPostgresStore_List(t *testing.T) {
	t.Run("succeeded", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlList).WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "acme", 1).AddRow(2, "umbrella", 3))

		rc, organizations := store.List(context.Background())

		assert.Equal(t, dberr.Succeeded, rc)
		assert.Equal(t, []organization.Organization{{ID: 1, Name: "acme", Owner: 1}, {ID: 2, Name: "umbrella", Owner: 3}}, organizations)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db_error", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlList).WillReturnError(errors.New("connection refused"))

		rc, organizations := store.List(context.Background())

		assert.Equal(t, dberr.DBError("Unable to recover organizations list due an internal error"), rc)
		assert.Empty(t, organizations)
		assert.NotNil(t, organizations)
	})
}

/*
TestPostgresStore_GetByID distinguishes absence from failure.
*/
func TestPostgresStore_GetByID(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantRC  dberr.ReturnCode
		wantOrg *organization.Organization
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlByID).WithArgs(7).WillReturnRows(sqlmock.NewRows(columns).AddRow(7, "acme", 1))
			},
			wantRC:  dberr.Succeeded,
			wantOrg: &organization.Organization{ID: 7, Name: "acme", Owner: 1},
		},
		{
			name: "absent_is_succeeded",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlByID).WithArgs(7).WillReturnRows(sqlmock.NewRows(columns))
			},
			wantRC: dberr.Succeeded,
		},
		{
			name: "db_error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlByID).WithArgs(7).WillReturnError(errors.New("timeout"))
			},
			wantRC: dberr.DBError("Unable to recover organization id='7' due an internal error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStore(t)
			tt.setup(mock)

			rc, org := store.GetByID(context.Background(), 7)

			assert.Equal(t, tt.wantRC, rc)
			assert.Equal(t, tt.wantOrg, org)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

/*
TestPostgresStore_GetByName looks the row up by its unique name.
*/
func TestPostgresStore_GetByName(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectQuery(sqlByName).WithArgs("acme").WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "acme", 1))

	rc, org := store.GetByName(context.Background(), "acme")

	assert.Equal(t, dberr.Succeeded, rc)
	assert.Equal(t, &organization.Organization{ID: 3, Name: "acme", Owner: 1}, org)
}

/*
TestPostgresStore_Insert maps constraint violations through the rule table.
*/
func TestPostgresStore_Insert(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantRC  dberr.ReturnCode
		wantOrg *organization.Organization
	}{
		{
			name: "inserted_with_assigned_id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlInsert).WithArgs("acme", 1).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
			},
			wantRC:  dberr.Inserted,
			wantOrg: &organization.Organization{ID: 42, Name: "acme", Owner: 1},
		},
		{
			name: "duplicate_name",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlInsert).WithArgs("acme", 1).
					WillReturnError(violation(pgerrcode.UniqueViolation, "organization_name_un"))
			},
			wantRC: dberr.UniqueError("Name already taken"),
		},
		{
			name: "unknown_owner",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlInsert).WithArgs("acme", 1).
					WillReturnError(violation(pgerrcode.ForeignKeyViolation, "organization_users_fk"))
			},
			wantRC: dberr.FKError("Owner not found"),
		},
		{
			name: "technical_failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlInsert).WithArgs("acme", 1).WillReturnError(errors.New("broken pipe"))
			},
			wantRC: dberr.DBError("Unable to persist organization 'acme' due an internal error"),
		},
		{
			name: "no_id_returned",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlInsert).WithArgs("acme", 1).WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			wantRC: dberr.Error("Unknown problem while persisting organization 'acme'"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStore(t)
			tt.setup(mock)

			rc, org := store.Insert(context.Background(), organization.Organization{ID: 99, Name: "acme", Owner: 1})

			assert.Equal(t, tt.wantRC, rc)
			assert.Equal(t, tt.wantOrg, org)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

/*
TestPostgresStore_InsertThenGet reads back what was inserted.
*/
func TestPostgresStore_InsertThenGet(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectQuery(sqlInsert).WithArgs("acme", 1).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(sqlByID).WithArgs(5).WillReturnRows(sqlmock.NewRows(columns).AddRow(5, "acme", 1))

	_, inserted := store.Insert(context.Background(), organization.Organization{Name: "acme", Owner: 1})
	require.NotNil(t, inserted)

	rc, fetched := store.GetByID(context.Background(), inserted.ID)
	assert.Equal(t, dberr.Succeeded, rc)
	assert.Equal(t, inserted, fetched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresStore_Update reports exactly one affected row as Updated.
*/
func TestPostgresStore_Update(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(mock sqlmock.Sqlmock)
		wantRC dberr.ReturnCode
	}{
		{
			name: "updated",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(sqlUpdate).WithArgs(4, "acme", 1).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantRC: dberr.Updated,
		},
		{
			name: "not_found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(sqlUpdate).WithArgs(4, "acme", 1).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantRC: dberr.NotFound,
		},
		{
			name: "duplicate_name",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(sqlUpdate).WithArgs(4, "acme", 1).
					WillReturnError(violation(pgerrcode.UniqueViolation, "organization_name_un"))
			},
			wantRC: dberr.UniqueError("Name already taken"),
		},
		{
			name: "technical_failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(sqlUpdate).WithArgs(4, "acme", 1).WillReturnError(errors.New("reset"))
			},
			wantRC: dberr.DBError("Unable to update organization id='4' due an internal error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStore(t)
			tt.setup(mock)

			rc := store.Update(context.Background(), organization.Organization{ID: 4, Name: "acme", Owner: 1})

			assert.Equal(t, tt.wantRC, rc)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

/*
TestPostgresStore_Delete returns the pre-image whenever the row existed.
*/
func TestPostgresStore_Delete(t *testing.T) {
	preImage := &organization.Organization{ID: 4, Name: "acme", Owner: 1}
	existing := func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(sqlByID).WithArgs(4).WillReturnRows(sqlmock.NewRows(columns).AddRow(4, "acme", 1))
	}

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantRC  dberr.ReturnCode
		wantOrg *organization.Organization
	}{
		{
			name: "absent_is_unaltered",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlByID).WithArgs(4).WillReturnRows(sqlmock.NewRows(columns))
			},
			wantRC: dberr.Unaltered,
		},
		{
			name: "deleted",
			setup: func(mock sqlmock.Sqlmock) {
				existing(mock)
				mock.ExpectExec(sqlDelete).WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantRC:  dberr.Deleted,
			wantOrg: preImage,
		},
		{
			name: "blocked_by_dependents",
			setup: func(mock sqlmock.Sqlmock) {
				existing(mock)
				mock.ExpectExec(sqlDelete).WithArgs(4).
					WillReturnError(violation(pgerrcode.ForeignKeyViolation, "project_organizations_fk"))
			},
			wantRC:  dberr.ConstraintError(dberr.DefaultConstraintMessage),
			wantOrg: preImage,
		},
		{
			name: "delete_failure",
			setup: func(mock sqlmock.Sqlmock) {
				existing(mock)
				mock.ExpectExec(sqlDelete).WithArgs(4).WillReturnError(errors.New("reset"))
			},
			wantRC:  dberr.DBError("Unable to delete organization id='4' due an internal error"),
			wantOrg: preImage,
		},
		{
			name: "pre_image_unreadable",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlByID).WithArgs(4).WillReturnError(errors.New("reset"))
			},
			wantRC: dberr.DBError("Unable to access organization id='4' for deleting it"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStore(t)
			tt.setup(mock)

			rc, org := store.Delete(context.Background(), 4)

			assert.Equal(t, tt.wantRC, rc)
			assert.Equal(t, tt.wantOrg, org)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

/*
TestPostgresStore_DeleteThenGet finds nothing after a successful delete.
*/
func TestPostgresStore_DeleteThenGet(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectQuery(sqlByID).WithArgs(4).WillReturnRows(sqlmock.NewRows(columns).AddRow(4, "acme", 1))
	mock.ExpectExec(sqlDelete).WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(sqlByID).WithArgs(4).WillReturnRows(sqlmock.NewRows(columns))

	rc, _ := store.Delete(context.Background(), 4)
	require.Equal(t, dberr.Deleted, rc)

	rc, org := store.GetByID(context.Background(), 4)
	assert.Equal(t, dberr.Succeeded, rc)
	assert.Nil(t, org)
}

/*
TestPostgresStore_RecoversAfterDBError serves the next call after a technical failure.
*/
func TestPostgresStore_RecoversAfterDBError(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectQuery(sqlList).WillReturnError(errors.New("connection lost"))
	mock.ExpectQuery(sqlList).WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "acme", 1))

	rc, _ := store.List(context.Background())
	require.True(t, rc.IsError())

	rc, organizations := store.List(context.Background())
	assert.Equal(t, dberr.Succeeded, rc)
	assert.Len(t, organizations, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
