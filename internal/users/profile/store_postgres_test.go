// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getemall/getemall/internal/platform/dberr"
	"github.com/getemall/getemall/internal/platform/postgres"
	"github.com/getemall/getemall/internal/users/profile"
	"github.com/getemall/getemall/pkg/pointer"
)

const (
	sqlList      = `FROM users u\s+LEFT OUTER JOIN profiles p.*ORDER BY u\.id`
	sqlByID      = `FROM users u\s+LEFT OUTER JOIN profiles p.*AND u\.id = \$1`
	sqlByName    = `FROM users u\s+LEFT OUTER JOIN profiles p.*AND u\.nickname = \$1`
	sqlCountName = `SELECT COUNT\(\*\)\s+FROM users\s+WHERE nickname = \$1`
	sqlCountID   = `SELECT COUNT\(\*\)\s+FROM users\s+WHERE id = \$1`
	sqlPatch     = `UPDATE users\s+SET nickname = \$2`
	sqlExt       = `SELECT profile_pic, full_name, pub_email, pub_email_v, bio\s+FROM profiles\s+WHERE id = \$1\s+FOR UPDATE`
	sqlInsertExt = `INSERT INTO profiles`
	sqlUpdateExt = `UPDATE profiles\s+SET profile_pic = \$2`
)

var (
	profileColumns = []string{"id", "email", "nickname", "role", "timestamp", "verified", "active",
		"profile_pic", "full_name", "pub_email", "pub_email_v", "bio"}
	extColumns = []string{"profile_pic", "full_name", "pub_email", "pub_email_v", "bio"}
	stamp      = time.Date(2021, 1, 24, 10, 0, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) (*profile.PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return profile.NewPostgresStore(postgres.NewProvider(db, discardLogger()), discardLogger()), mock
}

func adminRow(rows *sqlmock.Rows) *sqlmock.Rows {
	return rows.AddRow(1, "admin@getemall.dev", "admin", 1, stamp, true, true, "admin.png", "The Admin", nil, false, nil)
}

/*
TestPostgresStore_List reads the joined rows, with and without extension.
*/
func TestPostgresStore_List(t *testing.T) {
	t.Run("succeeded", func(t *testing.T) {
		store, mock := newStore(t)
		rows := adminRow(sqlmock.NewRows(profileColumns)).
			AddRow(2, "jane@getemall.dev", "jane", 0, stamp, false, true, nil, nil, nil, false, nil)
		mock.ExpectQuery(sqlList).WillReturnRows(rows)

		rc, profiles := store.List(context.Background())

		require.Equal(t, dberr.Succeeded, rc)
		require.Len(t, profiles, 2)
		assert.Equal(t, "admin", profiles[0].Name)
		assert.Equal(t, "admin.png", pointer.Val(profiles[0].Ext.ProfilePic))
		assert.Nil(t, profiles[0].Ext.PubEmail)
		assert.Equal(t, profile.ProfileExt{}, profiles[1].Ext)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db_error", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlList).WillReturnError(errors.New("connection reset"))

		rc, profiles := store.List(context.Background())

		assert.Equal(t, dberr.DBError("Unable to recover profiles list due an internal error"), rc)
		assert.NotNil(t, profiles)
		assert.Empty(t, profiles)
	})
}

/*
TestPostgresStore_Get covers lookups by id and by name.
*/
func TestPostgresStore_Get(t *testing.T) {
	t.Run("by_id", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlByID).WithArgs(1).WillReturnRows(adminRow(sqlmock.NewRows(profileColumns)))

		rc, found := store.GetByID(context.Background(), 1)

		assert.Equal(t, dberr.Succeeded, rc)
		require.NotNil(t, found)
		assert.Equal(t, "admin@getemall.dev", found.Email)
		assert.Equal(t, stamp, found.Timestamp)
	})

	t.Run("by_id_absent", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlByID).WithArgs(9).WillReturnRows(sqlmock.NewRows(profileColumns))

		rc, found := store.GetByID(context.Background(), 9)

		assert.Equal(t, dberr.Succeeded, rc)
		assert.Nil(t, found)
	})

	t.Run("by_name_failure", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlByName).WithArgs("admin").WillReturnError(errors.New("timeout"))

		rc, found := store.GetByName(context.Background(), "admin")

		assert.Equal(t, dberr.DBError("Unable to recover profile 'admin' due an internal error"), rc)
		assert.Nil(t, found)
	})
}

/*
TestPostgresStore_Checks covers username availability and id existence.
*/
func TestPostgresStore_Checks(t *testing.T) {
	t.Run("username_taken", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlCountName).WithArgs("admin").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rc, available := store.CheckUsernameAvailability(context.Background(), "admin")

		assert.Equal(t, dberr.Succeeded, rc)
		assert.False(t, available)
	})

	t.Run("username_free", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlCountName).WithArgs("newcomer").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		rc, available := store.CheckUsernameAvailability(context.Background(), "newcomer")

		assert.Equal(t, dberr.Succeeded, rc)
		assert.True(t, available)
	})

	t.Run("username_failure", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlCountName).WillReturnError(errors.New("timeout"))

		rc, available := store.CheckUsernameAvailability(context.Background(), "admin")

		assert.Equal(t, dberr.DBError("Unable to check username 'admin' due an internal error"), rc)
		assert.False(t, available)
	})

	t.Run("id_exists", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlCountID).WithArgs(1).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rc, exists := store.CheckIDExistence(context.Background(), 1)

		assert.Equal(t, dberr.Succeeded, rc)
		assert.True(t, exists)
	})

	t.Run("id_failure", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(sqlCountID).WillReturnError(errors.New("timeout"))

		rc, exists := store.CheckIDExistence(context.Background(), 7)

		assert.Equal(t, dberr.DBError("Unable to check profile id='7' due an internal error"), rc)
		assert.False(t, exists)
	})
}

/*
TestPostgresStore_PatchUsername maps affected rows and unique violations.
*/
func TestPostgresStore_PatchUsername(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		result   driverResult
		want     dberr.ReturnCode
	}{
		{name: "patched", from: "jane", to: "janet", result: driverResult{rows: 1}, want: dberr.Patched},
		{name: "same_name", from: "jane", to: "jane", result: driverResult{rows: 1}, want: dberr.Patched},
		{name: "not_found", from: "ghost", to: "spirit", result: driverResult{rows: 0}, want: dberr.NotFound},
		{
			name: "taken", from: "jane", to: "admin",
			result: driverResult{err: &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "user_nickname_un"}},
			want:   dberr.UniqueError("Name already taken"),
		},
		{
			name: "technical", from: "jane", to: "janet",
			result: driverResult{err: errors.New("broken pipe")},
			want:   dberr.DBError("Unable to patch username 'jane' due an internal error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStore(t)
			expectation := mock.ExpectExec(sqlPatch).WithArgs(tt.from, tt.to)
			if tt.result.err != nil {
				expectation.WillReturnError(tt.result.err)
			} else {
				expectation.WillReturnResult(sqlmock.NewResult(0, tt.result.rows))
			}

			assert.Equal(t, tt.want, store.PatchUsername(context.Background(), tt.from, tt.to))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

type driverResult struct {
	rows int64
	err  error
}

/*
TestPostgresStore_UpsertExt walks the transaction branches.
*/
func TestPostgresStore_UpsertExt(t *testing.T) {
	ext := profile.ProfileExt{FullName: pointer.To("Jane Doe"), Bio: pointer.To("hello")}

	t.Run("no_account", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlCountID).WithArgs(5).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectRollback()

		rc, old := store.UpsertExt(context.Background(), 5, ext)

		assert.Equal(t, dberr.NotFound, rc)
		assert.Nil(t, old)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserted", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlCountID).WithArgs(2).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(sqlExt).WithArgs(2).WillReturnRows(sqlmock.NewRows(extColumns))
		mock.ExpectExec(sqlInsertExt).WithArgs(2, nil, "Jane Doe", nil, false, "hello").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rc, old := store.UpsertExt(context.Background(), 2, ext)

		assert.Equal(t, dberr.Inserted, rc)
		assert.Nil(t, old)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unaltered", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlCountID).WithArgs(2).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(sqlExt).WithArgs(2).WillReturnRows(sqlmock.NewRows(extColumns).AddRow(nil, "Jane Doe", nil, false, "hello"))
		mock.ExpectRollback()

		rc, old := store.UpsertExt(context.Background(), 2, ext)

		assert.Equal(t, dberr.Unaltered, rc)
		require.NotNil(t, old)
		assert.True(t, old.Equal(ext))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updated", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlCountID).WithArgs(2).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(sqlExt).WithArgs(2).WillReturnRows(sqlmock.NewRows(extColumns).AddRow(nil, "Jane", nil, false, nil))
		mock.ExpectExec(sqlUpdateExt).WithArgs(2, nil, "Jane Doe", nil, false, "hello").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rc, old := store.UpsertExt(context.Background(), 2, ext)

		assert.Equal(t, dberr.Updated, rc)
		require.NotNil(t, old)
		assert.Equal(t, "Jane", pointer.Val(old.FullName))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write_fails", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlCountID).WithArgs(2).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(sqlExt).WithArgs(2).WillReturnRows(sqlmock.NewRows(extColumns))
		mock.ExpectExec(sqlInsertExt).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		rc, _ := store.UpsertExt(context.Background(), 2, ext)

		assert.Equal(t, dberr.DBError("Unable to upsert profile extension id='2' due an internal error"), rc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent_insert", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlCountID).WithArgs(2).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(sqlExt).WithArgs(2).WillReturnRows(sqlmock.NewRows(extColumns))
		mock.ExpectExec(sqlInsertExt).WillReturnError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			Message:        `duplicate key value violates unique constraint "profile_pk"`,
			ConstraintName: "profile_pk",
		})
		mock.ExpectRollback()

		rc, old := store.UpsertExt(context.Background(), 2, ext)

		assert.Equal(t, dberr.PKError("Profile extension already exists"), rc)
		assert.Nil(t, old)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin_fails", func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		rc, old := store.UpsertExt(context.Background(), 2, ext)

		assert.Equal(t, dberr.DBError("Unable to upsert profile extension id='2' due an internal error"), rc)
		assert.Nil(t, old)
	})
}

/*
TestPostgresStore_RecoversAfterDBError checks that a failed call leaves the
store usable.
*/
func TestPostgresStore_RecoversAfterDBError(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectQuery(sqlByName).WillReturnError(errors.New("connection reset"))
	mock.ExpectQuery(sqlByName).WithArgs("admin").WillReturnRows(adminRow(sqlmock.NewRows(profileColumns)))

	rc, _ := store.GetByName(context.Background(), "admin")
	require.True(t, rc.IsError())

	rc, found := store.GetByName(context.Background(), "admin")
	assert.Equal(t, dberr.Succeeded, rc)
	require.NotNil(t, found)
	assert.Equal(t, 1, found.ID)
}
