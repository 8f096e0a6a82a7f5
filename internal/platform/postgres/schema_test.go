// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getemall/getemall/internal/platform/postgres"
)

/*
TestEnsureSchema creates the quoted schema before migrations run.
*/
func TestEnsureSchema(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		expect  func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name:   "creates_schema",
			schema: "getemall",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`CREATE SCHEMA IF NOT EXISTS "getemall"`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name:   "quotes_identifier",
			schema: `odd"name`,
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`CREATE SCHEMA IF NOT EXISTS "odd""name"`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name:   "empty_schema_is_noop",
			schema: "",
			expect: func(sqlmock.Sqlmock) {},
		},
		{
			name:   "permission_denied",
			schema: "getemall",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`CREATE SCHEMA IF NOT EXISTS "getemall"`).WillReturnError(errors.New("permission denied for database"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			require.NoError(t, err)
			defer db.Close()

			tt.expect(mock)

			err = postgres.EnsureSchema(context.Background(), db, tt.schema)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
