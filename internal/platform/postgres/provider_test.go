// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getemall/getemall/internal/platform/postgres"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestProvider_Conn hands out a usable connection.
*/
func TestProvider_Conn(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	provider := postgres.NewProvider(db, discardLogger())

	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	conn, err := provider.Conn(context.Background())
	require.NoError(t, err)

	var one int
	require.NoError(t, conn.QueryRowContext(context.Background(), "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
	require.NoError(t, conn.Close())

	assert.NoError(t, provider.Check(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestProvider_Unavailable reports an error when no connection can be obtained.
*/
func TestProvider_Unavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()
	_ = db.Close()

	provider := postgres.NewProvider(db, discardLogger())

	conn, err := provider.Conn(context.Background())
	assert.Error(t, err)
	assert.Nil(t, conn)
	assert.Error(t, provider.Check(context.Background()))
}
