// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/getemall/getemall/internal/platform/postgres"
	"github.com/getemall/getemall/internal/platform/sec"
)

const queryUserByName = `
	SELECT nickname, salt, password, role
	FROM users
	WHERE nickname = $1
	  AND active = true
`

// DatabaseUserDao reads users from the users table.
type DatabaseUserDao struct {
	db     postgres.ConnectionProvider
	logger *slog.Logger
}

// NewDatabaseUserDao constructs a [DatabaseUserDao].
func NewDatabaseUserDao(db postgres.ConnectionProvider, logger *slog.Logger) *DatabaseUserDao {
	return &DatabaseUserDao{db: db, logger: logger}
}

// GetUserByUsername implements [UserDao].
func (dao *DatabaseUserDao) GetUserByUsername(ctx context.Context, username string) (*sec.User, error) {
	user, err := dao.fetch(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}
	return user.Blank(), nil
}

// Authenticate implements [UserDao].
func (dao *DatabaseUserDao) Authenticate(ctx context.Context, username, password string) (*sec.User, error) {
	user, err := dao.fetch(ctx, username)
	if err != nil {
		return nil, err
	}

	if user == nil || !sec.CheckPasswordHash(password, user.HashedPass) {
		dao.logger.InfoContext(ctx, "login_denied", slog.String("username", username))
		return nil, nil
	}

	return user.Blank(), nil
}

// fetch returns the full user row, credentials included.
func (dao *DatabaseUserDao) fetch(ctx context.Context, username string) (*sec.User, error) {
	conn, err := dao.db.Conn(ctx)
	if err != nil {
		return nil, dao.unavailable(ctx, username, err)
	}
	defer conn.Close()

	var (
		user sec.User
		role int
	)
	err = conn.QueryRowContext(ctx, queryUserByName, username).Scan(&user.Name, &user.Salt, &user.HashedPass, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dao.unavailable(ctx, username, err)
	}

	user.Role = sec.RoleFromCode(role)
	return &user, nil
}

func (dao *DatabaseUserDao) unavailable(ctx context.Context, username string, cause error) error {
	dao.logger.ErrorContext(ctx, "user_lookup_failed",
		slog.String("username", username),
		slog.Any("error", cause),
	)
	return fmt.Errorf("%w: %v", ErrUserStoreUnavailable, cause)
}
