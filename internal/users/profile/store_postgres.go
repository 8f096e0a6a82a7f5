// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/getemall/getemall/internal/platform/dberr"
	"github.com/getemall/getemall/internal/platform/postgres"
)

var (
	userConstraints = []dberr.Constraint{
		dberr.Rule(`user_nickname_un`, dberr.UniqueError("Name already taken")),
	}
	profileConstraints = []dberr.Constraint{
		dberr.Rule(`profile_users_fk`, dberr.FKError("Account not found")),
		dberr.Rule(`profile_pk`, dberr.PKError("Profile extension already exists")),
	}
)

const selectProfile = `
	SELECT u.id, u.email, u.nickname, u.role, u.timestamp, u.verified, u.active,
	       p.profile_pic, p.full_name, p.pub_email, COALESCE(p.pub_email_v, false), p.bio
	FROM users u
	  LEFT OUTER JOIN profiles p
	    ON p.id = u.id
	WHERE u.active = true
`

const (
	queryList   = selectProfile + ` ORDER BY u.id`
	queryByID   = selectProfile + ` AND u.id = $1`
	queryByName = selectProfile + ` AND u.nickname = $1`

	queryCountName = `
		SELECT COUNT(*)
		FROM users
		WHERE nickname = $1
	`
	queryCountID = `
		SELECT COUNT(*)
		FROM users
		WHERE id = $1
		  AND active = true
	`
	queryPatchName = `
		UPDATE users
		SET nickname = $2
		WHERE nickname = $1
		  AND active = true
	`
	queryExt = `
		SELECT profile_pic, full_name, pub_email, pub_email_v, bio
		FROM profiles
		WHERE id = $1
		FOR UPDATE
	`
	queryInsertExt = `
		INSERT INTO profiles (id, profile_pic, full_name, pub_email, pub_email_v, bio)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	queryUpdateExt = `
		UPDATE profiles
		SET profile_pic = $2, full_name = $3, pub_email = $4, pub_email_v = $5, bio = $6, timestamp = NOW()
		WHERE id = $1
	`
)

// PostgresStore implements [Store] over a [postgres.ConnectionProvider].
type PostgresStore struct {
	db     postgres.ConnectionProvider
	logger *slog.Logger
}

// NewPostgresStore constructs a PostgreSQL backed profile store.
func NewPostgresStore(db postgres.ConnectionProvider, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// # Retrieval

// List implements [Store].
func (store *PostgresStore) List(ctx context.Context) (dberr.ReturnCode, []Profile) {
	profiles := []Profile{}

	err := store.withConn(ctx, func(conn postgres.DBTX) error {
		rows, err := conn.QueryContext(ctx, queryList)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			profile, err := scanProfile(rows)
			if err != nil {
				return err
			}
			profiles = append(profiles, *profile)
		}
		return rows.Err()
	})
	if err != nil {
		message := "Unable to recover profiles list due an internal error"
		store.technical(ctx, message, err)
		return dberr.DBError(message), []Profile{}
	}

	return dberr.Succeeded, profiles
}

// GetByID implements [Store].
func (store *PostgresStore) GetByID(ctx context.Context, id int) (dberr.ReturnCode, *Profile) {
	profile, err := store.fetchOne(ctx, queryByID, id)
	if err != nil {
		message := fmt.Sprintf("Unable to recover profile id='%d' due an internal error", id)
		store.technical(ctx, message, err)
		return dberr.DBError(message), nil
	}
	return dberr.Succeeded, profile
}

// GetByName implements [Store].
func (store *PostgresStore) GetByName(ctx context.Context, name string) (dberr.ReturnCode, *Profile) {
	profile, err := store.fetchOne(ctx, queryByName, name)
	if err != nil {
		message := fmt.Sprintf("Unable to recover profile '%s' due an internal error", name)
		store.technical(ctx, message, err)
		return dberr.DBError(message), nil
	}
	return dberr.Succeeded, profile
}

// # Checks

// CheckUsernameAvailability implements [Store].
func (store *PostgresStore) CheckUsernameAvailability(ctx context.Context, name string) (dberr.ReturnCode, bool) {
	count, err := store.count(ctx, queryCountName, name)
	if err != nil {
		message := fmt.Sprintf("Unable to check username '%s' due an internal error", name)
		store.technical(ctx, message, err)
		return dberr.DBError(message), false
	}
	return dberr.Succeeded, count == 0
}

// CheckIDExistence implements [Store].
func (store *PostgresStore) CheckIDExistence(ctx context.Context, id int) (dberr.ReturnCode, bool) {
	count, err := store.count(ctx, queryCountID, id)
	if err != nil {
		message := fmt.Sprintf("Unable to check profile id='%d' due an internal error", id)
		store.technical(ctx, message, err)
		return dberr.DBError(message), false
	}
	return dberr.Succeeded, count > 0
}

// # Mutation

// PatchUsername implements [Store].
func (store *PostgresStore) PatchUsername(ctx context.Context, currentName, newName string) dberr.ReturnCode {
	var rows int64
	err := store.withConn(ctx, func(conn postgres.DBTX) error {
		result, err := conn.ExecContext(ctx, queryPatchName, currentName, newName)
		if err != nil {
			return err
		}
		rows, err = result.RowsAffected()
		return err
	})
	if err != nil {
		rc := dberr.Classify(err, userConstraints, fmt.Sprintf("Unable to patch username '%s' due an internal error", currentName))
		store.failed(ctx, rc, err, slog.String("username", currentName))
		return rc
	}

	if rows != 1 {
		store.logger.InfoContext(ctx, "profile_patch_not_found", slog.String("username", currentName))
		return dberr.NotFound
	}
	return dberr.Patched
}

// UpsertExt implements [Store].
//
// The account check, the read of the stored extension and the write share
// one transaction. An existing row is locked while it is compared. Two
// concurrent first inserts race on profile_pk: the loser gets PKError.
func (store *PostgresStore) UpsertExt(ctx context.Context, id int, ext ProfileExt) (dberr.ReturnCode, *ProfileExt) {
	conn, err := store.db.Conn(ctx)
	if err != nil {
		return store.upsertFailed(ctx, id, err), nil
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return store.upsertFailed(ctx, id, err), nil
	}
	defer func() { _ = tx.Rollback() }()

	var accounts int
	if err := tx.QueryRowContext(ctx, queryCountID, id).Scan(&accounts); err != nil {
		return store.upsertFailed(ctx, id, err), nil
	}
	if accounts == 0 {
		return dberr.NotFound, nil
	}

	old, err := scanExt(tx.QueryRowContext(ctx, queryExt, id))
	if err != nil {
		return store.upsertFailed(ctx, id, err), nil
	}

	rc := dberr.Inserted
	query := queryInsertExt
	switch {
	case old == nil:
	case old.Equal(ext):
		return dberr.Unaltered, old
	default:
		rc, query = dberr.Updated, queryUpdateExt
	}

	_, err = tx.ExecContext(ctx, query, id, ext.ProfilePic, ext.FullName, ext.PubEmail, ext.PubEmailVerified, ext.Bio)
	if err == nil {
		err = tx.Commit()
	}
	if err != nil {
		return store.upsertFailed(ctx, id, err), old
	}

	return rc, old
}

// # Helpers

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*Profile, error) {
	var profile Profile
	err := row.Scan(
		&profile.ID, &profile.Email, &profile.Name, &profile.Role, &profile.Timestamp, &profile.Verified, &profile.Active,
		&profile.Ext.ProfilePic, &profile.Ext.FullName, &profile.Ext.PubEmail, &profile.Ext.PubEmailVerified, &profile.Ext.Bio,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// scanExt reads a stored extension; no row is (nil, nil).
func scanExt(row rowScanner) (*ProfileExt, error) {
	var ext ProfileExt
	err := row.Scan(&ext.ProfilePic, &ext.FullName, &ext.PubEmail, &ext.PubEmailVerified, &ext.Bio)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ext, nil
}

func (store *PostgresStore) withConn(ctx context.Context, fn func(conn postgres.DBTX) error) error {
	conn, err := store.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

func (store *PostgresStore) fetchOne(ctx context.Context, query string, arg any) (*Profile, error) {
	var profile *Profile
	err := store.withConn(ctx, func(conn postgres.DBTX) error {
		var err error
		profile, err = scanProfile(conn.QueryRowContext(ctx, query, arg))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return profile, err
}

func (store *PostgresStore) count(ctx context.Context, query string, arg any) (int, error) {
	var count int
	err := store.withConn(ctx, func(conn postgres.DBTX) error {
		return conn.QueryRowContext(ctx, query, arg).Scan(&count)
	})
	return count, err
}

func (store *PostgresStore) upsertFailed(ctx context.Context, id int, err error) dberr.ReturnCode {
	rc := dberr.Classify(err, profileConstraints, fmt.Sprintf("Unable to upsert profile extension id='%d' due an internal error", id))
	store.failed(ctx, rc, err, slog.Int("id", id))
	return rc
}

func (store *PostgresStore) technical(ctx context.Context, message string, err error) {
	store.logger.ErrorContext(ctx, message, slog.Any("error", err))
}

func (store *PostgresStore) failed(ctx context.Context, rc dberr.ReturnCode, err error, attrs ...any) {
	if rc.IsConstraintError() {
		store.logger.WarnContext(ctx, "profile_constraint_violation", append(attrs, slog.String("code", rc.String()))...)
		return
	}
	store.technical(ctx, rc.Message(), err)
}
