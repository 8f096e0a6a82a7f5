// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth resolves user identities and serves the login endpoints.

# Architecture

  - [UserDao]: credential lookup contract, with a database and an in-memory implementation.
  - [Handler]: login, logout and login state over the request session.

Every [sec.User] leaving this package has its salt and hash blanked.
*/
package auth

import (
	"context"
	"errors"

	"github.com/getemall/getemall/internal/platform/sec"
)

// ErrUserStoreUnavailable wraps technical failures of a [UserDao].
var ErrUserStoreUnavailable = errors.New("auth: user store unavailable")

// UserDao looks up and authenticates users.
//
// A nil user with a nil error means "no such user" or "wrong password";
// a non-nil error is always a technical failure wrapping [ErrUserStoreUnavailable].
type UserDao interface {

	/*
		GetUserByUsername returns the active user with the given name.

		Returns:
		  - *sec.User: Blanked user, nil if not found
		  - error: ErrUserStoreUnavailable on technical failure
	*/
	GetUserByUsername(ctx context.Context, username string) (*sec.User, error)

	/*
		Authenticate checks a username/password pair.

		Returns:
		  - *sec.User: Blanked user on match, nil otherwise
		  - error: ErrUserStoreUnavailable on technical failure
	*/
	Authenticate(ctx context.Context, username, password string) (*sec.User, error)
}
