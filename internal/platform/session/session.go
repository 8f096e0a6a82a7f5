// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session models the per-client state kept between requests.

A [Session] holds the authenticated user (if any), one-shot login flags and
the page to return to after logging in. Sessions are persisted by a [Store]
with a sliding expiry: every load or save restarts the TTL.

  - [RedisStore]: production store.
  - [MemoryStore]: single-process store used in development and tests.

A session is only mutated by the request that owns it.
*/
package session

import (
	"context"
	"errors"
	"sort"

	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/pkg/uuid"
)

// ErrNotFound is returned by a [Store] when the id is unknown or expired.
var ErrNotFound = errors.New("session: not found")

// Flag is a one-shot marker reported by the login state endpoint.
type Flag string

const (
	FlagAuthSucceeded Flag = "authSucceeded"
	FlagAuthFailed    Flag = "authFailed"
	FlagAuthError     Flag = "authError"
	FlagLoggedOut     Flag = "loggedOut"
)

// Session is the server-side state bound to a session cookie.
type Session struct {
	ID            string        `json:"id"`
	User          *sec.User     `json:"user,omitempty"`
	Flags         map[Flag]bool `json:"flags,omitempty"`
	LoginRedirect string        `json:"loginRedirect,omitempty"`

	dirty      bool
	previousID string
}

// New creates an empty (anonymous) session.
func New(id string) *Session {
	return &Session{ID: id, dirty: true}
}

// CurrentUser returns the session user, or nil when anonymous.
func (s *Session) CurrentUser() *sec.User {
	if s == nil {
		return nil
	}
	return s.User
}

// Role returns the role of the session user, [sec.RoleAnonymous] when unset.
func (s *Session) Role() sec.UserRole {
	if s == nil || s.User == nil || s.User.Role == "" {
		return sec.RoleAnonymous
	}
	return s.User.Role
}

// SetUser stores a credential-free copy of user.
func (s *Session) SetUser(user *sec.User) {
	if user == nil {
		s.ClearUser()
		return
	}
	s.User = user.Blank()
	s.dirty = true
}

// ClearUser logs the session out.
func (s *Session) ClearUser() {
	s.User = nil
	s.dirty = true
}

// Rename changes the name of the session user after a username patch.
func (s *Session) Rename(name string) {
	if s.User == nil {
		return
	}
	s.User = &sec.User{Name: name, Role: s.User.Role}
	s.dirty = true
}

// Renew moves the session to a fresh random id. It must follow every change
// of the session user so an id known before the change stops working.
func (s *Session) Renew() {
	if s.previousID == "" {
		s.previousID = s.ID
	}
	s.ID = uuid.Random()
	s.dirty = true
}

// PreviousID returns the id abandoned by [Session.Renew], or "".
func (s *Session) PreviousID() string { return s.previousID }

// SetFlag raises a one-shot flag.
func (s *Session) SetFlag(flag Flag) {
	if s.Flags == nil {
		s.Flags = make(map[Flag]bool)
	}
	s.Flags[flag] = true
	s.dirty = true
}

// ConsumeFlags returns the raised flags in lexical order and clears them.
func (s *Session) ConsumeFlags() []Flag {
	flags := make([]Flag, 0, len(s.Flags))
	for flag, raised := range s.Flags {
		if raised {
			flags = append(flags, flag)
		}
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })

	if len(s.Flags) > 0 {
		s.Flags = nil
		s.dirty = true
	}
	return flags
}

// SetLoginRedirect remembers where to go after a successful login.
func (s *Session) SetLoginRedirect(path string) {
	s.LoginRedirect = path
	s.dirty = true
}

// TakeLoginRedirect returns and clears the remembered path.
func (s *Session) TakeLoginRedirect() string {
	path := s.LoginRedirect
	if path != "" {
		s.LoginRedirect = ""
		s.dirty = true
	}
	return path
}

// Dirty reports whether the session changed since it was loaded.
func (s *Session) Dirty() bool { return s.dirty }

// # Persistence Contract

// Store persists sessions between requests.
type Store interface {

	/*
		Load returns the session stored under id and pushes its expiry
		back by the store TTL.

		Returns:
		  - *Session: The stored session (not dirty)
		  - error: ErrNotFound if missing or expired, other errors on backend failure
	*/
	Load(ctx context.Context, id string) (*Session, error)

	/*
		Save writes the session and refreshes its expiry.

		Returns:
		  - error: Backend failures
	*/
	Save(ctx context.Context, session *Session) error

	/*
		Delete removes the session. Deleting an unknown id is not an error.
	*/
	Delete(ctx context.Context, id string) error
}
