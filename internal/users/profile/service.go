// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"log/slog"

	"golang.org/x/text/cases"

	"github.com/getemall/getemall/internal/platform/apperr"
	"github.com/getemall/getemall/internal/platform/dberr"
	"github.com/getemall/getemall/internal/platform/validate"
)

// # Service Layer

// Service applies the profile rules on top of a [Store].
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a new profile [Service].
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns every active profile.
func (service *Service) List(ctx context.Context) (dberr.ReturnCode, []Profile) {
	return service.store.List(ctx)
}

// Get returns the profile with id. An absent row is reported as NotFound.
func (service *Service) Get(ctx context.Context, id int) (dberr.ReturnCode, *Profile) {
	return notFoundIfEmpty(service.store.GetByID(ctx, id))
}

// Own returns the profile of the account called name.
func (service *Service) Own(ctx context.Context, name string) (dberr.ReturnCode, *Profile) {
	return notFoundIfEmpty(service.store.GetByName(ctx, name))
}

// Public returns the public view of a verified account. Accounts still being
// verified do not have a public profile.
func (service *Service) Public(ctx context.Context, name string) (dberr.ReturnCode, *Profile) {
	rc, profile := notFoundIfEmpty(service.store.GetByName(ctx, name))
	if profile == nil {
		return rc, nil
	}
	if !profile.Verified {
		return dberr.NotFound, nil
	}

	public := profile.Public()
	return rc, &public
}

// UsernameAvailable reports whether name is free.
func (service *Service) UsernameAvailable(ctx context.Context, name string) (dberr.ReturnCode, bool) {
	return service.store.CheckUsernameAvailability(ctx, name)
}

/*
Rename changes the username of the account currentName.

Returns:
  - dberr.ReturnCode: Patched on success, Unaltered if newName is the current name
  - error: apperr.Unprocessable if newName breaks the username rule
*/
func (service *Service) Rename(ctx context.Context, currentName, newName string) (dberr.ReturnCode, error) {
	if newName == currentName {
		return dberr.Unaltered, nil
	}
	if err := (&validate.Validator{}).Username(FieldName, newName).Err(); err != nil {
		return dberr.Unset, err
	}

	rc := service.store.PatchUsername(ctx, currentName, newName)
	if rc == dberr.Patched {
		service.logger.InfoContext(ctx, "username_changed",
			slog.String("from", currentName),
			slog.String("to", newName),
		)
	}
	return rc, nil
}

/*
SaveOwnExt replaces the extension of the account called name.

# Flow
 1. Load the profile; an identical extension is answered as Unaltered without writing.
 2. Reject any change of pubEmailVerified (409).
 3. Validate the fields (422 with every violation).
 4. Recompute pubEmailVerified and upsert.

Returns:
  - dberr.ReturnCode: Inserted, Updated, Unaltered or a store error
  - *ProfileExt: The extension as written
  - error: Conflict or Unprocessable client errors
*/
func (service *Service) SaveOwnExt(ctx context.Context, name string, ext ProfileExt) (dberr.ReturnCode, *ProfileExt, error) {
	rc, current := notFoundIfEmpty(service.store.GetByName(ctx, name))
	if current == nil {
		return rc, nil, nil
	}

	if ext.Equal(current.Ext) {
		return dberr.Unaltered, &current.Ext, nil
	}
	if ext.PubEmailVerified != current.Ext.PubEmailVerified {
		return dberr.Unset, nil, apperr.Conflict("Attempt to update a readonly attribute: '" + FieldPubEmailVerified + "'")
	}
	if violations := ValidateExt(ext); len(violations) > 0 {
		return dberr.Unset, nil, apperr.Unprocessable(JoinViolations(violations))
	}

	ext.PubEmailVerified = pubEmailVerified(*current, ext)

	rc, _ = service.store.UpsertExt(ctx, current.ID, ext)
	return rc, &ext, nil
}

// pubEmailVerified keeps the stored flag while the public email is unchanged,
// and otherwise trusts only a copy of the verified primary email.
func pubEmailVerified(current Profile, ext ProfileExt) bool {
	switch {
	case sameEmail(ext.PubEmail, current.Ext.PubEmail):
		return current.Ext.PubEmailVerified
	case ext.PubEmail != nil && current.Verified && sameEmail(ext.PubEmail, &current.Email):
		return true
	default:
		return false
	}
}

// sameEmail compares two optional addresses ignoring case.
func sameEmail(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	fold := cases.Fold()
	return fold.String(*a) == fold.String(*b)
}

func notFoundIfEmpty(rc dberr.ReturnCode, profile *Profile) (dberr.ReturnCode, *Profile) {
	if rc == dberr.Succeeded && profile == nil {
		return dberr.NotFound, nil
	}
	return rc, profile
}
