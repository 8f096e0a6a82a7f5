// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"

	"github.com/getemall/getemall/internal/platform/dberr"
)

// # Profile Data Access

// Store defines the data access contract for profiles.
//
// Inactive accounts are invisible to every query except [Store.CheckUsernameAvailability].
type Store interface {

	/*
		List returns every active profile ordered by id.

		Returns:
		  - dberr.ReturnCode: Succeeded or DBError
		  - []Profile: Empty on failure
	*/
	List(ctx context.Context) (dberr.ReturnCode, []Profile)

	/*
		GetByID retrieves an active profile by account id.

		Returns:
		  - dberr.ReturnCode: Succeeded (even when absent) or DBError
		  - *Profile: nil when absent
	*/
	GetByID(ctx context.Context, id int) (dberr.ReturnCode, *Profile)

	/*
		GetByName retrieves an active profile by username.

		Returns:
		  - dberr.ReturnCode: Succeeded (even when absent) or DBError
		  - *Profile: nil when absent
	*/
	GetByName(ctx context.Context, name string) (dberr.ReturnCode, *Profile)

	/*
		CheckUsernameAvailability reports whether no account, active or not, uses name.

		Returns:
		  - dberr.ReturnCode: Succeeded or DBError
		  - bool: true when available
	*/
	CheckUsernameAvailability(ctx context.Context, name string) (dberr.ReturnCode, bool)

	/*
		CheckIDExistence reports whether an active account has id.

		Returns:
		  - dberr.ReturnCode: Succeeded or DBError
		  - bool: true when it exists
	*/
	CheckIDExistence(ctx context.Context, id int) (dberr.ReturnCode, bool)

	/*
		PatchUsername renames the active account currentName to newName.

		Returns:
		  - dberr.ReturnCode: Patched, NotFound, UniqueError or DBError
	*/
	PatchUsername(ctx context.Context, currentName, newName string) dberr.ReturnCode

	/*
		UpsertExt writes the extension of account id in one transaction.

		Returns:
		  - dberr.ReturnCode: Inserted, Updated, Unaltered, NotFound (no active account) or an error
		  - *ProfileExt: The previously stored extension, nil when there was none
	*/
	UpsertExt(ctx context.Context, id int, ext ProfileExt) (dberr.ReturnCode, *ProfileExt)
}
