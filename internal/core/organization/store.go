// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import (
	"context"

	"github.com/getemall/getemall/internal/platform/dberr"
)

// # Organization Data Access

// Store defines the data access contract for organizations.
//
// No method returns a Go error: technical failures are logged and reported
// as DBError with a fixed message.
type Store interface {

	/*
		List returns every organization ordered by id.

		Returns:
		  - dberr.ReturnCode: Succeeded or DBError
		  - []Organization: Empty on failure
	*/
	List(ctx context.Context) (dberr.ReturnCode, []Organization)

	/*
		GetByID retrieves an organization by its id.

		Returns:
		  - dberr.ReturnCode: Succeeded (even when absent) or DBError
		  - *Organization: nil when absent
	*/
	GetByID(ctx context.Context, id int) (dberr.ReturnCode, *Organization)

	/*
		GetByName retrieves an organization by its unique name.

		Returns:
		  - dberr.ReturnCode: Succeeded (even when absent) or DBError
		  - *Organization: nil when absent
	*/
	GetByName(ctx context.Context, name string) (dberr.ReturnCode, *Organization)

	/*
		Insert persists a new organization. The id of the argument is ignored.

		Returns:
		  - dberr.ReturnCode: Inserted, UniqueError, FKError, DBError or Error
		  - *Organization: The stored entity with its assigned id, nil otherwise
	*/
	Insert(ctx context.Context, org Organization) (dberr.ReturnCode, *Organization)

	/*
		Update replaces name and owner of the organization with org.ID.

		Returns:
		  - dberr.ReturnCode: Updated, NotFound, UniqueError, FKError or DBError
	*/
	Update(ctx context.Context, org Organization) dberr.ReturnCode

	/*
		Delete removes an organization, returning what was targeted.

		Returns:
		  - dberr.ReturnCode: Deleted, Unaltered (absent), ConstraintError, DBError or Error
		  - *Organization: The pre-image whenever the row existed
	*/
	Delete(ctx context.Context, id int) (dberr.ReturnCode, *Organization)
}
