// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dberr defines the closed set of outcomes returned by every persistence
function, and the bridge from PostgreSQL driver errors into that set.

Architecture:

  - ReturnCode: a tagged value (Kind + message) replacing raw driver errors.
  - Constraint rules: per-entity ordered (pattern, ReturnCode) pairs that turn
    integrity-violation messages into typed errors.
  - Detection: SQLSTATE class 23 via [pgconn.PgError] and pgerrcode.

Callers switch on [ReturnCode.Kind] and never inspect driver errors.
*/
package dberr

import "fmt"

// # Outcome Kinds

// Kind tags a [ReturnCode].
type Kind int

const (
	// KindUnset is the zero Kind. It never comes out of a persistence function.
	KindUnset Kind = iota

	KindSucceeded
	KindDeleted
	KindInserted
	KindUpdated
	KindPatched
	KindUnaltered
	KindNotFound

	KindError
	KindDBError
	KindConstraintError
	KindUniqueError
	KindFKError
	KindPKError
)

var kindNames = map[Kind]string{
	KindUnset:           "Unset",
	KindSucceeded:       "Succeeded",
	KindDeleted:         "Deleted",
	KindInserted:        "Inserted",
	KindUpdated:         "Updated",
	KindPatched:         "Patched",
	KindUnaltered:       "Unaltered",
	KindNotFound:        "NotFound",
	KindError:           "Error",
	KindDBError:         "DBError",
	KindConstraintError: "ConstraintError",
	KindUniqueError:     "UniqueError",
	KindFKError:         "FKError",
	KindPKError:         "PKError",
}

// String returns the variant name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// # Return Codes

// ReturnCode is the result tag of a persistence operation.
//
// Values are comparable: two codes are equal when both kind and message match,
// so `rc == dberr.Updated` is a valid test for payload-free variants.
type ReturnCode struct {
	kind    Kind
	message string
}

// Unset is the zero ReturnCode, returned next to a non-nil error when no
// persistence outcome exists. It counts as an error.
var Unset = ReturnCode{}

// Non-error outcomes.
var (
	Succeeded = ReturnCode{kind: KindSucceeded}
	Deleted   = ReturnCode{kind: KindDeleted}
	Inserted  = ReturnCode{kind: KindInserted}
	Updated   = ReturnCode{kind: KindUpdated}
	Patched   = ReturnCode{kind: KindPatched}
	Unaltered = ReturnCode{kind: KindUnaltered}
	NotFound  = ReturnCode{kind: KindNotFound}
)

// Error is a generic or unexpected failure.
func Error(message string) ReturnCode { return ReturnCode{kind: KindError, message: message} }

// DBError is a connectivity or technical failure.
func DBError(message string) ReturnCode { return ReturnCode{kind: KindDBError, message: message} }

// ConstraintError is an integrity violation with no more specific classification.
func ConstraintError(message string) ReturnCode {
	return ReturnCode{kind: KindConstraintError, message: message}
}

// UniqueError is a duplicate key violation.
func UniqueError(message string) ReturnCode {
	return ReturnCode{kind: KindUniqueError, message: message}
}

// FKError is a referential integrity violation.
func FKError(message string) ReturnCode { return ReturnCode{kind: KindFKError, message: message} }

// PKError is a primary key ("already exists") violation.
func PKError(message string) ReturnCode { return ReturnCode{kind: KindPKError, message: message} }

// Kind returns the variant tag.
func (rc ReturnCode) Kind() Kind { return rc.kind }

// Message returns the human-readable message. Empty for non-error outcomes.
func (rc ReturnCode) Message() string { return rc.message }

// IsError reports whether rc is one of the error variants or [Unset].
func (rc ReturnCode) IsError() bool {
	switch rc.kind {
	case KindUnset, KindError, KindDBError, KindConstraintError, KindUniqueError, KindFKError, KindPKError:
		return true
	default:
		return false
	}
}

// IsConstraintError reports whether rc is ConstraintError or one of its specializations.
func (rc ReturnCode) IsConstraintError() bool {
	switch rc.kind {
	case KindConstraintError, KindUniqueError, KindFKError, KindPKError:
		return true
	default:
		return false
	}
}

// String renders the code as `Kind` or `Kind("message")`.
func (rc ReturnCode) String() string {
	if rc.message == "" {
		return rc.kind.String()
	}
	return fmt.Sprintf("%s(%q)", rc.kind, rc.message)
}
