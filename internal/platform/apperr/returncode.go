// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr

import (
	"net/http"

	"github.com/getemall/getemall/internal/platform/dberr"
)

// StatusOf returns the HTTP status for a persistence outcome.
//
//	Succeeded, Deleted, Updated, Patched, Unaltered -> 200
//	Inserted                                        -> 201
//	NotFound                                        -> 404
//	ConstraintError, UniqueError, FKError, PKError  -> 422
//	DBError                                         -> 503
//	Error, Unset                                    -> 500
func StatusOf(rc dberr.ReturnCode) int {
	switch rc.Kind() {
	case dberr.KindSucceeded, dberr.KindDeleted, dberr.KindUpdated, dberr.KindPatched, dberr.KindUnaltered:
		return http.StatusOK
	case dberr.KindInserted:
		return http.StatusCreated
	case dberr.KindNotFound:
		return http.StatusNotFound
	case dberr.KindConstraintError, dberr.KindUniqueError, dberr.KindFKError, dberr.KindPKError:
		return http.StatusUnprocessableEntity
	case dberr.KindDBError:
		return http.StatusServiceUnavailable
	case dberr.KindError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// FromReturnCode converts an outcome into an [AppError]. It returns nil for
// outcomes that are neither errors nor NotFound; resource names the entity for
// the NotFound message.
func FromReturnCode(rc dberr.ReturnCode, resource string) *AppError {
	switch rc.Kind() {
	case dberr.KindNotFound:
		return NotFound(resource)
	case dberr.KindConstraintError, dberr.KindUniqueError, dberr.KindFKError, dberr.KindPKError:
		return &AppError{
			Code:       "CONSTRAINT_VIOLATION",
			Message:    rc.Message(),
			HTTPStatus: StatusOf(rc),
		}
	case dberr.KindDBError:
		return ServiceUnavailable(rc.Message())
	case dberr.KindError:
		return &AppError{
			Code:       "INTERNAL_ERROR",
			Message:    rc.Message(),
			HTTPStatus: StatusOf(rc),
		}
	case dberr.KindUnset:
		return &AppError{
			Code:       "INTERNAL_ERROR",
			Message:    "Unknown persistence outcome",
			HTTPStatus: http.StatusInternalServerError,
		}
	default:
		return nil
	}
}
