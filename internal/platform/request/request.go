// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/getemall/getemall/internal/platform/apperr"
	"github.com/getemall/getemall/internal/platform/constants"
	"github.com/getemall/getemall/internal/platform/ctxutil"
	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam retrieves a named URL parameter as a positive integer.

Returns:
  - int: The parsed value
  - error: apperr.BadRequest if the parameter is not a positive integer
*/
func IntParam(request *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil || value <= 0 {
		return 0, apperr.BadRequest("Invalid " + name + " parameter")
	}
	return value, nil
}

/*
MediaType returns the request content type without parameters, lower-cased.
An absent or malformed header yields an empty string.
*/
func MediaType(request *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get(constants.HeaderContentType))
	if err != nil {
		return ""
	}
	return mediaType
}

/*
RequireMediaType rejects requests whose content type is not expected.

Returns:
  - error: apperr.UnsupportedMediaType on mismatch
*/
func RequireMediaType(request *http.Request, expected string) error {
	if MediaType(request) != expected {
		return apperr.UnsupportedMediaType(expected)
	}
	return nil
}

/*
RequiredUser ensures the request session is logged in and returns its user.

Returns:
  - *sec.User: The session user (no credentials)
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredUser(request *http.Request) (*sec.User, error) {
	user := ctxutil.CurrentUser(request.Context())
	if user == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return user, nil
}
