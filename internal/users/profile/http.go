// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/getemall/getemall/internal/platform/apperr"
	"github.com/getemall/getemall/internal/platform/constants"
	"github.com/getemall/getemall/internal/platform/ctxutil"
	"github.com/getemall/getemall/internal/platform/dberr"
	"github.com/getemall/getemall/internal/platform/middleware"
	requestutil "github.com/getemall/getemall/internal/platform/request"
	"github.com/getemall/getemall/internal/platform/respond"
	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/internal/platform/storage"
	"github.com/getemall/getemall/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for profiles.
type Handler struct {
	service        *Service
	objects        storage.ObjectStore
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewHandler constructs a new profile [Handler]. objects may be nil, in which
// case uploaded pictures are checked but not stored.
func NewHandler(service *Service, objects storage.ObjectStore, maxUploadBytes int64, logger *slog.Logger) *Handler {
	return &Handler{
		service:        service,
		objects:        objects,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Routes returns the profile routing table.
func (handler *Handler) Routes() []middleware.Route {
	return []middleware.Route{
		{Method: http.MethodGet, Pattern: "/api/profiles", Handler: handler.list, Roles: sec.Admins},
		{Method: http.MethodGet, Pattern: "/api/profiles/me", Handler: handler.getOwn},
		{Method: http.MethodPatch, Pattern: "/api/profiles/me", Handler: handler.patchOwn},
		{Method: http.MethodPut, Pattern: "/api/profiles/me/ext", Handler: handler.saveOwnExt},
		{Method: http.MethodPost, Pattern: "/api/profiles/me/picture", Handler: handler.uploadPicture},
		{Method: http.MethodGet, Pattern: "/api/profiles/name/{name}", Handler: handler.getPublic, Roles: sec.Anyone},
		{Method: http.MethodGet, Pattern: "/api/profiles/{id}", Handler: handler.get, Roles: sec.Admins},
		{Method: http.MethodGet, Pattern: "/api/usernames/{name}", Handler: handler.checkUsername, Roles: sec.Anyone},
	}
}

/*
GET /api/profiles.

Response:
  - 200: []Profile
  - 503: Database unavailable
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	rc, profiles := handler.service.List(request.Context())
	respond.Outcome(writer, request, rc, resource, profiles)
}

/*
GET /api/profiles/{id}.

Response:
  - 200: Profile
  - 400: id is not a positive integer
  - 404: Profile not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rc, profile := handler.service.Get(request.Context(), id)
	respond.Outcome(writer, request, rc, resource, profile)
}

// GET /api/profiles/me.
func (handler *Handler) getOwn(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rc, profile := handler.service.Own(request.Context(), user.Name)
	respond.Outcome(writer, request, rc, resource, profile)
}

/*
PATCH /api/profiles/me.

Description: Renames the session user. Only a merge patch touching exactly
the name is accepted.

Request (application/merge-patch+json):
  - name: string

Response:
  - 204: Renamed, or the name did not change
  - 400: Malformed patch document
  - 415: Not a merge patch
  - 422: Invalid username, taken username or unsupported patch
*/
func (handler *Handler) patchOwn(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := requestutil.RequireMediaType(request, constants.MediaTypeMergePatch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch map[string]json.RawMessage
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	raw, ok := patch[FieldName]
	if len(patch) != 1 || !ok {
		respond.Error(writer, request, apperr.Unprocessable("Unprocessable request"))
		return
	}

	var newName string
	if err := json.Unmarshal(raw, &newName); err != nil {
		respond.Error(writer, request, apperr.Unprocessable(validate.UsernameRule))
		return
	}

	rc, err := handler.service.Rename(request.Context(), user.Name, newName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	switch rc {
	case dberr.Unaltered:
		respond.NoContent(writer)
	case dberr.Patched:
		ctxutil.GetSession(request.Context()).Rename(newName)
		respond.NoContent(writer)
	default:
		respond.Outcome(writer, request, rc, resource, nil)
	}
}

/*
PUT /api/profiles/me/ext.

Request (Body): ProfileExt

Response:
  - 200: Extension updated or unchanged
  - 201: Extension created
  - 409: pubEmailVerified was modified
  - 422: Invalid fields, one line per violation
*/
func (handler *Handler) saveOwnExt(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var ext ProfileExt
	if err := requestutil.DecodeJSON(request, &ext); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rc, written, err := handler.service.SaveOwnExt(request.Context(), user.Name, ext)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Outcome(writer, request, rc, resource, written)
}

/*
GET /api/profiles/name/{name}.

Response:
  - 200: Public profile, without id and primary email
  - 404: No verified account with that name
*/
func (handler *Handler) getPublic(writer http.ResponseWriter, request *http.Request) {
	rc, profile := handler.service.Public(request.Context(), requestutil.Param(request, FieldName))
	respond.Outcome(writer, request, rc, resource, profile)
}

/*
GET /api/usernames/{name}.

Response:
  - 200: The name is taken
  - 404: The name is available
  - 503: Database unavailable
*/
func (handler *Handler) checkUsername(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, FieldName)

	rc, available := handler.service.UsernameAvailable(request.Context(), name)
	switch {
	case rc.IsError():
		respond.Outcome(writer, request, rc, resource, nil)
	case available:
		respond.Error(writer, request, apperr.NotFound("Username"))
	default:
		respond.OK(writer, map[string]string{FieldName: name})
	}
}
