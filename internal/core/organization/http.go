// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import (
	"net/http"

	"github.com/getemall/getemall/internal/platform/apperr"
	"github.com/getemall/getemall/internal/platform/dberr"
	"github.com/getemall/getemall/internal/platform/middleware"
	requestutil "github.com/getemall/getemall/internal/platform/request"
	"github.com/getemall/getemall/internal/platform/respond"
	"github.com/getemall/getemall/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for organizations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new organization [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the organization routing table. Reads are open to any
// logged-in user; writes need an administrator.
func (handler *Handler) Routes() []middleware.Route {
	return []middleware.Route{
		{Method: http.MethodGet, Pattern: "/api/organizations", Handler: handler.list},
		{Method: http.MethodGet, Pattern: "/api/organizations/{id}", Handler: handler.get},
		{Method: http.MethodGet, Pattern: "/api/organizations/name/{name}", Handler: handler.getByName},
		{Method: http.MethodPost, Pattern: "/api/organizations", Handler: handler.create, Roles: sec.Admins},
		{Method: http.MethodPut, Pattern: "/api/organizations/{id}", Handler: handler.update, Roles: sec.Admins},
		{Method: http.MethodDelete, Pattern: "/api/organizations/{id}", Handler: handler.delete, Roles: sec.Admins},
	}
}

/*
GET /api/organizations.

Response:
  - 200: []Organization
  - 503: Database unavailable
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	rc, organizations := handler.service.List(request.Context())
	respond.Outcome(writer, request, rc, resource, organizations)
}

/*
GET /api/organizations/{id}.

Response:
  - 200: Organization
  - 400: id is not a positive integer
  - 404: Organization not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rc, org := handler.service.Get(request.Context(), id)
	respond.Outcome(writer, request, rc, resource, org)
}

/*
GET /api/organizations/name/{name}.

Response:
  - 200: Organization
  - 404: Organization not found
*/
func (handler *Handler) getByName(writer http.ResponseWriter, request *http.Request) {
	rc, org := handler.service.GetByName(request.Context(), requestutil.Param(request, FieldName))
	respond.Outcome(writer, request, rc, resource, org)
}

/*
POST /api/organizations.

Request (Body):
  - name: string (required, max 128)
  - owner: int (existing user id)

Response:
  - 201: Organization with its assigned id
  - 400: Malformed or invalid payload
  - 422: Name already taken / Owner not found
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload Payload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rc, created, err := handler.service.Create(request.Context(), payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Outcome(writer, request, rc, resource, created)
}

/*
PUT /api/organizations/{id}.

Request (Body):
  - name: string (required, max 128)
  - owner: int (existing user id)

Response:
  - 200: Updated organization
  - 404: Organization not found
  - 422: Name already taken / Owner not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload Payload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rc, updated, err := handler.service.Update(request.Context(), id, payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Outcome(writer, request, rc, resource, updated)
}

/*
DELETE /api/organizations/{id}.

Response:
  - 200: The deleted organization
  - 404: Nothing to delete
  - 422: Organization still referenced
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rc, deleted := handler.service.Delete(request.Context(), id)
	if rc == dberr.Unaltered {
		respond.Error(writer, request, apperr.NotFound(resource))
		return
	}
	respond.Outcome(writer, request, rc, resource, deleted)
}
