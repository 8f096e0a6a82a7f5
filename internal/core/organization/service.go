// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import (
	"context"
	"log/slog"

	"github.com/getemall/getemall/internal/platform/dberr"
	"github.com/getemall/getemall/internal/platform/validate"
)

// # Service Layer

// Service validates organization writes before they reach the [Store].
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a new organization [Service].
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns every organization.
func (service *Service) List(ctx context.Context) (dberr.ReturnCode, []Organization) {
	return service.store.List(ctx)
}

// Get returns the organization with id. An absent row is reported as NotFound.
func (service *Service) Get(ctx context.Context, id int) (dberr.ReturnCode, *Organization) {
	return notFoundIfEmpty(service.store.GetByID(ctx, id))
}

// GetByName returns the organization called name. An absent row is reported as NotFound.
func (service *Service) GetByName(ctx context.Context, name string) (dberr.ReturnCode, *Organization) {
	return notFoundIfEmpty(service.store.GetByName(ctx, name))
}

/*
Create validates and inserts a new organization.

Returns:
  - dberr.ReturnCode: Store outcome (zero value if validation failed)
  - *Organization: Stored entity with its id
  - error: Validation failures
*/
func (service *Service) Create(ctx context.Context, payload Payload) (dberr.ReturnCode, *Organization, error) {
	if err := validate.Struct(payload); err != nil {
		return dberr.Unset, nil, err
	}

	rc, created := service.store.Insert(ctx, Organization{Name: payload.Name, Owner: payload.Owner})
	if rc == dberr.Inserted {
		service.logger.InfoContext(ctx, "organization_created",
			slog.Int("id", created.ID),
			slog.String("name", created.Name),
		)
	}
	return rc, created, nil
}

/*
Update validates and replaces the organization with id.

Returns:
  - dberr.ReturnCode: Store outcome (zero value if validation failed)
  - *Organization: The updated entity when Updated
  - error: Validation failures
*/
func (service *Service) Update(ctx context.Context, id int, payload Payload) (dberr.ReturnCode, *Organization, error) {
	if err := validate.Struct(payload); err != nil {
		return dberr.Unset, nil, err
	}

	org := Organization{ID: id, Name: payload.Name, Owner: payload.Owner}
	rc := service.store.Update(ctx, org)
	if rc != dberr.Updated {
		return rc, nil, nil
	}
	return rc, &org, nil
}

// Delete removes the organization with id, returning its pre-image.
func (service *Service) Delete(ctx context.Context, id int) (dberr.ReturnCode, *Organization) {
	rc, deleted := service.store.Delete(ctx, id)
	if rc == dberr.Deleted {
		service.logger.InfoContext(ctx, "organization_deleted", slog.Int("id", id), slog.String("name", deleted.Name))
	}
	return rc, deleted
}

func notFoundIfEmpty(rc dberr.ReturnCode, org *Organization) (dberr.ReturnCode, *Organization) {
	if rc == dberr.Succeeded && org == nil {
		return dberr.NotFound, nil
	}
	return rc, org
}
