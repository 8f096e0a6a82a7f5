// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package organization manages organizations and their owners.

# Core Responsibility

  - Entity: Defines the [Organization] record (unique name, owning user).
  - Persistence: [Store] operations report a [dberr.ReturnCode] with their payload.
  - HTTP: Read access for logged-in users, mutations for administrators.

Name uniqueness and owner existence are enforced by the database and surface as
UniqueError("Name already taken") and FKError("Owner not found").
*/
package organization

// # Core Entities

// Organization is a named group owned by a user.
type Organization struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Owner int    `json:"owner"`
}

// Payload is the writable part of an [Organization].
type Payload struct {
	Name  string `json:"name"  validate:"required,max=128"`
	Owner int    `json:"owner" validate:"gt=0"`
}

// # Field Identifiers

const (
	FieldID    = "id"
	FieldName  = "name"
	FieldOwner = "owner"
)

// resource names the entity in NotFound messages.
const resource = "Organization"
