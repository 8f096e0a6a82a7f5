// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile exposes user accounts as profiles and manages their optional
public extension.

# Architecture

  - Entities: [Profile] (account row) and [ProfileExt] (public extension).
  - Persistence: [Store] reads only active accounts; existence checks aside.
  - Service: username changes and extension upserts, with the pubEmailVerified rule.
  - HTTP: self-service endpoints, admin listing, public profiles and avatar upload.

Accounts are created by an external registration flow and never deleted here.
*/
package profile

import (
	"time"

	"github.com/getemall/getemall/pkg/pointer"
)

// # Domain Entities

// Profile is an account as seen by the application.
type Profile struct {
	ID        int        `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      int        `json:"role"`
	Timestamp time.Time  `json:"timestamp"`
	Verified  bool       `json:"verified"`
	Active    bool       `json:"active"`
	Ext       ProfileExt `json:"ext"`
}

// ProfileExt is the optional, user-editable part of a profile.
//
// PubEmailVerified is read-only for clients: the server sets it.
type ProfileExt struct {
	ProfilePic       *string `json:"profilePic"`
	FullName         *string `json:"fullName"`
	PubEmail         *string `json:"pubEmail"`
	PubEmailVerified bool    `json:"pubEmailVerified"`
	Bio              *string `json:"bio"`
}

// Equal compares values, not pointers. A nil field differs from an empty one.
func (ext ProfileExt) Equal(other ProfileExt) bool {
	return pointer.Equal(ext.ProfilePic, other.ProfilePic) &&
		pointer.Equal(ext.FullName, other.FullName) &&
		pointer.Equal(ext.PubEmail, other.PubEmail) &&
		ext.PubEmailVerified == other.PubEmailVerified &&
		pointer.Equal(ext.Bio, other.Bio)
}

// Public hides the account id and the primary email.
func (p Profile) Public() Profile {
	p.ID = 0
	p.Email = ""
	return p
}

// # Field Identifiers

const (
	FieldID               = "id"
	FieldName             = "name"
	FieldProfilePic       = "profilePic"
	FieldFullName         = "fullName"
	FieldPubEmail         = "pubEmail"
	FieldPubEmailVerified = "pubEmailVerified"
	FieldBio              = "bio"
)

// resource names the entity in NotFound messages.
const resource = "Profile"
