// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "slices"

// # User Roles

// UserRole represents the authorization level attached to a request.
type UserRole string

const (
	// No session user
	RoleAnonymous UserRole = "ANONYMOUS"

	// Authenticated account without administrative rights
	RoleRegularUser UserRole = "REGULAR_USER"

	// Unrestricted system access
	RoleAdmin UserRole = "ADMIN"
)

// adminRoleCode is the value of users.role that grants [RoleAdmin].
const adminRoleCode = 1

// RoleFromCode maps the numeric role stored in the users table to a [UserRole].
// Any code other than the admin one yields [RoleRegularUser].
func RoleFromCode(code int) UserRole {
	if code == adminRoleCode {
		return RoleAdmin
	}
	return RoleRegularUser
}

// # Role Sets

// RoleSet is the set of roles a route admits.
//
// An empty set is NOT "everyone": it stands for [LoggedInUsers]. Routes that
// must be reachable without a session declare [Anyone] explicitly.
type RoleSet []UserRole

var (
	// Admins admits administrators only.
	Admins = RoleSet{RoleAdmin}

	// LoggedInUsers admits every authenticated role. It is the effective set of an empty declaration.
	LoggedInUsers = RoleSet{RoleAdmin, RoleRegularUser}

	// Anyone admits anonymous requests too.
	Anyone = RoleSet{RoleAnonymous, RoleRegularUser, RoleAdmin}
)

// Effective resolves the empty-set default.
func (s RoleSet) Effective() RoleSet {
	if len(s) == 0 {
		return LoggedInUsers
	}
	return s
}

// Allows reports whether role belongs to the effective set.
func (s RoleSet) Allows(role UserRole) bool {
	return slices.Contains(s.Effective(), role)
}
