// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// User is the identity resolved at authentication time and kept in the session.
//
// # Security
//
// Salt and HashedPass are only populated inside the user store while
// comparing credentials. Every User handed to the rest of the application is
// returned through [User.Blank].
type User struct {
	Name       string   `json:"name"`
	Salt       string   `json:"-"`
	HashedPass string   `json:"-"`
	Role       UserRole `json:"role"`
}

// Blank returns a copy of the user without credential material.
func (u User) Blank() *User {
	return &User{Name: u.Name, Role: u.Role}
}

// Same reports whether two users carry the same identity and role.
// A nil receiver or argument is only the same as another nil.
func (u *User) Same(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Name == other.Name && u.Role == other.Role
}
