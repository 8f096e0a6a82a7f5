// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getemall/getemall/internal/platform/sec"
)

/*
TestRoleSet_Allows covers explicit sets and the empty-set default.
*/
func TestRoleSet_Allows(t *testing.T) {
	tests := []struct {
		name    string
		set     sec.RoleSet
		role    sec.UserRole
		allowed bool
	}{
		{"admins_deny_regular", sec.Admins, sec.RoleRegularUser, false},
		{"admins_allow_admin", sec.Admins, sec.RoleAdmin, true},
		{"empty_allows_regular", sec.RoleSet{}, sec.RoleRegularUser, true},
		{"empty_allows_admin", nil, sec.RoleAdmin, true},
		{"empty_denies_anonymous", sec.RoleSet{}, sec.RoleAnonymous, false},
		{"anyone_allows_anonymous", sec.Anyone, sec.RoleAnonymous, true},
		{"unknown_role_denied", sec.LoggedInUsers, sec.UserRole("ROOT"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.set.Allows(tt.role))
		})
	}
}

/*
TestRoleFromCode verifies the numeric role mapping of the users table.
*/
func TestRoleFromCode(t *testing.T) {
	assert.Equal(t, sec.RoleAdmin, sec.RoleFromCode(1))
	assert.Equal(t, sec.RoleRegularUser, sec.RoleFromCode(0))
	assert.Equal(t, sec.RoleRegularUser, sec.RoleFromCode(2))
}

/*
TestUser_Blank ensures credential material never leaves the store.
*/
func TestUser_Blank(t *testing.T) {
	full := sec.User{Name: "miqui", Salt: "s", HashedPass: "h", Role: sec.RoleAdmin}
	blank := full.Blank()

	assert.Equal(t, "miqui", blank.Name)
	assert.Equal(t, sec.RoleAdmin, blank.Role)
	assert.Empty(t, blank.Salt)
	assert.Empty(t, blank.HashedPass)
	assert.True(t, blank.Same(&full))

	var none *sec.User
	assert.False(t, none.Same(blank))
	assert.True(t, none.Same(nil))
}
