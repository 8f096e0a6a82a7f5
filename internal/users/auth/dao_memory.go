// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/getemall/getemall/internal/platform/sec"
)

// MemoryUserDao serves a fixed list of users. It backs AUTH_BACKEND=memory.
type MemoryUserDao struct {
	users map[string]sec.User
}

// NewMemoryUserDao indexes users by name. HashedPass must be a bcrypt hash.
func NewMemoryUserDao(users ...sec.User) *MemoryUserDao {
	index := make(map[string]sec.User, len(users))
	for _, user := range users {
		index[user.Name] = user
	}
	return &MemoryUserDao{users: index}
}

// GetUserByUsername implements [UserDao].
func (dao *MemoryUserDao) GetUserByUsername(_ context.Context, username string) (*sec.User, error) {
	user, ok := dao.users[username]
	if !ok {
		return nil, nil
	}
	return user.Blank(), nil
}

// Authenticate implements [UserDao].
func (dao *MemoryUserDao) Authenticate(_ context.Context, username, password string) (*sec.User, error) {
	user, ok := dao.users[username]
	if !ok || !sec.CheckPasswordHash(password, user.HashedPass) {
		return nil, nil
	}
	return user.Blank(), nil
}

// DemoUsers is the fixed account list served when AUTH_BACKEND=memory. Every
// account uses the password "password".
func DemoUsers() []sec.User {
	return []sec.User{
		{Name: "miqui", HashedPass: "$2a$10$h.dl5J86rGH7I8bD9bZeZeci0pDt0.VwFTGujlnEaZXPf/q7vM5wO", Role: sec.RoleAdmin},
		{Name: "esther", HashedPass: "$2a$10$e0MYzXyjpJS7Pd0RVvHwHe1HlCS4bZJ18JuywdEMLT83E1KDmUhCy", Role: sec.RoleRegularUser},
		{Name: "ramon", HashedPass: "$2a$10$E3DgchtVry3qlYlzJCsyxeSK0fftK4v0ynetVCuDdxGVl1obL.ln2", Role: sec.RoleRegularUser},
	}
}
