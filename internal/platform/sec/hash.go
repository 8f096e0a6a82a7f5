// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "golang.org/x/crypto/bcrypt"

// CheckPasswordHash compares a plain-text password with its stored bcrypt hash.
//
// Hashes produced by other bcrypt implementations embed their own salt, so the
// separate salt column of the users table is not part of the comparison.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
