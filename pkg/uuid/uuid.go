// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the string identifiers used outside the database.

  - [New]: time-ordered Version 7, for request correlation ids.
  - [Random]: Version 4, for session ids that must not reveal their creation time.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string, falling back to v4 if the clock read fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Random generates a new UUIDv4 string.
func Random() string {
	return uuid.NewString()
}
