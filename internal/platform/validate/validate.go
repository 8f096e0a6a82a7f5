// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError], the account field rules
// (username, public email) and struct-tag validation for request payloads.
//
// # Architecture
//
// This package is used in the service layer and in handlers decoding
// payloads, never in storage.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/getemall/getemall/internal/platform/apperr"
)

// # Account Field Rules

const (
	// UsernameRule is the message reported for an invalid username.
	UsernameRule = "Username may only contain alphanumeric characters or single hyphens, " +
		"must be between 2 and 40 characters long, and cannot begin or end with a hyphen"

	// EmailMaxLen bounds any email field.
	EmailMaxLen = 128
)

var (
	usernameRegex = regexp.MustCompile(`(?i)^[a-z0-9]([a-z0-9-]{0,38})[a-z0-9]$`)
	emailRegex    = regexp.MustCompile(`(?i)^[a-z0-9+._%-]{1,124}@[a-z0-9][a-z0-9-]{0,64}([.][a-z0-9][a-z0-9-]{0,25})+$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.BadRequest("Invalid JSON payload")
)

// IsValidUsername reports whether name is 2 to 40 alphanumerics or single
// hyphens, not starting or ending with a hyphen.
func IsValidUsername(name string) bool {
	return usernameRegex.MatchString(name) && !strings.Contains(name, "--")
}

// IsValidEmail reports whether value is an acceptable public email address.
func IsValidEmail(value string) bool {
	return len(value) <= EmailMaxLen && emailRegex.MatchString(value)
}

// # Chainable Validator

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// MaxLen fails with "<label> cannot exceed <max> characters" when the Unicode
// character count of value exceeds max.
func (v *Validator) MaxLen(field, label, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("%s cannot exceed %d characters", label, max))
	}
	return v
}

// Email fails if the value is not an acceptable public email address.
func (v *Validator) Email(field, value string) *Validator {
	if !IsValidEmail(value) {
		v.add(field, fmt.Sprintf("Email must be a valid address and cannot exceed %d characters", EmailMaxLen))
	}
	return v
}

// Username fails if the value breaks [UsernameRule].
func (v *Validator) Username(field, value string) *Validator {
	if !IsValidUsername(value) {
		v.add(field, UsernameRule)
	}
	return v
}

// Err returns nil when every rule passed. Otherwise it returns a 422
// [apperr.AppError] whose message is the first violation and whose details
// list them all.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	appError := apperr.Unprocessable(v.errs[0].Message)
	appError.Details = v.errs
	return appError
}

// Messages returns the failure messages in the order the rules ran.
func (v *Validator) Messages() []string {
	messages := make([]string, 0, len(v.errs))
	for _, fieldError := range v.errs {
		messages = append(messages, fieldError.Message)
	}
	return messages
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
