// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultConstraintMessage is returned when no rule matches an integrity violation.
const DefaultConstraintMessage = "Integrity constraint violation"

// Constraint maps a driver message pattern to the typed error it stands for.
//
// Patterns are searched, not anchored. They are written against PostgreSQL
// constraint names and are not portable to other engines.
type Constraint struct {
	Pattern *regexp.Regexp
	Code    ReturnCode
}

// Rule builds a case-insensitive [Constraint] from a constraint name fragment.
func Rule(pattern string, code ReturnCode) Constraint {
	return Constraint{Pattern: regexp.MustCompile(`(?i)` + pattern), Code: code}
}

// ClassifyConstraintViolation returns the code of the first rule whose pattern
// matches rawMessage, collapsed to a single line first. Rules whose code is
// not a constraint error are skipped. With no match it falls back to
// ConstraintError([DefaultConstraintMessage]).
func ClassifyConstraintViolation(rawMessage string, rules []Constraint) ReturnCode {
	line := strings.Join(strings.Fields(rawMessage), " ")

	for _, rule := range rules {
		if rule.Pattern == nil || !rule.Code.IsConstraintError() {
			continue
		}
		if rule.Pattern.MatchString(line) {
			return rule.Code
		}
	}

	return ConstraintError(DefaultConstraintMessage)
}

// IsIntegrityViolation reports whether err carries a SQLSTATE of class 23.
func IsIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgerrcode.IsIntegrityConstraintViolation(pgErr.Code)
}

// Classify turns a driver error into a [ReturnCode]. Integrity violations go
// through the rule table; everything else becomes DBError(technicalMessage).
func Classify(err error, rules []Constraint, technicalMessage string) ReturnCode {
	if IsIntegrityViolation(err) {
		return ClassifyConstraintViolation(violationText(err), rules)
	}
	return DBError(technicalMessage)
}

// violationText joins the fields PostgreSQL uses to name a violated constraint.
func violationText(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.Error() + " constraint=" + pgErr.ConstraintName
	}
	return err.Error()
}
