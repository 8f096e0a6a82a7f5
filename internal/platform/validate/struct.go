// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/getemall/getemall/internal/platform/apperr"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// structEngine lazily configures the shared go-playground validator:
// JSON tag names in errors and the "username" tag.
func structEngine() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = engine.RegisterValidation("username", func(field validator.FieldLevel) bool {
			return IsValidUsername(field.Field().String())
		})
	})
	return engine
}

// Struct validates a payload against its `validate` tags and returns a
// VALIDATION_ERROR [apperr.AppError] listing every failing field.
func Struct(payload any) error {
	err := structEngine().Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.BadRequest("Invalid payload")
	}

	details := make([]apperr.FieldError, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldError.Field(),
			Message: describe(fieldError),
		})
	}
	return apperr.ValidationError("Validation failed", details...)
}

// describe renders the tags used by request payloads.
func describe(fieldError validator.FieldError) string {
	param := fieldError.Param()

	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "max":
		if fieldError.Kind() == reflect.String {
			return "Maximum " + param + " characters"
		}
		return "Must be at most " + param
	case "min":
		if fieldError.Kind() == reflect.String {
			return "Minimum " + param + " characters"
		}
		return "Must be at least " + param
	case "gt":
		return "Must be greater than " + param
	case "username":
		return UsernameRule
	default:
		return "Failed on the '" + fieldError.Tag() + "' rule"
	}
}
