// Package validation holds the input rules for usernames and moments.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"momentzero/internal/models"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 20
	MessageMaxLen  = 280
	StyleMaxLen    = 64
	MinTargetYear  = 2025
	MaxTargetYear  = 2100
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateUsername checks length and the allowed character set.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < UsernameMinLen {
		return fmt.Errorf("username must be at least %d characters", UsernameMinLen)
	}
	if n > UsernameMaxLen {
		return fmt.Errorf("username must be at most %d characters", UsernameMaxLen)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, numbers, underscores and hyphens")
	}
	return nil
}

// ValidateMessage limits a message to MessageMaxLen characters (code points).
func ValidateMessage(message string) error {
	if utf8.RuneCountInString(message) > MessageMaxLen {
		return fmt.Errorf("message must be at most %d characters", MessageMaxLen)
	}
	return nil
}

// ValidateTargetYear checks the year lies in the supported range.
func ValidateTargetYear(year int) error {
	if year < MinTargetYear || year > MaxTargetYear {
		return fmt.Errorf("targetYear must be between %d and %d", MinTargetYear, MaxTargetYear)
	}
	return nil
}

// ValidateStyle checks a theme, atmosphere or typography value.
// Values are free-form; only blank and oversized ones are rejected.
func ValidateStyle(field, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(v) > StyleMaxLen {
		return fmt.Errorf("%s must be at most %d characters", field, StyleMaxLen)
	}
	return nil
}

// Errors accumulates field failures in the order they were found.
type Errors []models.FieldError

// Check records err against field when it is non-nil.
func (e *Errors) Check(field string, err error) {
	if err != nil {
		*e = append(*e, models.FieldError{Field: field, Message: err.Error()})
	}
}

// Err returns a validation AppError, or nil when nothing failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return models.NewFieldValidationError(e)
}
