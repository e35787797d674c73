// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"strings"
)

// Error kinds. Match them with errors.Is or the Is* helpers below.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrInvalidFormat = errors.New("invalid format")
)

// DomainError carries where a failure happened and what kind it is.
type DomainError struct {
	Domain  string // "habit", "character", "lifeforce", ...
	Op      string // "Complete", "GetForUser", ...
	Kind    error
	Message string
	Err     error // cause, may be nil
}

func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(e.Domain)
	b.WriteByte('.')
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *DomainError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewDomainError builds an error without a cause.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return WrapError(domain, op, kind, message, nil)
}

// WrapError attaches domain context and a kind to err.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{Domain: domain, Op: op, Kind: kind, Message: message, Err: err}
}

// Lookup misses returned by repositories.
var (
	ErrUserNotFound         = NewDomainError("user", "Get", ErrNotFound, "user not found")
	ErrCharacterNotFound    = NewDomainError("character", "GetForUser", ErrNotFound, "character not found")
	ErrHabitNotFound        = NewDomainError("habit", "Get", ErrNotFound, "habit not found")
	ErrStreakNotFound       = NewDomainError("habit", "GetStreak", ErrNotFound, "streak not found")
	ErrLifeForceNotFound    = NewDomainError("lifeforce", "GetForDay", ErrNotFound, "life force check not found")
	ErrFocusSessionNotFound = NewDomainError("focus", "Get", ErrNotFound, "focus session not found")
)

// IsNotFound reports a lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports rejected input, including malformed values.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidFormat)
}
