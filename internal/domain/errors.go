package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrConfiguration     = errors.New("configuration error")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrForbidden         = errors.New("forbidden")
	ErrUnavailable       = errors.New("unavailable")
	ErrTransactionActive = errors.New("transaction already active")
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError is returned by strict resolution when no entity of Type
// exists for the given key.
type NotFoundError struct {
	Type string
	Key  any
}

func (e *NotFoundError) Error() string {
	if e.Key == nil {
		return fmt.Sprintf("entity %s: %s", e.Type, ErrNotFound.Error())
	}
	return fmt.Sprintf("entity %s %v: %s", e.Type, e.Key, ErrNotFound.Error())
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConfigurationError reports a (domain, tag) pair with no resolver mapping,
// or a mapping naming a type that was never registered. It is a deployment
// bug and is never retried.
type ConfigurationError struct {
	Domain   string
	Tag      string
	TypeName string
}

func (e *ConfigurationError) Error() string {
	if e.TypeName != "" {
		return fmt.Sprintf("%s: resolver %s.%s maps to unregistered type %q",
			ErrConfiguration.Error(), e.Domain, e.Tag, e.TypeName)
	}
	return fmt.Sprintf("%s: no resolver mapping for type %q in domain %q",
		ErrConfiguration.Error(), e.Tag, e.Domain)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// TypeMismatchError reports a resolved value that does not satisfy the
// expected entity type.
type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", ErrTypeMismatch.Error(), e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
