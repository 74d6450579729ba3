package domain

import (
	"context"
	"maps"
	"slices"
)

// RuleSet maps a field name to its validation rule expression.
type RuleSet map[string]string

// Messages maps "field.rule" or "rule" to a custom failure message. The
// placeholder ":attribute" is replaced with the field's display name.
type Messages map[string]string

// Attributes maps a field name to the display name used in messages.
type Attributes map[string]string

// ResponseExpectation tells the validation gate which failure shape the
// caller can handle.
type ResponseExpectation int

const (
	// ExpectRedirect callers re-render a form: failures produce a Redirect.
	ExpectRedirect ResponseExpectation = iota
	// ExpectStructured callers consume structured errors: failures produce
	// a *ValidationError.
	ExpectStructured
)

// String implements fmt.Stringer.
func (e ResponseExpectation) String() string {
	if e == ExpectStructured {
		return "structured"
	}
	return "redirect"
}

// Redirect is the non-structured validation failure outcome. It carries the
// field errors and the original input so the caller can re-render.
type Redirect struct {
	Errors map[string]string
	Input  map[string]any
}

// FormRequest bundles an input with its own authorization check and rules.
type FormRequest interface {
	Authorize(ctx context.Context) bool
	Input() map[string]any
	Rules() RuleSet
	Messages() Messages
}

// ValidatedFields is an immutable set of validated field values.
type ValidatedFields struct {
	values map[string]any
}

// NewValidatedFields copies values into a new immutable field set.
func NewValidatedFields(values map[string]any) ValidatedFields {
	return ValidatedFields{values: maps.Clone(values)}
}

// Get returns the value of the named field.
func (f ValidatedFields) Get(field string) (any, bool) {
	v, ok := f.values[field]
	return v, ok
}

// Has reports whether the field is present.
func (f ValidatedFields) Has(field string) bool {
	_, ok := f.values[field]
	return ok
}

// Len returns the number of fields.
func (f ValidatedFields) Len() int { return len(f.values) }

// Keys returns the field names in sorted order.
func (f ValidatedFields) Keys() []string {
	return slices.Sorted(maps.Keys(f.values))
}

// Map returns a copy of the fields as a plain map.
func (f ValidatedFields) Map() map[string]any {
	out := maps.Clone(f.values)
	if out == nil {
		out = map[string]any{}
	}
	return out
}

// Only returns a new field set restricted to the named fields.
func (f ValidatedFields) Only(fields ...string) ValidatedFields {
	out := make(map[string]any, len(fields))
	for _, name := range fields {
		if v, ok := f.values[name]; ok {
			out[name] = v
		}
	}
	return ValidatedFields{values: out}
}
