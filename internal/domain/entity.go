package domain

import (
	"fmt"
	"regexp"
)

// DefaultKeyColumn is the primary key column used when an EntityType does
// not name one.
const DefaultKeyColumn = "id"

// KeyKind is the Go representation of an entity's primary key.
type KeyKind int

const (
	// KeyInt keys are stored as int64.
	KeyInt KeyKind = iota
	// KeyString keys are stored as string.
	KeyString
)

// String implements fmt.Stringer.
func (k KeyKind) String() string {
	if k == KeyString {
		return "string"
	}
	return "int"
}

// Entity is a persisted record with a primary key.
type Entity interface {
	// EntityType returns the name of the EntityType the value belongs to.
	EntityType() string

	// PrimaryKey returns the key value: int64 for KeyInt types, string for
	// KeyString types.
	PrimaryKey() any
}

// EntityType describes a persisted entity kind. Descriptors are built at
// startup, registered once and never mutated afterwards.
type EntityType struct {
	// Name identifies the type in resolver configuration and errors.
	Name string

	// Table is the backing table. Defaults to Name.
	Table string

	// KeyColumn is the primary key column. Defaults to "id".
	KeyColumn string

	// KeyKind selects int64 or string primary keys.
	KeyKind KeyKind

	// Hashable declares that the type exposes hash-encoded identifiers.
	// Only int-keyed types can be hashable.
	Hashable bool

	// Fillable lists the columns accepted for mass assignment on insert
	// and update.
	Fillable []string

	// Hydrate maps a stored row to a typed entity. When nil the *Record
	// itself is the entity.
	Hydrate func(*Record) (Entity, error)
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that the descriptor can be used in SQL statements and
// that its capabilities are consistent.
func (t EntityType) Validate() error {
	fields := make(map[string]string)

	if t.Name == "" {
		fields["name"] = "is required"
	}
	if !identifierPattern.MatchString(t.TableName()) {
		fields["table"] = fmt.Sprintf("invalid identifier %q", t.TableName())
	}
	if !identifierPattern.MatchString(t.KeyColumnName()) {
		fields["key_column"] = fmt.Sprintf("invalid identifier %q", t.KeyColumnName())
	}
	if t.Hashable && t.KeyKind != KeyInt {
		fields["hashable"] = "requires an int primary key"
	}
	for _, col := range t.Fillable {
		if !identifierPattern.MatchString(col) {
			fields["fillable"] = fmt.Sprintf("invalid identifier %q", col)
			break
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// TableName returns Table, or Name when Table is empty.
func (t EntityType) TableName() string {
	if t.Table != "" {
		return t.Table
	}
	return t.Name
}

// KeyColumnName returns KeyColumn, or DefaultKeyColumn when empty.
func (t EntityType) KeyColumnName() string {
	if t.KeyColumn != "" {
		return t.KeyColumn
	}
	return DefaultKeyColumn
}

// Owns reports whether e is an entity of this type.
func (t EntityType) Owns(e Entity) bool {
	return !isNil(e) && e.EntityType() == t.Name
}

// FillableAttributes returns only the entries of data whose keys are listed
// in Fillable. The input map is not modified.
func (t EntityType) FillableAttributes(data map[string]any) map[string]any {
	out := make(map[string]any, len(t.Fillable))
	for _, col := range t.Fillable {
		if v, ok := data[col]; ok {
			out[col] = v
		}
	}
	return out
}

// Record is a generic persisted row. It is the entity returned by stores
// for types without a Hydrate function.
type Record struct {
	Type       string
	Key        any
	Attributes map[string]any
}

// EntityType implements Entity.
func (r *Record) EntityType() string { return r.Type }

// PrimaryKey implements Entity.
func (r *Record) PrimaryKey() any { return r.Key }

// Get returns the named attribute.
func (r *Record) Get(column string) (any, bool) {
	v, ok := r.Attributes[column]
	return v, ok
}

// String returns the named attribute formatted as a string, or "" if the
// attribute is absent.
func (r *Record) String(column string) string {
	v, ok := r.Attributes[column]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}
