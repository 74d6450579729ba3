package domain

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// KeyTag distinguishes the variants of Key.
type KeyTag int

const (
	// TagDirect keys hold a primary key value.
	TagDirect KeyTag = iota
	// TagHashed keys hold an opaque hash-encoded token.
	TagHashed
	// TagMaterialized keys hold an entity that was already loaded.
	TagMaterialized
)

// String implements fmt.Stringer.
func (t KeyTag) String() string {
	switch t {
	case TagHashed:
		return "hashed"
	case TagMaterialized:
		return "materialized"
	default:
		return "direct"
	}
}

// Key identifies an entity: a direct primary key, a hashed token, or the
// entity itself. The zero value is an invalid direct key.
type Key struct {
	tag    KeyTag
	value  any
	entity Entity
}

// IDKey returns a direct integer primary key.
func IDKey(id int64) Key {
	return Key{tag: TagDirect, value: id}
}

// StringKey returns a direct string primary key.
func StringKey(id string) Key {
	return Key{tag: TagDirect, value: id}
}

// HashKey returns a hash-encoded token key.
func HashKey(token string) Key {
	return Key{tag: TagHashed, value: token}
}

// EntityKey returns a key wrapping an already materialized entity. A nil
// pointer entity is stored as nil and resolves as absent.
func EntityKey(e Entity) Key {
	if isNil(e) {
		e = nil
	}
	return Key{tag: TagMaterialized, entity: e}
}

// isNil reports whether e is nil or an interface holding a nil pointer.
func isNil(e Entity) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// KeyOf classifies an untyped identifier. Entities become materialized keys,
// integers become direct keys and strings become hashed tokens; a hashed
// token still falls back to primary-key lookup during resolution. Unsigned
// values above math.MaxInt64 are rejected.
func KeyOf(v any) (Key, error) {
	switch id := v.(type) {
	case Key:
		return id, nil
	case Entity:
		return EntityKey(id), nil
	case int:
		return IDKey(int64(id)), nil
	case int8:
		return IDKey(int64(id)), nil
	case int16:
		return IDKey(int64(id)), nil
	case int32:
		return IDKey(int64(id)), nil
	case int64:
		return IDKey(id), nil
	case uint:
		return unsignedKey(uint64(id))
	case uint8:
		return IDKey(int64(id)), nil
	case uint16:
		return IDKey(int64(id)), nil
	case uint32:
		return IDKey(int64(id)), nil
	case uint64:
		return unsignedKey(id)
	case string:
		if id == "" {
			return Key{}, fmt.Errorf("%w: empty identifier", ErrValidation)
		}
		return HashKey(id), nil
	case nil:
		return Key{}, fmt.Errorf("%w: nil identifier", ErrValidation)
	default:
		return Key{}, fmt.Errorf("%w: unsupported identifier type %T", ErrValidation, v)
	}
}

func unsignedKey(id uint64) (Key, error) {
	if id > math.MaxInt64 {
		return Key{}, fmt.Errorf("%w: identifier %d out of range", ErrValidation, id)
	}
	return IDKey(int64(id)), nil
}

// Tag returns the variant of k.
func (k Key) Tag() KeyTag { return k.tag }

// Entity returns the wrapped entity for materialized keys.
func (k Key) Entity() (Entity, bool) {
	if k.tag != TagMaterialized || k.entity == nil {
		return nil, false
	}
	return k.entity, true
}

// Token returns the string form of the key if it can be a hash token:
// hashed keys and direct string keys.
func (k Key) Token() (string, bool) {
	if k.tag == TagMaterialized {
		return "", false
	}
	s, ok := k.value.(string)
	return s, ok
}

// Value returns the raw key value: the primary key for direct keys, the
// token for hashed keys and the entity's primary key for materialized keys.
func (k Key) Value() any {
	if k.tag == TagMaterialized {
		if k.entity == nil {
			return nil
		}
		return k.entity.PrimaryKey()
	}
	return k.value
}

// PrimaryKeyFor converts the key value to a primary key of the given kind.
// It reports false when the value cannot be a key of that kind, such as a
// non-numeric token for an int-keyed type.
func (k Key) PrimaryKeyFor(kind KeyKind) (any, bool) {
	switch v := k.Value().(type) {
	case int64:
		if kind == KeyString {
			return strconv.FormatInt(v, 10), true
		}
		return v, true
	case string:
		if kind == KeyString {
			return v, v != ""
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, false
		}
		return id, true
	default:
		return nil, false
	}
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if k.tag == TagMaterialized {
		if k.entity == nil {
			return "materialized(<nil>)"
		}
		return fmt.Sprintf("materialized(%s %v)", k.entity.EntityType(), k.entity.PrimaryKey())
	}
	return fmt.Sprintf("%s(%v)", k.tag, k.value)
}
