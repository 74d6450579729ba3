// Package hashid implements [ports.HashCodec] with Hashids. Every entity
// type gets its own salt derived from the configured one, so a token
// issued for one type never decodes as another.
package hashid

import (
	"errors"
	"fmt"
	"sync"

	"github.com/speps/go-hashids/v2"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// Compile-time interface check.
var _ ports.HashCodec = (*Codec)(nil)

// ErrInvalidToken is returned by Decode when a token is not a canonical
// encoding of exactly one non-negative integer for the given type.
var ErrInvalidToken = errors.New("hashid: invalid token")

// Codec encodes int64 identifiers per entity type. Safe for concurrent use.
type Codec struct {
	salt      string
	minLength int
	alphabet  string

	mu     sync.RWMutex
	byType map[string]*hashids.HashID
}

// New creates a Codec. An empty alphabet selects the Hashids default.
// Returns an error if the settings are rejected by Hashids.
func New(salt string, minLength int, alphabet string) (*Codec, error) {
	c := &Codec{
		salt:      salt,
		minLength: minLength,
		alphabet:  alphabet,
		byType:    make(map[string]*hashids.HashID),
	}
	if _, err := c.build(salt); err != nil {
		return nil, err
	}
	return c, nil
}

// Encode returns the token for id under type t.
func (c *Codec) Encode(t domain.EntityType, id int64) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("%w: %s id must be non-negative, got %d", domain.ErrValidation, t.Name, id)
	}

	h, err := c.forType(t)
	if err != nil {
		return "", err
	}

	token, err := h.EncodeInt64([]int64{id})
	if err != nil {
		return "", fmt.Errorf("encoding %s id: %w", t.Name, err)
	}
	return token, nil
}

// Decode returns the id encoded by token under type t.
func (c *Codec) Decode(t domain.EntityType, token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}

	h, err := c.forType(t)
	if err != nil {
		return 0, err
	}

	ids, err := h.DecodeInt64WithError(token)
	if err != nil || len(ids) != 1 {
		return 0, fmt.Errorf("%w for %s: %q", ErrInvalidToken, t.Name, token)
	}

	// Hashids decodes some strings it never produced; only accept the
	// canonical encoding.
	canonical, err := h.EncodeInt64(ids)
	if err != nil || canonical != token {
		return 0, fmt.Errorf("%w for %s: %q", ErrInvalidToken, t.Name, token)
	}
	return ids[0], nil
}

func (c *Codec) forType(t domain.EntityType) (*hashids.HashID, error) {
	c.mu.RLock()
	h, ok := c.byType[t.Name]
	c.mu.RUnlock()
	if ok {
		return h, nil
	}

	h, err := c.build(c.salt + ":" + t.Name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byType[t.Name]; ok {
		return existing, nil
	}
	c.byType[t.Name] = h
	return h, nil
}

func (c *Codec) build(salt string) (*hashids.HashID, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = c.minLength
	if c.alphabet != "" {
		data.Alphabet = c.alphabet
	}

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("configuring hashids: %w", err)
	}
	return h, nil
}
