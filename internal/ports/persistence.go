package ports

import (
	"context"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
)

// EntityStore defines the read port used by the resolver.
// Implemented by the persistence adapter.
type EntityStore interface {
	// Find returns the entity of type t with primary key pk.
	// Returns domain.ErrNotFound if no such entity exists.
	Find(ctx context.Context, t domain.EntityType, pk any) (domain.Entity, error)

	// FindByHash decodes token with the type's hash codec and returns the
	// matching entity. Returns domain.ErrNotFound if the token does not
	// decode or no entity has the decoded key.
	FindByHash(ctx context.Context, t domain.EntityType, token string) (domain.Entity, error)

	// DecodeHash decodes token to a primary key without touching storage.
	// Reports false if the token is not a valid hash for t.
	DecodeHash(t domain.EntityType, token string) (any, bool)
}

// Tx is an open transaction scoped to one connection.
type Tx interface {
	Commit() error
	Rollback() error
}

// Transactor opens transactions. The returned context carries the
// transaction; store calls made with it run inside the transaction.
type Transactor interface {
	// Begin starts a transaction. Returns domain.ErrTransactionActive if
	// ctx already carries an open transaction; nesting is not supported.
	Begin(ctx context.Context) (context.Context, Tx, error)
}

// HashCodec encodes and decodes obfuscated integer identifiers.
// Each entity type has its own encoding so tokens are not interchangeable
// between types.
type HashCodec interface {
	Encode(t domain.EntityType, id int64) (string, error)
	Decode(t domain.EntityType, token string) (int64, error)
}
