package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

type txKey struct{}

// querier is the subset of *sql.DB and *sql.Tx used by the store.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Begin implements ports.Transactor. The returned context carries the
// transaction. Nested transactions are not supported: Begin on a context
// that already carries one returns domain.ErrTransactionActive.
func (s *Store) Begin(ctx context.Context) (context.Context, ports.Tx, error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return ctx, nil, domain.ErrTransactionActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ctx, nil, fmt.Errorf("begin transaction: %w", err)
	}

	s.logger.DebugContext(ctx, "transaction begun", slog.String("driver", s.driver))
	return context.WithValue(ctx, txKey{}, tx), tx, nil
}

// InTransaction reports whether ctx carries a transaction opened by Begin.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

func (s *Store) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}
