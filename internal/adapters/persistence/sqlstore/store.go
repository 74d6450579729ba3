// Package sqlstore implements the persistence ports on database/sql. It
// supports SQLite through modernc.org/sqlite and Postgres through the pgx
// stdlib driver. Rows are read into generic [domain.Record] values, or into
// typed entities when the entity type provides a Hydrate function.
//
// Transactions opened with Begin travel in the returned context: every
// store call made with that context runs on the transaction's connection.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/logging"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.EntityStore   = (*Store)(nil)
	_ ports.Transactor    = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Supported database/sql driver names.
const (
	DriverSQLite = "sqlite"
	DriverPgx    = "pgx"
)

// Options tune the connection pool opened by Open.
type Options struct {
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Store is a database/sql backed entity store.
type Store struct {
	db     *sql.DB
	driver string
	codec  ports.HashCodec
	logger *slog.Logger
}

// Open connects to dsn with driver and verifies the connection.
// codec may be nil, in which case no type can be looked up by hash.
func Open(ctx context.Context, driver, dsn string, opts Options, codec ports.HashCodec, logger *slog.Logger) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPgx:
	default:
		return nil, fmt.Errorf("%w: unsupported database driver %q", domain.ErrConfiguration, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return New(db, driver, codec, logger), nil
}

// New wraps an existing connection pool.
func New(db *sql.DB, driver string, codec ports.HashCodec, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		driver: driver,
		codec:  codec,
		logger: logging.OrDiscard(logger),
	}
}

// DB exposes the underlying pool for schema setup and tests.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "database" }

// HealthCheck implements ports.HealthChecker.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// Find implements ports.EntityStore.
func (s *Store) Find(ctx context.Context, t domain.EntityType, pk any) (domain.Entity, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = %s LIMIT 1",
		quote(t.TableName()), quote(t.KeyColumnName()), s.placeholder(1))

	rows, err := s.conn(ctx).QueryContext(ctx, query, pk)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.Name, err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying %s: %w", t.Name, err)
		}
		return nil, &domain.NotFoundError{Type: t.Name, Key: pk}
	}

	rec, err := scanRecord(rows, t)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", t.Name, err)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.Name, err)
	}

	if t.Hydrate == nil {
		return rec, nil
	}
	entity, err := t.Hydrate(rec)
	if err != nil {
		return nil, fmt.Errorf("hydrating %s: %w", t.Name, err)
	}
	return entity, nil
}

// FindByHash implements ports.EntityStore.
func (s *Store) FindByHash(ctx context.Context, t domain.EntityType, token string) (domain.Entity, error) {
	id, ok := s.DecodeHash(t, token)
	if !ok {
		return nil, &domain.NotFoundError{Type: t.Name, Key: token}
	}
	return s.Find(ctx, t, id)
}

// DecodeHash implements ports.EntityStore.
func (s *Store) DecodeHash(t domain.EntityType, token string) (any, bool) {
	if s.codec == nil || !t.Hashable {
		return nil, false
	}
	id, err := s.codec.Decode(t, token)
	if err != nil {
		return nil, false
	}
	return id, true
}

// Hash returns the token for an int-keyed entity of a hash-capable type.
func (s *Store) Hash(t domain.EntityType, e domain.Entity) (string, error) {
	if s.codec == nil || !t.Hashable {
		return "", fmt.Errorf("%w: entity type %q is not hashable", domain.ErrConfiguration, t.Name)
	}
	id, ok := e.PrimaryKey().(int64)
	if !ok {
		return "", &domain.TypeMismatchError{Expected: "int64", Actual: fmt.Sprintf("%T", e.PrimaryKey())}
	}
	return s.codec.Encode(t, id)
}

// Insert adds a row built from the fillable entries of data and returns the
// stored entity.
func (s *Store) Insert(ctx context.Context, t domain.EntityType, data map[string]any) (domain.Entity, error) {
	cols, args := columns(t.FillableAttributes(data))
	if len(cols) == 0 {
		return nil, &domain.ValidationError{Fields: map[string]string{"data": "no fillable attributes"}}
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = s.placeholder(i + 1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		quote(t.TableName()), quoteAll(cols), strings.Join(placeholders, ", "), quote(t.KeyColumnName()))

	var key any
	if err := s.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&key); err != nil {
		return nil, fmt.Errorf("inserting %s: %w", t.Name, err)
	}

	s.logger.DebugContext(ctx, "entity inserted",
		slog.String("entity_type", t.Name),
		slog.Any("key", key),
	)
	return s.Find(ctx, t, normalizeKey(t.KeyKind, key))
}

// Update sets the fillable entries of data on the row with primary key pk.
// Returns a *domain.NotFoundError when no row matches.
func (s *Store) Update(ctx context.Context, t domain.EntityType, pk any, data map[string]any) (domain.Entity, error) {
	cols, args := columns(t.FillableAttributes(data))
	if len(cols) == 0 {
		return s.Find(ctx, t, pk)
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = quote(col) + " = " + s.placeholder(i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		quote(t.TableName()), strings.Join(sets, ", "), quote(t.KeyColumnName()), s.placeholder(len(cols)+1))

	res, err := s.conn(ctx).ExecContext(ctx, query, append(args, pk)...)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", t.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, &domain.NotFoundError{Type: t.Name, Key: pk}
	}
	return s.Find(ctx, t, pk)
}

// Delete removes the row with primary key pk.
// Returns a *domain.NotFoundError when no row matches.
func (s *Store) Delete(ctx context.Context, t domain.EntityType, pk any) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		quote(t.TableName()), quote(t.KeyColumnName()), s.placeholder(1))

	res, err := s.conn(ctx).ExecContext(ctx, query, pk)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", t.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &domain.NotFoundError{Type: t.Name, Key: pk}
	}
	return nil
}

// Count returns the number of rows of type t.
func (s *Store) Count(ctx context.Context, t domain.EntityType) (int64, error) {
	var n int64
	query := "SELECT COUNT(*) FROM " + quote(t.TableName())
	if err := s.conn(ctx).QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", t.Name, err)
	}
	return n, nil
}

func (s *Store) placeholder(n int) string {
	if s.driver == DriverPgx {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func scanRecord(rows *sql.Rows, t domain.EntityType) (*domain.Record, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	attrs := make(map[string]any, len(names))
	for i, name := range names {
		if b, ok := values[i].([]byte); ok {
			attrs[name] = string(b)
			continue
		}
		attrs[name] = values[i]
	}

	return &domain.Record{
		Type:       t.Name,
		Key:        normalizeKey(t.KeyKind, attrs[t.KeyColumnName()]),
		Attributes: attrs,
	}, nil
}

// normalizeKey converts a scanned key to int64 or string to match kind.
func normalizeKey(kind domain.KeyKind, v any) any {
	if kind == domain.KeyString {
		switch k := v.(type) {
		case string:
			return k
		case []byte:
			return string(k)
		case nil:
			return nil
		default:
			return fmt.Sprint(k)
		}
	}

	switch k := v.(type) {
	case int64:
		return k
	case int32:
		return int64(k)
	case int:
		return int64(k)
	case string:
		if id, err := strconv.ParseInt(k, 10, 64); err == nil {
			return id
		}
	case []byte:
		if id, err := strconv.ParseInt(string(k), 10, 64); err == nil {
			return id
		}
	}
	return v
}

// columns returns the keys of data in a stable order with matching values.
func columns(data map[string]any) ([]string, []any) {
	cols := make([]string, 0, len(data))
	for col := range data {
		cols = append(cols, col)
	}
	slices.Sort(cols)

	args := make([]any, len(cols))
	for i, col := range cols {
		args[i] = data[col]
	}
	return cols, args
}

// quote double-quotes an identifier. Identifiers are validated when the
// entity type is registered.
func quote(ident string) string {
	return `"` + ident + `"`
}

func quoteAll(idents []string) string {
	quoted := make([]string, len(idents))
	for i, id := range idents {
		quoted[i] = quote(id)
	}
	return strings.Join(quoted, ", ")
}
