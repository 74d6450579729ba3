package action_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/persistence/sqlstore"
	"github.com/jsamuelsen11/go-action-resolver/internal/app/action"
	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
)

var (
	invoiceType = domain.EntityType{Name: "invoice", Table: "invoices", Fillable: []string{"number"}}
	lineType    = domain.EntityType{Name: "invoice_line", Table: "invoice_lines", Fillable: []string{"invoice_id", "amount"}}
)

var errLineRejected = errors.New("line amount exceeds credit limit")

// issueInvoice writes an invoice and then fails before writing its line.
type issueInvoice struct {
	store *sqlstore.Store
}

func (a *issueInvoice) Rules(context.Context) error { return nil }

func (a *issueInvoice) Handle(ctx context.Context) (domain.Entity, error) {
	if _, err := a.store.Insert(ctx, invoiceType, map[string]any{"number": "INV-100"}); err != nil {
		return nil, err
	}
	return nil, errLineRejected
}

func (a *issueInvoice) Description() string { return "issue invoice" }

// issueInvoiceWithLine writes both rows.
type issueInvoiceWithLine struct {
	store *sqlstore.Store
}

func (a *issueInvoiceWithLine) Rules(context.Context) error { return nil }

func (a *issueInvoiceWithLine) Handle(ctx context.Context) (domain.Entity, error) {
	inv, err := a.store.Insert(ctx, invoiceType, map[string]any{"number": "INV-200"})
	if err != nil {
		return nil, err
	}
	if _, err := a.store.Insert(ctx, lineType, map[string]any{"invoice_id": inv.PrimaryKey(), "amount": 10}); err != nil {
		return nil, err
	}
	return inv, nil
}

func (a *issueInvoiceWithLine) Description() string { return "issue invoice with line" }

func openInvoiceStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "atomicity.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	store, err := sqlstore.Open(context.Background(), sqlstore.DriverSQLite, dsn, sqlstore.Options{MaxOpenConns: 1}, nil, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.DB().Exec(`
		CREATE TABLE invoices (id INTEGER PRIMARY KEY AUTOINCREMENT, number TEXT NOT NULL);
		CREATE TABLE invoice_lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_id INTEGER NOT NULL REFERENCES invoices(id),
			amount INTEGER NOT NULL
		);
	`)
	if err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return store
}

func countRows(t *testing.T, store *sqlstore.Store, typ domain.EntityType) int64 {
	t.Helper()
	n, err := store.Count(context.Background(), typ)
	if err != nil {
		t.Fatalf("Count(%s) error = %v", typ.Name, err)
	}
	return n
}

func TestAtomicity_FailureAfterFirstWrite(t *testing.T) {
	t.Parallel()

	t.Run("with transaction no rows remain", func(t *testing.T) {
		t.Parallel()
		store := openInvoiceStore(t)

		exec := action.New[domain.Entity](&issueInvoice{store: store},
			action.WithTransaction(store), action.WithLogger(discardLogger()))

		_, err := exec.Execute(context.Background())
		if err != errLineRejected {
			t.Fatalf("Execute() error = %v, want %v", err, errLineRejected)
		}
		if n := countRows(t, store, invoiceType); n != 0 {
			t.Errorf("invoices = %d, want 0", n)
		}
		if exec.History()[len(exec.History())-2] != action.PhaseRolledBack {
			t.Errorf("History() = %v, want rolled_back", exec.History())
		}
	})

	t.Run("without transaction the first row remains", func(t *testing.T) {
		t.Parallel()
		store := openInvoiceStore(t)

		exec := action.New[domain.Entity](&issueInvoice{store: store}, action.WithLogger(discardLogger()))

		if _, err := exec.Execute(context.Background()); err != errLineRejected {
			t.Fatalf("Execute() error = %v, want %v", err, errLineRejected)
		}
		if n := countRows(t, store, invoiceType); n != 1 {
			t.Errorf("invoices = %d, want 1", n)
		}
	})
}

func TestAtomicity_CommitPersistsBothWrites(t *testing.T) {
	t.Parallel()

	store := openInvoiceStore(t)
	exec := action.New[domain.Entity](&issueInvoiceWithLine{store: store},
		action.WithTransaction(store), action.WithLogger(discardLogger()))

	inv, err := exec.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if inv.PrimaryKey() != int64(1) {
		t.Errorf("PrimaryKey() = %v, want 1", inv.PrimaryKey())
	}
	if n := countRows(t, store, invoiceType); n != 1 {
		t.Errorf("invoices = %d, want 1", n)
	}
	if n := countRows(t, store, lineType); n != 1 {
		t.Errorf("invoice_lines = %d, want 1", n)
	}
	if exec.Phase() != action.PhaseCompleted {
		t.Errorf("Phase() = %v, want completed", exec.Phase())
	}
}
