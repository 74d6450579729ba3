package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-action-resolver/internal/app/resolver"
	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/mocks"
)

// newConfigured wires a ConfiguredResolver over a static payments mapping
// and the given store.
func newConfigured(t *testing.T, store *mocks.MockEntityStore) *resolver.ConfiguredResolver {
	t.Helper()

	source := mocks.NewMockResolverConfigSource(t)
	source.EXPECT().LoadDomain(mock.Anything, "payments").Return(map[string]string{
		"invoice":  "invoice",
		"customer": "customer",
		"refund":   "refund",
	}, nil).Maybe()
	source.EXPECT().LoadDomain(mock.Anything, mock.Anything).Return(map[string]string{}, nil).Maybe()

	reg, err := resolver.NewRegistry(invoiceType, customerType)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	logger := discardLogger()
	return resolver.NewConfiguredResolver(
		resolver.NewConfig(source, logger),
		reg,
		resolver.NewKeyResolver(store, logger, nil),
		logger,
	)
}

func TestConfiguredResolver_PaymentsInvoiceScenario(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockEntityStore(t)
	inv := &invoice{ID: 42, Amount: 9900}
	store.EXPECT().Find(mock.Anything, invoiceType, int64(42)).Return(inv, nil).Once()

	r := newConfigured(t, store)

	got, err := r.Resolve(context.Background(), "payments", "invoice", 42)
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if got != inv {
		t.Errorf("Resolve() = %v, want %v", got, inv)
	}
}

func TestConfiguredResolver_HashedIdentifier(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockEntityStore(t)
	inv := &invoice{ID: 42}
	store.EXPECT().FindByHash(mock.Anything, invoiceType, "Xk9pQ").Return(inv, nil).Once()

	r := newConfigured(t, store)

	got, err := r.Resolve(context.Background(), "payments", "invoice", "Xk9pQ")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.PrimaryKey() != int64(42) {
		t.Errorf("Resolve().PrimaryKey() = %v, want 42", got.PrimaryKey())
	}
}

func TestConfiguredResolver_MissingConfigNeverLooksUpStore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		domain string
		tag    string
	}{
		{name: "unknown tag", domain: "payments", tag: "payout"},
		{name: "unknown domain", domain: "shipping", tag: "parcel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := mocks.NewMockEntityStore(t)
			r := newConfigured(t, store)

			_, err := r.Resolve(context.Background(), tt.domain, tt.tag, 42)
			if !errors.Is(err, domain.ErrConfiguration) {
				t.Fatalf("Resolve() error = %v, want ErrConfiguration", err)
			}
			if errors.Is(err, domain.ErrNotFound) {
				t.Errorf("Resolve() error = %v, must not be ErrNotFound", err)
			}
		})
	}
}

func TestConfiguredResolver_UnregisteredType(t *testing.T) {
	t.Parallel()

	r := newConfigured(t, mocks.NewMockEntityStore(t))

	_, err := r.Resolve(context.Background(), "payments", "refund", 1)

	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Resolve() error = %v, want *domain.ConfigurationError", err)
	}
	if cfgErr.TypeName != "refund" {
		t.Errorf("ConfigurationError.TypeName = %q, want %q", cfgErr.TypeName, "refund")
	}
}

func TestConfiguredResolver_InvalidIdentifier(t *testing.T) {
	t.Parallel()

	r := newConfigured(t, mocks.NewMockEntityStore(t))

	for _, id := range []any{nil, "", 3.5} {
		if _, err := r.Resolve(context.Background(), "payments", "invoice", id); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Resolve(%v) error = %v, want ErrValidation", id, err)
		}
	}
}

func TestConfiguredResolver_NotFoundIsStrict(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockEntityStore(t)
	store.EXPECT().Find(mock.Anything, customerType, int64(8)).Return(nil, domain.ErrNotFound)
	r := newConfigured(t, store)

	got, err := r.Resolve(context.Background(), "payments", "customer", 8)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrNotFound", err)
	}
	if got != nil {
		t.Errorf("Resolve() = %v, want nil", got)
	}
}

func TestConfiguredResolver_ResultOfWrongType(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockEntityStore(t)
	store.EXPECT().Find(mock.Anything, customerType, int64(3)).Return(record(invoiceType, int64(3)), nil)
	r := newConfigured(t, store)

	_, err := r.Resolve(context.Background(), "payments", "customer", 3)
	if !errors.Is(err, domain.ErrTypeMismatch) {
		t.Errorf("Resolve() error = %v, want ErrTypeMismatch", err)
	}
}

func TestConfiguredResolver_MaterializedPassthrough(t *testing.T) {
	t.Parallel()

	r := newConfigured(t, mocks.NewMockEntityStore(t))
	inv := &invoice{ID: 5}

	got, err := r.Resolve(context.Background(), "payments", "invoice", inv)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != inv {
		t.Errorf("Resolve() = %v, want same instance", got)
	}
}

func TestConfiguredResolver_ResolveKey(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockEntityStore(t)
	store.EXPECT().DecodeHash(invoiceType, "Xk9pQ").Return(int64(42), true)
	r := newConfigured(t, store)
	ctx := context.Background()

	got, err := r.ResolveKey(ctx, "payments", "invoice", "Xk9pQ")
	if err != nil {
		t.Fatalf("ResolveKey() error = %v", err)
	}
	if got != int64(42) {
		t.Errorf("ResolveKey() = %v, want 42", got)
	}

	passthrough, err := r.ResolveKey(ctx, "payments", "customer", 17)
	if err != nil || passthrough != int64(17) {
		t.Errorf("ResolveKey(customer, 17) = (%v, %v), want (17, nil)", passthrough, err)
	}

	if _, err := r.ResolveKey(ctx, "payments", "payout", 1); !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("ResolveKey(unknown tag) error = %v, want ErrConfiguration", err)
	}
}

func TestResolveAs(t *testing.T) {
	t.Parallel()

	t.Run("typed entity", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockEntityStore(t)
		store.EXPECT().Find(mock.Anything, invoiceType, int64(42)).Return(&invoice{ID: 42, Amount: 100}, nil)
		r := newConfigured(t, store)

		inv, err := resolver.ResolveAs[*invoice](context.Background(), r, "payments", "invoice", 42)
		if err != nil {
			t.Fatalf("ResolveAs() error = %v", err)
		}
		if inv.Amount != 100 {
			t.Errorf("ResolveAs().Amount = %d, want 100", inv.Amount)
		}
	})

	t.Run("generic record is a mismatch", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockEntityStore(t)
		store.EXPECT().Find(mock.Anything, invoiceType, int64(42)).Return(record(invoiceType, int64(42)), nil)
		r := newConfigured(t, store)

		inv, err := resolver.ResolveAs[*invoice](context.Background(), r, "payments", "invoice", 42)
		if !errors.Is(err, domain.ErrTypeMismatch) {
			t.Fatalf("ResolveAs() error = %v, want ErrTypeMismatch", err)
		}
		if inv != nil {
			t.Errorf("ResolveAs() = %v, want nil", inv)
		}
	})
}

func TestConfiguredResolver_NilEntityPointerIsNotFound(t *testing.T) {
	t.Parallel()

	r := newConfigured(t, mocks.NewMockEntityStore(t))

	got, err := r.Resolve(context.Background(), "payments", "customer", (*domain.Record)(nil))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrNotFound", err)
	}
	if got != nil {
		t.Errorf("Resolve() = %v, want nil", got)
	}
}
