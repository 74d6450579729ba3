package resolver_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-action-resolver/internal/app/resolver"
	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestConfig_LookupLoadsDomainOnce(t *testing.T) {
	t.Parallel()

	source := mocks.NewMockResolverConfigSource(t)
	source.EXPECT().LoadDomain(mock.Anything, "payments").
		Return(map[string]string{"invoice": "invoice", "customer": "customer"}, nil).
		Once()

	cfg := resolver.NewConfig(source, discardLogger())
	ctx := context.Background()

	for range 3 {
		got, err := cfg.Lookup(ctx, "payments", "invoice")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if got != "invoice" {
			t.Errorf("Lookup() = %q, want %q", got, "invoice")
		}
	}

	got, err := cfg.Lookup(ctx, "payments", "customer")
	if err != nil || got != "customer" {
		t.Errorf("Lookup(customer) = (%q, %v), want (customer, nil)", got, err)
	}
}

func TestConfig_LookupMissing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		domain  string
		tag     string
		mapping map[string]string
	}{
		{name: "unknown tag", domain: "payments", tag: "refund", mapping: map[string]string{"invoice": "invoice"}},
		{name: "unknown domain", domain: "shipping", tag: "parcel", mapping: map[string]string{}},
		{name: "empty type name", domain: "payments", tag: "invoice", mapping: map[string]string{"invoice": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			source := mocks.NewMockResolverConfigSource(t)
			source.EXPECT().LoadDomain(mock.Anything, tt.domain).Return(tt.mapping, nil)
			cfg := resolver.NewConfig(source, discardLogger())

			_, err := cfg.Lookup(context.Background(), tt.domain, tt.tag)

			var cfgErr *domain.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Lookup() error = %v, want *domain.ConfigurationError", err)
			}
			if cfgErr.Domain != tt.domain || cfgErr.Tag != tt.tag {
				t.Errorf("ConfigurationError = %+v, want Domain=%q Tag=%q", cfgErr, tt.domain, tt.tag)
			}
			if errors.Is(err, domain.ErrNotFound) {
				t.Error("missing config must not be reported as ErrNotFound")
			}
		})
	}
}

func TestConfig_SourceErrorIsNotCached(t *testing.T) {
	t.Parallel()

	srcErr := errors.New("redis: connection refused")
	source := mocks.NewMockResolverConfigSource(t)
	source.EXPECT().LoadDomain(mock.Anything, "payments").Return(nil, srcErr).Once()
	source.EXPECT().LoadDomain(mock.Anything, "payments").Return(map[string]string{"invoice": "invoice"}, nil).Once()

	cfg := resolver.NewConfig(source, discardLogger())
	ctx := context.Background()

	if _, err := cfg.Lookup(ctx, "payments", "invoice"); !errors.Is(err, srcErr) {
		t.Fatalf("first Lookup() error = %v, want %v", err, srcErr)
	}
	got, err := cfg.Lookup(ctx, "payments", "invoice")
	if err != nil || got != "invoice" {
		t.Errorf("second Lookup() = (%q, %v), want (invoice, nil)", got, err)
	}
}

func TestConfig_Reload(t *testing.T) {
	t.Parallel()

	source := mocks.NewMockResolverConfigSource(t)
	source.EXPECT().LoadDomain(mock.Anything, "payments").Return(map[string]string{"invoice": "invoice"}, nil).Once()
	source.EXPECT().LoadDomain(mock.Anything, "payments").Return(map[string]string{"invoice": "invoice_v2"}, nil).Once()

	cfg := resolver.NewConfig(source, discardLogger())
	ctx := context.Background()

	before, _ := cfg.Lookup(ctx, "payments", "invoice")
	again, _ := cfg.Lookup(ctx, "payments", "invoice")
	if before != again {
		t.Fatalf("Lookup() changed without Reload: %q then %q", before, again)
	}

	cfg.Reload()

	after, err := cfg.Lookup(ctx, "payments", "invoice")
	if err != nil {
		t.Fatalf("Lookup() after Reload error = %v", err)
	}
	if after != "invoice_v2" {
		t.Errorf("Lookup() after Reload = %q, want %q", after, "invoice_v2")
	}
}

func TestConfig_ConcurrentLookups(t *testing.T) {
	t.Parallel()

	source := mocks.NewMockResolverConfigSource(t)
	source.EXPECT().LoadDomain(mock.Anything, "identity").Return(map[string]string{"user": "user"}, nil).Once()
	cfg := resolver.NewConfig(source, discardLogger())

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			if got, err := cfg.Lookup(context.Background(), "identity", "user"); err != nil || got != "user" {
				t.Errorf("Lookup() = (%q, %v), want (user, nil)", got, err)
			}
		})
	}
	wg.Wait()
}

func TestConfig_SlowLoadDoesNotBlockCachedDomains(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	source := mocks.NewMockResolverConfigSource(t)
	source.EXPECT().LoadDomain(mock.Anything, "identity").Return(map[string]string{"user": "user"}, nil).Once()
	source.EXPECT().LoadDomain(mock.Anything, "payments").
		RunAndReturn(func(context.Context, string) (map[string]string, error) {
			close(started)
			<-release
			return map[string]string{"invoice": "invoice"}, nil
		}).
		Once()

	cfg := resolver.NewConfig(source, discardLogger())
	ctx := context.Background()

	if _, err := cfg.Lookup(ctx, "identity", "user"); err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	var wg sync.WaitGroup
	wg.Go(func() {
		if got, err := cfg.Lookup(ctx, "payments", "invoice"); err != nil || got != "invoice" {
			t.Errorf("Lookup() = (%q, %v), want (invoice, nil)", got, err)
		}
	})
	<-started

	done := make(chan struct{})
	go func() {
		defer close(done)
		if got, err := cfg.Lookup(ctx, "identity", "user"); err != nil || got != "user" {
			t.Errorf("Lookup() = (%q, %v), want (user, nil)", got, err)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("Lookup() of a cached domain blocked on another domain's load")
	}

	close(release)
	wg.Wait()
	<-done
}

func TestConfig_ConcurrentMissesShareOneLoad(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})

	source := mocks.NewMockResolverConfigSource(t)
	source.EXPECT().LoadDomain(mock.Anything, "payments").
		RunAndReturn(func(context.Context, string) (map[string]string, error) {
			<-release
			return map[string]string{"invoice": "invoice"}, nil
		}).
		Once()

	cfg := resolver.NewConfig(source, discardLogger())

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			if got, err := cfg.Lookup(context.Background(), "payments", "invoice"); err != nil || got != "invoice" {
				t.Errorf("Lookup() = (%q, %v), want (invoice, nil)", got, err)
			}
		})
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
}

func TestConfig_ReloadDuringLoadDiscardsResult(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	source := mocks.NewMockResolverConfigSource(t)
	source.EXPECT().LoadDomain(mock.Anything, "payments").
		RunAndReturn(func(context.Context, string) (map[string]string, error) {
			close(started)
			<-release
			return map[string]string{"invoice": "invoice"}, nil
		}).
		Once()
	source.EXPECT().LoadDomain(mock.Anything, "payments").Return(map[string]string{"invoice": "invoice_v2"}, nil).Once()

	cfg := resolver.NewConfig(source, discardLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Go(func() {
		if got, err := cfg.Lookup(ctx, "payments", "invoice"); err != nil || got != "invoice" {
			t.Errorf("Lookup() = (%q, %v), want (invoice, nil)", got, err)
		}
	})
	<-started
	cfg.Reload()
	close(release)
	wg.Wait()

	got, err := cfg.Lookup(ctx, "payments", "invoice")
	if err != nil {
		t.Fatalf("Lookup() after Reload error = %v", err)
	}
	if got != "invoice_v2" {
		t.Errorf("Lookup() after Reload = %q, want %q", got, "invoice_v2")
	}
}
