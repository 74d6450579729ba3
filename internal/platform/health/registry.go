// Package health runs the health checks of the datastore and the resolver
// config source and reports them in a stable order. The registry backs the
// entityctl health command.
package health

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthRegistry = (*Registry)(nil)

// Status is the outcome of one check. A nil Err means healthy.
type Status struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

// Option configures a Registry.
type Option func(*Registry)

// WithTimeout bounds every individual check. Zero means checks only stop
// when the caller's context does.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) { r.timeout = d }
}

// Registry holds the checkers registered at startup. Safe for concurrent use.
type Registry struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a checker.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// Report runs every check concurrently and returns the statuses sorted by
// name. Checkers sharing a name keep their registration order.
func (r *Registry) Report(ctx context.Context) []Status {
	r.mu.RLock()
	checkers := slices.Clone(r.checkers)
	r.mu.RUnlock()

	statuses := make([]Status, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Go(func() {
			statuses[i] = r.check(ctx, c)
		})
	}
	wg.Wait()

	slices.SortStableFunc(statuses, func(a, b Status) int {
		return strings.Compare(a.Name, b.Name)
	})
	return statuses
}

func (r *Registry) check(ctx context.Context, c ports.HealthChecker) Status {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	err := c.HealthCheck(ctx)
	return Status{Name: c.Name(), Err: err, Elapsed: time.Since(start)}
}

// CheckAll implements ports.HealthRegistry. When names collide the last
// registered checker wins.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	statuses := r.Report(ctx)
	results := make(map[string]error, len(statuses))
	for _, s := range statuses {
		results[s.Name] = s.Err
	}
	return results
}

// Healthy joins the failures of a report into one error, each prefixed with
// the checker name. Returns nil when every check passed.
func Healthy(statuses []Status) error {
	var errs []error
	for _, s := range statuses {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, s.Err))
		}
	}
	return errors.Join(errs...)
}
