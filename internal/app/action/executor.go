// Package action runs domain actions through a fixed lifecycle: rules are
// checked first, then business logic runs, optionally inside a database
// transaction that commits on success and rolls back on any error.
//
//	exec := action.New[*Invoice](&CreateInvoice{...}, action.WithTransaction(store))
//	invoice, err := exec.Execute(ctx)
//
// The lifecycle of one executor is
//
//	Created → RulesChecked → [TransactionBegun →] Executing → [Committed | RolledBack →] Completed
//
// A rules failure moves straight to Completed. An executor runs once.
package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/logging"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// ErrAlreadyExecuted is returned when Execute or ValidateAndHandle is
// called on an executor that has already run.
var ErrAlreadyExecuted = errors.New("action: executor already used")

// ErrNilAction is returned when an executor was built without an action.
var ErrNilAction = errors.New("action: nil action")

// Option configures an Executor.
type Option func(*options)

type options struct {
	transactor ports.Transactor
	logger     *slog.Logger
	metrics    *telemetry.Metrics
}

// WithTransaction runs Execute inside a transaction opened by t.
func WithTransaction(t ports.Transactor) Option {
	return func(o *options) { o.transactor = t }
}

// WithLogger sets the executor's logger. Without it the logger is taken
// from the context passed to Execute.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records execution counts and durations.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Executor runs one domain.Action. It is single-use and not safe for
// concurrent use.
type Executor[T any] struct {
	action     domain.Action[T]
	transactor ports.Transactor
	logger     *slog.Logger
	metrics    *telemetry.Metrics

	history []Phase
	used    bool
}

// New creates an executor for a. Whether it uses a transaction is fixed
// here and cannot change later.
func New[T any](a domain.Action[T], opts ...Option) *Executor[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Executor[T]{
		action:     a,
		transactor: o.transactor,
		logger:     o.logger,
		metrics:    o.metrics,
		history:    []Phase{PhaseCreated},
	}
}

// UsingTransaction reports whether Execute opens a transaction.
func (e *Executor[T]) UsingTransaction() bool { return e.transactor != nil }

// Phase returns the current lifecycle phase.
func (e *Executor[T]) Phase() Phase { return e.history[len(e.history)-1] }

// History returns every phase entered so far, oldest first.
func (e *Executor[T]) History() []Phase { return slices.Clone(e.history) }

// Execute checks the action's rules and runs its business logic, inside a
// transaction when the executor was built WithTransaction.
//
// A rules error is returned as is and no transaction is opened. An error
// from Handle, including context cancellation, rolls the transaction back
// and is returned unchanged. A commit failure is returned wrapped.
func (e *Executor[T]) Execute(ctx context.Context) (T, error) {
	return e.run(ctx, e.UsingTransaction(), "Executor.Execute")
}

// ValidateAndHandle checks the rules and runs the business logic without
// ever opening a transaction.
func (e *Executor[T]) ValidateAndHandle(ctx context.Context) (T, error) {
	return e.run(ctx, false, "Executor.ValidateAndHandle")
}

func (e *Executor[T]) run(ctx context.Context, transactional bool, operation string) (T, error) {
	var zero T
	if e.used {
		return zero, ErrAlreadyExecuted
	}
	e.used = true
	if e.action == nil {
		e.enter(PhaseCompleted)
		return zero, ErrNilAction
	}

	start := time.Now()
	desc := e.action.Description()
	logger := e.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	ctx = logging.WithLogger(ctx, logger)

	ctx, span := otel.GetTracerProvider().Tracer(telemetry.InstrumentationName).Start(ctx, "action "+desc,
		trace.WithAttributes(
			attribute.String("action", desc),
			attribute.Bool("action.transactional", transactional),
		),
	)
	defer span.End()

	finish := func(result string, err error) {
		span.SetAttributes(attribute.String("result", result))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		e.metrics.RecordAction(ctx, desc, result, time.Since(start))
	}

	if err := e.action.Rules(ctx); err != nil {
		e.enter(PhaseCompleted)
		logger.InfoContext(ctx, "action rules rejected",
			slog.String("operation", operation),
			slog.String("action", desc),
			slog.Any("error", err),
		)
		finish(telemetry.ResultRejected, err)
		return zero, err
	}
	e.enter(PhaseRulesChecked)

	if !transactional {
		e.enter(PhaseExecuting)
		result, err := e.action.Handle(ctx)
		e.enter(PhaseCompleted)
		if err != nil {
			logger.ErrorContext(ctx, "action failed",
				slog.String("operation", operation),
				slog.String("action", desc),
				slog.Any("error", err),
			)
			finish(telemetry.ResultError, err)
			return zero, err
		}
		finish(telemetry.ResultCompleted, nil)
		return result, nil
	}

	txCtx, tx, err := e.transactor.Begin(ctx)
	if err != nil {
		e.enter(PhaseCompleted)
		err = fmt.Errorf("beginning transaction for %s: %w", desc, err)
		logger.ErrorContext(ctx, "failed to begin transaction",
			slog.String("operation", operation),
			slog.String("action", desc),
			slog.Any("error", err),
		)
		finish(telemetry.ResultError, err)
		return zero, err
	}
	e.enter(PhaseTransactionBegun)
	e.enter(PhaseExecuting)

	result, err := e.handle(txCtx, tx, logger)
	if err != nil {
		logger.ErrorContext(ctx, "action failed, transaction rolled back",
			slog.String("operation", operation),
			slog.String("action", desc),
			slog.Any("error", err),
		)
		finish(telemetry.ResultRolledBack, err)
		return zero, err
	}

	if err := tx.Commit(); err != nil {
		e.enter(PhaseRolledBack)
		e.enter(PhaseCompleted)
		err = fmt.Errorf("committing %s: %w", desc, err)
		logger.ErrorContext(ctx, "commit failed",
			slog.String("operation", operation),
			slog.String("action", desc),
			slog.Any("error", err),
		)
		finish(telemetry.ResultRolledBack, err)
		return zero, err
	}
	e.enter(PhaseCommitted)
	e.enter(PhaseCompleted)

	logger.DebugContext(ctx, "action committed",
		slog.String("operation", operation),
		slog.String("action", desc),
		slog.Duration("elapsed", time.Since(start)),
	)
	finish(telemetry.ResultCommitted, nil)
	return result, nil
}

// handle runs the business logic inside tx. Errors and panics roll the
// transaction back; rollback failures are logged and never replace the
// original error.
func (e *Executor[T]) handle(ctx context.Context, tx ports.Tx, logger *slog.Logger) (result T, err error) {
	done := false
	defer func() {
		if done {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorContext(ctx, "rollback failed",
				slog.String("action", e.action.Description()),
				slog.Any("error", rbErr),
			)
		}
		e.enter(PhaseRolledBack)
		e.enter(PhaseCompleted)
	}()

	result, err = e.action.Handle(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		var zero T
		return zero, err
	}
	done = true
	return result, nil
}

func (e *Executor[T]) enter(p Phase) {
	e.history = append(e.history, p)
}
