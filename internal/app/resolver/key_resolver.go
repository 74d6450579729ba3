// Package resolver turns opaque identifiers into persisted entities.
//
// A [KeyResolver] resolves a [domain.Key] against one entity type: a
// materialized entity is passed through, a hash token is tried against the
// type's hash codec when the type is hash-capable, and anything else falls
// back to a primary key lookup. A [ConfiguredResolver] adds a configuration
// layer on top: callers name a (domain, tag) pair and the [Config] maps it
// to a registered type.
//
//	keys := resolver.NewKeyResolver(store, logger, metrics)
//	res := resolver.NewConfiguredResolver(cfg, registry, keys, logger)
//	invoice, err := res.Resolve(ctx, "payments", "invoice", 42)
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/logging"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// Resolution strategies recorded in metrics and spans.
const (
	StrategyPassthrough = "passthrough"
	StrategyHash        = "hash"
	StrategyPrimaryKey  = "primary_key"
)

// KeyResolver resolves keys of a single entity type through the
// EntityStore port. It holds no state beyond its dependencies.
type KeyResolver struct {
	store   ports.EntityStore
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewKeyResolver creates a KeyResolver. A nil logger discards output and a
// nil metrics value records nothing.
func NewKeyResolver(store ports.EntityStore, logger *slog.Logger, metrics *telemetry.Metrics) *KeyResolver {
	return &KeyResolver{
		store:   store,
		logger:  logging.OrDiscard(logger),
		metrics: metrics,
	}
}

// Resolve returns the entity of type t identified by key.
//
// A nil entity with a nil error means the entity is absent; that result is
// only possible when strict is false. In strict mode absence is reported as
// a *domain.NotFoundError. A materialized entity of a different type yields
// a *domain.TypeMismatchError.
func (r *KeyResolver) Resolve(ctx context.Context, t domain.EntityType, key domain.Key, strict bool) (domain.Entity, error) {
	ctx, span := otel.GetTracerProvider().Tracer(telemetry.InstrumentationName).Start(ctx, "resolver.Resolve",
		trace.WithAttributes(
			attribute.String("entity.type", t.Name),
			attribute.String("key.tag", key.Tag().String()),
			attribute.Bool("resolver.strict", strict),
		),
	)
	defer span.End()

	entity, strategy, err := r.lookup(ctx, t, key)
	span.SetAttributes(attribute.String("resolver.strategy", strategy))

	if err != nil {
		r.logger.ErrorContext(ctx, "entity resolution failed",
			slog.String("operation", "KeyResolver.Resolve"),
			slog.String("entity_type", t.Name),
			slog.String("key", key.String()),
			slog.Any("error", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.metrics.RecordResolution(ctx, t.Name, strategy, telemetry.ResultError)
		return nil, err
	}

	if entity == nil {
		if strict {
			r.metrics.RecordResolution(ctx, t.Name, strategy, telemetry.ResultNotFound)
			return nil, &domain.NotFoundError{Type: t.Name, Key: key.Value()}
		}
		r.logger.DebugContext(ctx, "entity absent",
			slog.String("entity_type", t.Name),
			slog.String("key", key.String()),
		)
		r.metrics.RecordResolution(ctx, t.Name, strategy, telemetry.ResultAbsent)
		return nil, nil
	}

	r.metrics.RecordResolution(ctx, t.Name, strategy, telemetry.ResultFound)
	return entity, nil
}

// lookup runs the resolution strategies in order and reports the last one
// attempted. A nil entity with a nil error means nothing matched.
func (r *KeyResolver) lookup(ctx context.Context, t domain.EntityType, key domain.Key) (domain.Entity, string, error) {
	if key.Tag() == domain.TagMaterialized {
		e, ok := key.Entity()
		if !ok {
			return nil, StrategyPassthrough, nil
		}
		if !t.Owns(e) {
			return nil, StrategyPassthrough, &domain.TypeMismatchError{Expected: t.Name, Actual: e.EntityType()}
		}
		return e, StrategyPassthrough, nil
	}

	if token, ok := key.Token(); ok && t.Hashable {
		e, err := r.store.FindByHash(ctx, t, token)
		switch {
		case err == nil && e != nil:
			return e, StrategyHash, nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, StrategyHash, fmt.Errorf("finding %s by hash: %w", t.Name, err)
		}
	}

	pk, ok := key.PrimaryKeyFor(t.KeyKind)
	if !ok {
		return nil, StrategyPrimaryKey, nil
	}

	e, err := r.store.Find(ctx, t, pk)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, StrategyPrimaryKey, nil
		}
		return nil, StrategyPrimaryKey, fmt.Errorf("finding %s by primary key: %w", t.Name, err)
	}
	return e, StrategyPrimaryKey, nil
}

// ResolveKey returns the primary key encoded by key without touching
// storage. For hash-capable types a string token is decoded with the
// type's hash codec; an undecodable token, and every other case, returns
// the key value unchanged.
func (r *KeyResolver) ResolveKey(t domain.EntityType, key domain.Key) any {
	if token, ok := key.Token(); ok && t.Hashable {
		if pk, decoded := r.store.DecodeHash(t, token); decoded {
			return pk
		}
	}
	return key.Value()
}
