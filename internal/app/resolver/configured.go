package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/logging"
)

// ConfiguredResolver resolves entities named by a (domain, tag) pair.
// It is read-only: one config lookup and at most two store lookups per
// call.
type ConfiguredResolver struct {
	config   *Config
	registry *Registry
	keys     *KeyResolver
	logger   *slog.Logger
}

// NewConfiguredResolver creates a ConfiguredResolver.
func NewConfiguredResolver(config *Config, registry *Registry, keys *KeyResolver, logger *slog.Logger) *ConfiguredResolver {
	return &ConfiguredResolver{
		config:   config,
		registry: registry,
		keys:     keys,
		logger:   logging.OrDiscard(logger),
	}
}

// Resolve looks up the entity type configured for tag in configDomain and
// resolves identifier against it in strict mode.
//
// Errors:
//   - *domain.ConfigurationError when the pair is not configured or names an
//     unregistered type
//   - domain.ErrValidation when identifier is not a usable key
//   - *domain.NotFoundError when no entity matches
//   - *domain.TypeMismatchError when the result is not of the configured type
func (r *ConfiguredResolver) Resolve(ctx context.Context, configDomain, tag string, identifier any) (domain.Entity, error) {
	t, err := r.entityType(ctx, configDomain, tag)
	if err != nil {
		return nil, err
	}

	key, err := domain.KeyOf(identifier)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "resolving entity",
		slog.String("domain", configDomain),
		slog.String("tag", tag),
		slog.String("entity_type", t.Name),
		slog.String("key", key.String()),
	)

	entity, err := r.keys.Resolve(ctx, t, key, true)
	if err != nil {
		return nil, err
	}
	if !t.Owns(entity) {
		return nil, &domain.TypeMismatchError{Expected: t.Name, Actual: entity.EntityType()}
	}
	return entity, nil
}

// ResolveKey returns the primary key that identifier encodes for the type
// configured under (configDomain, tag). Storage is never read.
func (r *ConfiguredResolver) ResolveKey(ctx context.Context, configDomain, tag string, identifier any) (any, error) {
	t, err := r.entityType(ctx, configDomain, tag)
	if err != nil {
		return nil, err
	}

	key, err := domain.KeyOf(identifier)
	if err != nil {
		return nil, err
	}
	return r.keys.ResolveKey(t, key), nil
}

// EntityType returns the descriptor configured under (configDomain, tag).
func (r *ConfiguredResolver) EntityType(ctx context.Context, configDomain, tag string) (domain.EntityType, error) {
	return r.entityType(ctx, configDomain, tag)
}

func (r *ConfiguredResolver) entityType(ctx context.Context, configDomain, tag string) (domain.EntityType, error) {
	typeName, err := r.config.Lookup(ctx, configDomain, tag)
	if err != nil {
		return domain.EntityType{}, err
	}

	t, ok := r.registry.Lookup(typeName)
	if !ok {
		return domain.EntityType{}, &domain.ConfigurationError{Domain: configDomain, Tag: tag, TypeName: typeName}
	}
	return t, nil
}

// ResolveAs resolves an entity and asserts its concrete Go type. A result
// of another Go type fails with a *domain.TypeMismatchError.
func ResolveAs[T domain.Entity](ctx context.Context, r *ConfiguredResolver, configDomain, tag string, identifier any) (T, error) {
	var zero T

	entity, err := r.Resolve(ctx, configDomain, tag, identifier)
	if err != nil {
		return zero, err
	}

	typed, ok := entity.(T)
	if !ok {
		return zero, &domain.TypeMismatchError{
			Expected: fmt.Sprintf("%T", zero),
			Actual:   fmt.Sprintf("%T", entity),
		}
	}
	return typed, nil
}
