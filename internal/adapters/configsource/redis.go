package configsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/logging"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.ResolverConfigSource = (*Redis)(nil)
	_ ports.HealthChecker        = (*Redis)(nil)
)

const (
	defaultRedisPrefix = "resolver:"

	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
)

// Redis reads each config domain from a hash at {prefix}{domain} whose
// fields are tags and values are entity type names.
type Redis struct {
	client *backend.Client
	prefix string
	logger *slog.Logger

	breakerFailures int
	breakerTimeout  time.Duration
	breaker         *gobreaker.CircuitBreaker[map[string]string]
}

// RedisOption configures a Redis source.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix. Defaults to "resolver:".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RedisOption {
	return func(r *Redis) {
		r.logger = logging.OrDiscard(logger)
	}
}

// WithBreaker configures the circuit breaker around hash reads. The breaker
// opens after maxFailures consecutive failures and stays open for
// openTimeout before letting a trial read through.
func WithBreaker(maxFailures int, openTimeout time.Duration) RedisOption {
	return func(r *Redis) {
		if maxFailures > 0 {
			r.breakerFailures = maxFailures
		}
		if openTimeout > 0 {
			r.breakerTimeout = openTimeout
		}
	}
}

// NewRedis connects to a Redis server.
func NewRedis(addr, password string, db int, opts ...RedisOption) *Redis {
	return NewRedisFromClient(backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewRedisFromClient creates a Redis source from an existing client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: defaultRedisPrefix,
		logger: logging.OrDiscard(nil),

		breakerFailures: defaultBreakerFailures,
		breakerTimeout:  defaultBreakerTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.breaker = gobreaker.NewCircuitBreaker[map[string]string](gobreaker.Settings{
		Name:        "redis-config",
		MaxRequests: 1,
		Timeout:     r.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= r.breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	return r
}

func (r *Redis) key(configDomain string) string {
	return r.prefix + configDomain
}

// LoadDomain implements ports.ResolverConfigSource. A missing hash yields
// an empty map.
func (r *Redis) LoadDomain(ctx context.Context, configDomain string) (map[string]string, error) {
	if err := validateDomain(configDomain); err != nil {
		return nil, err
	}

	key := r.key(configDomain)
	mapping, err := r.breaker.Execute(func() (map[string]string, error) {
		return r.client.HGetAll(ctx, key).Result()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: redis %s: %w", domain.ErrUnavailable, key, err)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to read resolver config from redis",
			slog.String("operation", "Redis.LoadDomain"),
			slog.String("domain", configDomain),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: redis hgetall %s: %w", domain.ErrUnavailable, key, err)
	}
	return mapping, nil
}

// Put replaces the mapping stored for configDomain.
func (r *Redis) Put(ctx context.Context, configDomain string, mapping map[string]string) error {
	if err := validateDomain(configDomain); err != nil {
		return err
	}

	key := r.key(configDomain)
	_, err := r.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(mapping) > 0 {
			values := make(map[string]any, len(mapping))
			for tag, typeName := range mapping {
				values[tag] = typeName
			}
			pipe.HSet(ctx, key, values)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing resolver config %s: %w", key, err)
	}
	return nil
}

// Name implements ports.HealthChecker.
func (r *Redis) Name() string { return "redis" }

// HealthCheck implements ports.HealthChecker. An open breaker fails the
// check without touching the network.
func (r *Redis) HealthCheck(ctx context.Context) error {
	if r.breaker.State() == gobreaker.StateOpen {
		return fmt.Errorf("%w: redis circuit breaker open", domain.ErrUnavailable)
	}
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// Close closes the client.
func (r *Redis) Close() error { return r.client.Close() }
