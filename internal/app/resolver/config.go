package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/logging"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// Config maps (domain, tag) pairs to entity type names. Each domain is
// loaded from the source on first use and cached until Reload, so repeated
// lookups return the same answer. Safe for concurrent use.
type Config struct {
	source ports.ResolverConfigSource
	logger *slog.Logger

	group singleflight.Group

	mu         sync.RWMutex
	domains    map[string]map[string]string
	generation uint64
}

// NewConfig creates a Config backed by source.
func NewConfig(source ports.ResolverConfigSource, logger *slog.Logger) *Config {
	return &Config{
		source:  source,
		logger:  logging.OrDiscard(logger),
		domains: make(map[string]map[string]string),
	}
}

// Lookup returns the entity type name configured for tag in configDomain.
// Returns a *domain.ConfigurationError when no mapping exists. Source
// failures are returned wrapped and are not cached.
func (c *Config) Lookup(ctx context.Context, configDomain, tag string) (string, error) {
	mapping, err := c.load(ctx, configDomain)
	if err != nil {
		return "", err
	}

	typeName, ok := mapping[tag]
	if !ok || typeName == "" {
		return "", &domain.ConfigurationError{Domain: configDomain, Tag: tag}
	}
	return typeName, nil
}

// Reload drops every cached domain. The next Lookup reads the source again.
func (c *Config) Reload() {
	c.mu.Lock()
	c.domains = make(map[string]map[string]string)
	c.generation++
	c.mu.Unlock()

	c.logger.Info("resolver config cache cleared")
}

// load reads configDomain from the source outside the lock. Concurrent
// misses for the same domain share one source call. A load that started
// before a Reload is returned to its callers but not cached.
func (c *Config) load(ctx context.Context, configDomain string) (map[string]string, error) {
	c.mu.RLock()
	mapping, ok := c.domains[configDomain]
	gen := c.generation
	c.mu.RUnlock()
	if ok {
		return mapping, nil
	}

	key := strconv.FormatUint(gen, 10) + "/" + configDomain
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.fetch(ctx, configDomain, gen)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}

func (c *Config) fetch(ctx context.Context, configDomain string, gen uint64) (map[string]string, error) {
	c.mu.RLock()
	mapping, ok := c.domains[configDomain]
	c.mu.RUnlock()
	if ok {
		return mapping, nil
	}

	loaded, err := c.source.LoadDomain(ctx, configDomain)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to load resolver config",
			slog.String("operation", "Config.Lookup"),
			slog.String("domain", configDomain),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("loading resolver config %q: %w", configDomain, err)
	}

	mapping = make(map[string]string, len(loaded))
	for tag, typeName := range loaded {
		mapping[tag] = typeName
	}

	c.mu.Lock()
	if c.generation == gen {
		c.domains[configDomain] = mapping
	}
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "resolver config loaded",
		slog.String("domain", configDomain),
		slog.Int("tags", len(mapping)),
	)
	return mapping, nil
}
