package config

import (
	"errors"
	"fmt"
)

// Resolver config source names.
const (
	SourceFile   = "file"
	SourceRedis  = "redis"
	SourceStatic = "static"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Log.validate(),
		c.Database.validate(),
		c.Hashids.validate(),
		c.Resolver.validate(),
		c.Redis.validate(c.Resolver.Source),
		c.Telemetry.validate(),
	)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (d *DatabaseConfig) validate() error {
	var errs []error

	switch d.Driver {
	case "sqlite", "pgx":
		// Valid drivers.
	default:
		errs = append(errs, fmt.Errorf("database.driver must be one of: sqlite, pgx; got %q", d.Driver))
	}
	if d.DSN == "" {
		errs = append(errs, errors.New("database.dsn must not be empty"))
	}
	if d.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("database.max_open_conns must be >= 1, got %d", d.MaxOpenConns))
	}

	return errors.Join(errs...)
}

func (h *HashidsConfig) validate() error {
	var errs []error

	if h.MinLength < 0 {
		errs = append(errs, fmt.Errorf("hashids.min_length must be >= 0, got %d", h.MinLength))
	}
	if h.Alphabet != "" && len(h.Alphabet) < 16 {
		errs = append(errs, fmt.Errorf("hashids.alphabet must have at least 16 characters, got %d", len(h.Alphabet)))
	}

	return errors.Join(errs...)
}

func (r *ResolverConfig) validate() error {
	switch r.Source {
	case SourceFile:
		if r.Dir == "" {
			return errors.New("resolver.dir must not be empty when source is file")
		}
	case SourceRedis, SourceStatic:
		// No extra settings.
	default:
		return fmt.Errorf("resolver.source must be one of: file, redis, static; got %q", r.Source)
	}

	var errs []error
	for domain, tags := range r.Domains {
		for tag, entry := range tags {
			if entry.Model == "" {
				errs = append(errs, fmt.Errorf("resolver.domains.%s.%s.model must not be empty", domain, tag))
			}
		}
	}
	return errors.Join(errs...)
}

func (r *RedisConfig) validate(source string) error {
	if source != SourceRedis {
		return nil
	}
	if r.Addr == "" {
		return errors.New("redis.addr must not be empty when resolver.source is redis")
	}
	if r.BreakerFailures < 1 {
		return fmt.Errorf("redis.breaker_failures must be at least 1, got %d", r.BreakerFailures)
	}
	if r.BreakerTimeout <= 0 {
		return fmt.Errorf("redis.breaker_timeout must be positive, got %s", r.BreakerTimeout)
	}
	return nil
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
