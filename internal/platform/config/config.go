// Package config provides configuration loading and validation for the
// resolver and action runtime. Configuration is loaded from YAML files with
// environment variable overrides using a layered system:
// defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the runtime.
type Config struct {
	Log        LogConfig        `koanf:"log"`
	Database   DatabaseConfig   `koanf:"database"`
	Hashids    HashidsConfig    `koanf:"hashids"`
	Validation ValidationConfig `koanf:"validation"`
	Resolver   ResolverConfig   `koanf:"resolver"`
	Redis      RedisConfig      `koanf:"redis"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DatabaseConfig selects the SQL driver and connection settings.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// HashidsConfig holds the obfuscated identifier encoding settings.
type HashidsConfig struct {
	Salt      string `koanf:"salt"`
	MinLength int    `koanf:"min_length"`
	Alphabet  string `koanf:"alphabet"`
}

// ValidationConfig holds validation gate settings.
type ValidationConfig struct {
	// ForceStructured makes every validation failure a structured error,
	// regardless of the caller's expectation.
	ForceStructured bool `koanf:"force_structured"`
}

// ResolverConfig selects where (domain, tag) mappings come from.
type ResolverConfig struct {
	// Source is one of "file", "redis" or "static".
	Source string `koanf:"source"`

	// Dir holds one {domain}.yaml file per config domain when Source is "file".
	Dir string `koanf:"dir"`

	// Domains is the inline mapping used when Source is "static":
	// domain -> tag -> {model}.
	Domains map[string]map[string]ResolverEntry `koanf:"domains"`
}

// ResolverEntry is one (domain, tag) mapping.
type ResolverEntry struct {
	Model string `koanf:"model"`
}

// RedisConfig holds the Redis connection used by the redis resolver source.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`

	// BreakerFailures consecutive read failures open the circuit breaker
	// for BreakerTimeout.
	BreakerFailures int           `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// StaticMappings flattens Domains into domain -> tag -> type name.
func (r *ResolverConfig) StaticMappings() map[string]map[string]string {
	out := make(map[string]map[string]string, len(r.Domains))
	for domain, tags := range r.Domains {
		m := make(map[string]string, len(tags))
		for tag, entry := range tags {
			m[tag] = entry.Model
		}
		out[domain] = m
	}
	return out
}
