package config

const (
	defaultMaxOpenConns     = 1
	defaultHashidsMinLength = 8
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"log.level":  "info",
		"log.format": "json",

		"database.driver":            "sqlite",
		"database.dsn":               "file:entities.db?_pragma=foreign_keys(1)",
		"database.max_open_conns":    defaultMaxOpenConns,
		"database.conn_max_lifetime": "30m",

		"hashids.salt":       "",
		"hashids.min_length": defaultHashidsMinLength,
		"hashids.alphabet":   "",

		"validation.force_structured": false,

		"resolver.source": "file",
		"resolver.dir":    "configs/resolver",

		"redis.addr":   "localhost:6379",
		"redis.db":     0,
		"redis.prefix": "resolver:",

		"redis.breaker_failures": 5,
		"redis.breaker_timeout":  "30s",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "entityctl",
	}
}
