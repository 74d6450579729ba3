package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/configsource"
	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/hashid"
	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/persistence/sqlstore"
	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/validator"
	"github.com/jsamuelsen11/go-action-resolver/internal/app/resolver"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/config"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/health"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/logging"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	otelShutdownTimeout = 5 * time.Second
	healthCheckTimeout  = 3 * time.Second
)

// runtime owns the wired dependency graph for one command invocation.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	injector *do.RootScope
	otel     *otelProviders

	closers []func() error
}

func bootstrap(ctx context.Context, profile, configDir string, logOut io.Writer) (*runtime, error) {
	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile, config.WithConfigDir(configDir))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)

	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	rt := &runtime{cfg: cfg, logger: logger, injector: injector, otel: otel}
	rt.registerDependencies(ctx)
	return rt, nil
}

// Close releases opened connections and flushes telemetry.
func (r *runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	otelCtx, cancel := context.WithTimeout(ctx, otelShutdownTimeout)
	defer cancel()

	if err := r.otel.Shutdown(otelCtx); err != nil {
		r.logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
	return errors.Join(errs...)
}

func (r *runtime) onClose(fn func() error) {
	r.closers = append(r.closers, fn)
}

func (r *runtime) registerDependencies(ctx context.Context) {
	cfg, logger := r.cfg, r.logger

	do.Provide(r.injector, func(_ do.Injector) (*hashid.Codec, error) {
		return hashid.New(cfg.Hashids.Salt, cfg.Hashids.MinLength, cfg.Hashids.Alphabet)
	})

	do.Provide(r.injector, func(i do.Injector) (*sqlstore.Store, error) {
		codec := do.MustInvoke[*hashid.Codec](i)
		store, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.DSN, sqlstore.Options{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}, codec, logger)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		r.onClose(store.Close)
		return store, nil
	})

	do.Provide(r.injector, func(_ do.Injector) (*configsource.Redis, error) {
		src := configsource.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			configsource.WithPrefix(cfg.Redis.Prefix),
			configsource.WithBreaker(cfg.Redis.BreakerFailures, cfg.Redis.BreakerTimeout),
			configsource.WithLogger(logger),
		)
		r.onClose(src.Close)
		return src, nil
	})

	do.Provide(r.injector, func(i do.Injector) (ports.ResolverConfigSource, error) {
		switch cfg.Resolver.Source {
		case config.SourceRedis:
			return do.MustInvoke[*configsource.Redis](i), nil
		case config.SourceStatic:
			return configsource.NewStatic(cfg.Resolver.StaticMappings()), nil
		default:
			return configsource.NewFile(cfg.Resolver.Dir, logger), nil
		}
	})

	do.Provide(r.injector, func(_ do.Injector) (*resolver.Registry, error) {
		return resolver.NewRegistry(catalogTypes()...)
	})

	do.Provide(r.injector, func(i do.Injector) (*resolver.ConfiguredResolver, error) {
		store := do.MustInvoke[*sqlstore.Store](i)
		source := do.MustInvoke[ports.ResolverConfigSource](i)
		registry := do.MustInvoke[*resolver.Registry](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		keys := resolver.NewKeyResolver(store, logger, metrics)
		return resolver.NewConfiguredResolver(resolver.NewConfig(source, logger), registry, keys, logger), nil
	})

	do.Provide(r.injector, func(_ do.Injector) (ports.Validator, error) {
		return validator.New(), nil
	})

	do.Provide(r.injector, func(i do.Injector) (*health.Registry, error) {
		registry := health.New(health.WithTimeout(healthCheckTimeout))
		registry.Register(do.MustInvoke[*sqlstore.Store](i))
		if cfg.Resolver.Source == config.SourceRedis {
			registry.Register(do.MustInvoke[*configsource.Redis](i))
		}
		return registry, nil
	})
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

// invoke resolves T from the container, turning provider failures into
// command errors.
func invoke[T any](r *runtime) (T, error) {
	v, err := do.Invoke[T](r.injector)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("wiring %T: %w", zero, err)
	}
	return v, nil
}
