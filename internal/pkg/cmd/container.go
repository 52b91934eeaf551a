package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	commonhttp "github.com/klwxsrx/storefront-client/internal/pkg/http"
	"github.com/klwxsrx/storefront-client/pkg/cmd"
	"github.com/klwxsrx/storefront-client/pkg/env"
	"github.com/klwxsrx/storefront-client/pkg/http"
	"github.com/klwxsrx/storefront-client/pkg/lazy"
	"github.com/klwxsrx/storefront-client/pkg/log"
	"github.com/klwxsrx/storefront-client/pkg/metric"
	"github.com/klwxsrx/storefront-client/pkg/observability"
	"github.com/klwxsrx/storefront-client/pkg/sql"
)

const metricsNamespace = "storefront"

type InfrastructureContainer struct {
	HTTPClientFactory lazy.Loader[HTTPClientFactory]
	MetricsRegistry   lazy.Loader[*prometheus.Registry]
	Metrics           lazy.Loader[metric.Metrics]
	Logger            lazy.Loader[log.Logger]
	Clock             lazy.Loader[clockwork.Clock]
	DB                lazy.Loader[sql.Database]
	Redis             lazy.Loader[*redis.Client]
}

func NewInfrastructureContainer(ctx context.Context) *InfrastructureContainer {
	logger := loggerProvider()
	registry := metricsRegistryProvider()
	metrics := metricsProvider(registry)
	observer := observerProvider(logger)

	return &InfrastructureContainer{
		HTTPClientFactory: httpClientFactoryProvider(observer, metrics, logger),
		MetricsRegistry:   registry,
		Metrics:           metrics,
		Logger:            logger,
		Clock:             lazy.Value(clockwork.NewRealClock()),
		DB:                sqlDatabaseProvider(ctx, logger),
		Redis:             redisClientProvider(),
	}
}

// Close must be deferred directly to catch a panic of the app.
func (i *InfrastructureContainer) Close(ctx context.Context) {
	if cmd.LogPanic(ctx, i.Logger.MustLoad(), recover()) {
		defer os.Exit(1)
	}

	i.Redis.IfLoaded(func(client *redis.Client) {
		err := client.Close()
		if err != nil {
			i.Logger.MustLoad().WithError(err).Error(ctx, "failed to close redis client")
		}
	})
	i.DB.IfLoaded(func(db sql.Database) { db.Close(ctx) })
}

func loggerProvider() lazy.Loader[log.Logger] {
	return lazy.New(func() (log.Logger, error) {
		logLevel := env.Must(env.ParseDefault("LOG_LEVEL", "info"))

		format := log.FormatJSON
		if env.Must(env.ParseDefault("LOG_FORMAT", "json")) == "text" {
			format = log.FormatText
		}

		return log.New(log.ParseLevel(logLevel), log.WithFormat(format)), nil
	})
}

func metricsRegistryProvider() lazy.Loader[*prometheus.Registry] {
	return lazy.New(func() (*prometheus.Registry, error) {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return registry, nil
	})
}

func metricsProvider(
	registry lazy.Loader[*prometheus.Registry],
) lazy.Loader[metric.Metrics] {
	return lazy.New(func() (metric.Metrics, error) {
		return metric.NewPrometheus(metricsNamespace, registry.MustLoad()), nil
	})
}

func observerProvider(
	logger lazy.Loader[log.Logger],
) lazy.Loader[observability.Observer] {
	return lazy.New(func() (observability.Observer, error) {
		return observability.New(
			observability.WithFieldsLogging(logger.MustLoad(), observability.LogFieldRequestID),
		), nil
	})
}

func httpClientFactoryProvider(
	observer lazy.Loader[observability.Observer],
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) lazy.Loader[HTTPClientFactory] {
	return lazy.New(func() (HTTPClientFactory, error) {
		return NewHTTPClientFactory(
			http.WithRequestObservability(observer.MustLoad(), commonhttp.RequestIDHeader),
			http.WithRequestMetrics(metrics.MustLoad()),
			http.WithRequestLogging(logger.MustLoad(), log.LevelDebug, log.LevelWarn),
		), nil
	})
}

func sqlDatabaseProvider(
	ctx context.Context,
	logger lazy.Loader[log.Logger],
) lazy.Loader[sql.Database] {
	return lazy.New(func() (sql.Database, error) {
		sqlConfig := &sql.Config{
			DSN: sql.DSN{
				User:     env.Must(env.Parse[string]("SQL_USER")),
				Password: env.Must(env.Parse[string]("SQL_PASSWORD")),
				Address:  env.Must(env.Parse[string]("SQL_ADDRESS")),
				Database: env.Must(env.Parse[string]("SQL_DATABASE")),
			},
			MaxOpenConnections: env.Must(env.ParseDefault("SQL_MAX_OPEN_CONNECTIONS", 0)),
		}
		sqlConnTimeout := env.Must(env.ParseOptional[time.Duration]("SQL_CONNECTION_TIMEOUT"))
		if sqlConnTimeout != nil {
			sqlConfig.ConnectionTimeout = *sqlConnTimeout
		}

		db, err := sql.NewDatabase(ctx, sqlConfig, logger.MustLoad())
		if err != nil {
			panic(fmt.Errorf("open sql connection: %w", err))
		}

		return db, nil
	})
}

func redisClientProvider() lazy.Loader[*redis.Client] {
	return lazy.New(func() (*redis.Client, error) {
		return redis.NewClient(&redis.Options{
			Addr:     env.Must(env.Parse[string]("REDIS_ADDRESS")),
			Password: env.Must(env.ParseDefault("REDIS_PASSWORD", "")),
			DB:       env.Must(env.ParseDefault("REDIS_DB", 0)),
		}), nil
	})
}
