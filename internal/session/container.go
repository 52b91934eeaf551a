package session

import (
	"context"
	"fmt"

	sessionmigrations "github.com/klwxsrx/storefront-client/data/sql/session"
	commoncmd "github.com/klwxsrx/storefront-client/internal/pkg/cmd"
	commonhttp "github.com/klwxsrx/storefront-client/internal/pkg/http"
	"github.com/klwxsrx/storefront-client/internal/session/api"
	"github.com/klwxsrx/storefront-client/internal/session/app/refresh"
	"github.com/klwxsrx/storefront-client/internal/session/app/service"
	"github.com/klwxsrx/storefront-client/internal/session/domain"
	"github.com/klwxsrx/storefront-client/internal/session/infra/disk"
	sessionhttp "github.com/klwxsrx/storefront-client/internal/session/infra/http"
	"github.com/klwxsrx/storefront-client/internal/session/infra/memory"
	sessionredis "github.com/klwxsrx/storefront-client/internal/session/infra/redis"
	sessionsql "github.com/klwxsrx/storefront-client/internal/session/infra/sql"
	pkgenv "github.com/klwxsrx/storefront-client/pkg/env"
	pkgevent "github.com/klwxsrx/storefront-client/pkg/event"
	pkghttp "github.com/klwxsrx/storefront-client/pkg/http"
	pkglazy "github.com/klwxsrx/storefront-client/pkg/lazy"
	pkgsql "github.com/klwxsrx/storefront-client/pkg/sql"
)

const (
	StorageDisk   = "disk"
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQL    = "sql"
)

type (
	DependencyContainer struct {
		Storage        pkglazy.Loader[domain.Storage]
		SessionStore   pkglazy.Loader[domain.SessionStore]
		CookieJar      pkglazy.Loader[*sessionhttp.CookieJar]
		Scheduler      pkglazy.Loader[*refresh.Scheduler]
		AccountService pkglazy.Loader[api.AccountService]
		Gateway        pkglazy.Loader[api.Gateway]
	}

	// Observers are notified about session lifecycle changes.
	Observers struct {
		OnLoggedIn       []func(context.Context, domain.EventLoggedIn) error
		OnSessionExpired []func(context.Context, domain.EventSessionExpired) error
	}
)

func NewDependencyContainer(
	ctx context.Context,
	infra *commoncmd.InfrastructureContainer,
	observers Observers,
) *DependencyContainer {
	storage := storageProvider(ctx, infra)
	sessionStore := pkglazy.New(func() (domain.SessionStore, error) {
		return domain.NewSessionStore(storage.MustLoad()), nil
	})
	cookieJar := cookieJarProvider(ctx, storage, infra)
	authClient := authClientProvider(cookieJar, infra)
	eventDispatcher := eventDispatcherProvider(cookieJar, observers)
	scheduler := schedulerProvider(authClient, sessionStore, eventDispatcher, infra)

	return &DependencyContainer{
		Storage:      storage,
		SessionStore: sessionStore,
		CookieJar:    cookieJar,
		Scheduler:    scheduler,
		AccountService: pkglazy.New(func() (api.AccountService, error) {
			return service.NewAccountService(
				sessionhttp.NewAuthAPI(authClient.MustLoad()),
				sessionStore.MustLoad(),
				scheduler.MustLoad(),
				eventDispatcher.MustLoad(),
				service.DefaultMessages(),
				infra.Logger.MustLoad(),
			), nil
		}),
		Gateway: pkglazy.New(func() (api.Gateway, error) {
			return sessionhttp.NewGateway(
				authClient.MustLoad(),
				sessionStore.MustLoad(),
				scheduler.MustLoad(),
			), nil
		}),
	}
}

func (c *DependencyContainer) Close() {
	c.Scheduler.IfLoaded(func(scheduler *refresh.Scheduler) { scheduler.Stop() })
}

func storageProvider(
	ctx context.Context,
	infra *commoncmd.InfrastructureContainer,
) pkglazy.Loader[domain.Storage] {
	return pkglazy.New(func() (domain.Storage, error) {
		kind := pkgenv.Must(pkgenv.ParseDefault("SESSION_STORAGE", StorageDisk))
		switch kind {
		case StorageDisk:
			path := pkgenv.Must(pkgenv.ParseOptional[string]("SESSION_DISK_PATH"))
			if path != nil {
				return disk.NewStorage(*path), nil
			}
			defaultPath, err := disk.DefaultPath()
			if err != nil {
				return nil, err
			}
			return disk.NewStorage(defaultPath), nil
		case StorageMemory:
			return memory.NewStorage(), nil
		case StorageRedis:
			keyPrefix := pkgenv.Must(pkgenv.ParseDefault("SESSION_REDIS_KEY_PREFIX", sessionredis.DefaultKeyPrefix))
			return sessionredis.NewStorage(infra.Redis.MustLoad(), keyPrefix), nil
		case StorageSQL:
			db := infra.DB.MustLoad()
			err := pkgsql.NewMigration(db, sessionmigrations.Migrations, infra.Logger.MustLoad()).Execute(ctx)
			if err != nil {
				return nil, fmt.Errorf("migrate session storage: %w", err)
			}
			return sessionsql.NewStorage(db), nil
		default:
			return nil, fmt.Errorf("unknown session storage %q", kind)
		}
	})
}

func cookieJarProvider(
	ctx context.Context,
	storage pkglazy.Loader[domain.Storage],
	infra *commoncmd.InfrastructureContainer,
) pkglazy.Loader[*sessionhttp.CookieJar] {
	return pkglazy.New(func() (*sessionhttp.CookieJar, error) {
		return sessionhttp.NewCookieJar(
			ctx,
			storage.MustLoad(),
			infra.Logger.MustLoad(),
			commoncmd.MustServiceURL(commonhttp.DestinationAuthService),
		)
	})
}

func authClientProvider(
	cookieJar pkglazy.Loader[*sessionhttp.CookieJar],
	infra *commoncmd.InfrastructureContainer,
) pkglazy.Loader[pkghttp.Client] {
	return pkglazy.New(func() (pkghttp.Client, error) {
		return infra.HTTPClientFactory.MustLoad().MustInitClient(
			commonhttp.DestinationAuthService,
			pkghttp.WithCookieJar(cookieJar.MustLoad()),
		), nil
	})
}

func eventDispatcherProvider(
	cookieJar pkglazy.Loader[*sessionhttp.CookieJar],
	observers Observers,
) pkglazy.Loader[pkgevent.Dispatcher] {
	return pkglazy.New(func() (pkgevent.Dispatcher, error) {
		handlers := map[string]pkgevent.Handler{
			domain.EventTypeSessionExpired: pkgevent.NewTypedHandler(
				resetCookieJar[domain.EventSessionExpired](cookieJar),
				observers.OnSessionExpired...,
			),
			domain.EventTypeLoggedOut: pkgevent.NewTypedHandler(
				resetCookieJar[domain.EventLoggedOut](cookieJar),
			),
		}
		if len(observers.OnLoggedIn) > 0 {
			handlers[domain.EventTypeLoggedIn] = pkgevent.NewTypedHandler(
				observers.OnLoggedIn[0],
				observers.OnLoggedIn[1:]...,
			)
		}

		return pkgevent.NewDispatcher(handlers), nil
	})
}

func schedulerProvider(
	authClient pkglazy.Loader[pkghttp.Client],
	sessionStore pkglazy.Loader[domain.SessionStore],
	eventDispatcher pkglazy.Loader[pkgevent.Dispatcher],
	infra *commoncmd.InfrastructureContainer,
) pkglazy.Loader[*refresh.Scheduler] {
	return pkglazy.New(func() (*refresh.Scheduler, error) {
		lead := pkgenv.Must(pkgenv.ParseDefault("SESSION_REFRESH_LEAD", refresh.DefaultLead))
		loginPath := pkgenv.Must(pkgenv.ParseDefault("SESSION_LOGIN_PATH", refresh.DefaultLoginPath))

		return refresh.NewScheduler(
			sessionhttp.NewAuthAPI(authClient.MustLoad()),
			sessionStore.MustLoad(),
			eventDispatcher.MustLoad(),
			infra.Clock.MustLoad(),
			infra.Metrics.MustLoad(),
			infra.Logger.MustLoad(),
			refresh.WithLead(lead),
			refresh.WithLoginPath(loginPath),
		), nil
	})
}

func resetCookieJar[T pkgevent.Event](
	cookieJar pkglazy.Loader[*sessionhttp.CookieJar],
) func(context.Context, T) error {
	return func(context.Context, T) error {
		var err error
		cookieJar.IfLoaded(func(jar *sessionhttp.CookieJar) {
			err = jar.Reset()
		})
		return err
	}
}
