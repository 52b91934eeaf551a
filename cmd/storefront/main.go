package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/klwxsrx/storefront-client/internal/catalog"
	commoncmd "github.com/klwxsrx/storefront-client/internal/pkg/cmd"
	"github.com/klwxsrx/storefront-client/internal/session"
	"github.com/klwxsrx/storefront-client/internal/session/domain"
	pkgenv "github.com/klwxsrx/storefront-client/pkg/env"
	"github.com/klwxsrx/storefront-client/pkg/sig"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := pkgenv.LoadDotEnv()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cli := CLI{}
	parser := kong.Must(
		&cli,
		kong.UsageOnError(),
		kong.Name(appName),
		kong.Description(appDescription),
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, cancel := sig.WithTermination(context.Background())
	defer cancel()

	infra := commoncmd.NewInfrastructureContainer(ctx)
	defer infra.Close(ctx)

	app := &App{
		ctx:     ctx,
		out:     os.Stdout,
		errOut:  os.Stderr,
		expired: make(chan domain.EventSessionExpired, 1),
	}

	sessionContainer := session.NewDependencyContainer(ctx, infra, session.Observers{
		OnSessionExpired: []func(context.Context, domain.EventSessionExpired) error{app.onSessionExpired},
	})
	defer sessionContainer.Close()

	catalogContainer := catalog.NewDependencyContainer(infra)

	app.accounts = sessionContainer.AccountService
	app.gateway = sessionContainer.Gateway
	app.catalog = catalogContainer.CatalogService
	app.registry = infra.MetricsRegistry
	app.logger = infra.Logger

	err = kctx.Run(app)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s: error: %s\n", appName, err)
		return 1
	}

	return 0
}
