package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	catalogapi "github.com/klwxsrx/storefront-client/internal/catalog/api"
	sessionapi "github.com/klwxsrx/storefront-client/internal/session/api"
	"github.com/klwxsrx/storefront-client/internal/session/app/service"
	"github.com/klwxsrx/storefront-client/internal/session/domain"
	sessionhttp "github.com/klwxsrx/storefront-client/internal/session/infra/http"
	pkgcmd "github.com/klwxsrx/storefront-client/pkg/cmd"
	pkghttp "github.com/klwxsrx/storefront-client/pkg/http"
	pkglazy "github.com/klwxsrx/storefront-client/pkg/lazy"
	"github.com/klwxsrx/storefront-client/pkg/log"
	"github.com/klwxsrx/storefront-client/pkg/worker"
)

const (
	appName        = "storefront"
	appDescription = "Storefront client keeping the signed in session fresh"
)

var errNotLoggedIn = errors.New("not logged in")

// CLI is the command line of the storefront client.
type CLI struct {
	Login    LoginCmd    `cmd:"" help:"Sign in and start refreshing the session"`
	Register RegisterCmd `cmd:"" help:"Create an account"`
	Logout   LogoutCmd   `cmd:"" help:"Sign out and forget the session"`
	Whoami   WhoamiCmd   `cmd:"" help:"Print the signed in user"`
	Products ProductsCmd `cmd:"" help:"List the catalog"`
	Fetch    FetchCmd    `cmd:"" help:"Send an authenticated request"`
	Watch    WatchCmd    `cmd:"" help:"Keep the session alive until interrupted"`
}

// App carries the services the commands run against.
type App struct {
	ctx      context.Context
	accounts pkglazy.Loader[sessionapi.AccountService]
	gateway  pkglazy.Loader[sessionapi.Gateway]
	catalog  pkglazy.Loader[catalogapi.CatalogService]
	registry pkglazy.Loader[*prometheus.Registry]
	logger   pkglazy.Loader[log.Logger]
	out      io.Writer
	errOut   io.Writer
	expired  chan domain.EventSessionExpired
}

func (a *App) onSessionExpired(_ context.Context, evt domain.EventSessionExpired) error {
	_, _ = fmt.Fprintf(a.errOut, "session expired, sign in again (%s)\n", evt.LoginPath)
	select {
	case a.expired <- evt:
	default:
	}
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Account email"`
	Password string `help:"Account password" env:"STOREFRONT_PASSWORD"`
}

func (c *LoginCmd) Run(app *App) error {
	err := app.accounts.MustLoad().Login(app.ctx, c.Email, c.Password)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(app.out, "signed in as %s\n", c.Email)
	return nil
}

type RegisterCmd struct {
	Username        string `arg:"" help:"Display name"`
	Email           string `arg:"" help:"Account email"`
	Password        string `help:"Account password" env:"STOREFRONT_PASSWORD"`
	ConfirmPassword string `help:"Password confirmation" name:"confirm-password"`
}

func (c *RegisterCmd) Run(app *App) error {
	err := app.accounts.MustLoad().Register(app.ctx, service.RegisterForm{
		Username:        c.Username,
		Email:           c.Email,
		Password:        c.Password,
		ConfirmPassword: c.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(app.out, "account %s created, sign in to continue\n", c.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(app *App) error {
	err := app.accounts.MustLoad().Logout(app.ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(app.out, "signed out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(app *App) error {
	name, ok, err := app.accounts.MustLoad().CurrentUser(app.ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errNotLoggedIn
	}

	_, _ = fmt.Fprintln(app.out, name)
	return nil
}

type ProductsCmd struct {
	JSON bool `help:"Print products as JSON"`
}

func (c *ProductsCmd) Run(app *App) error {
	products := app.catalog.MustLoad().List(app.ctx)
	if c.JSON {
		encoder := json.NewEncoder(app.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(products)
	}

	w := tabwriter.NewWriter(app.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, product := range products {
		stock := fmt.Sprintf("%d", product.Stock)
		if !product.InStock() {
			stock = "out of stock"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\n", product.ID, product.Name, product.Price, stock)
	}

	return w.Flush()
}

type FetchCmd struct {
	Method string   `help:"HTTP method" short:"X" default:"GET"`
	Header []string `help:"Extra header as 'Name: value'" short:"H"`
	Data   string   `help:"Request body" short:"d"`
	URL    string   `arg:"" help:"Absolute URL or path relative to the auth service"`
}

func (c *FetchCmd) Run(app *App) error {
	header, err := parseHeaders(c.Header)
	if err != nil {
		return err
	}

	req := sessionhttp.Request{
		Method: strings.ToUpper(c.Method),
		URL:    c.URL,
		Header: header,
	}
	if c.Data != "" {
		req.Body = []byte(c.Data)
	}

	resp, err := app.gateway.MustLoad().Fetch(app.ctx, req)
	if resp != nil {
		_, _ = fmt.Fprintf(app.out, "HTTP %d\n", resp.StatusCode())
		if body := resp.Body(); len(body) > 0 {
			_, _ = fmt.Fprintln(app.out, string(body))
		}
	}

	return err
}

func parseHeaders(raw []string) (http.Header, error) {
	header := make(http.Header, len(raw))
	for _, line := range raw {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, expected 'Name: value'", line)
		}
		header.Add(name, strings.TrimSpace(value))
	}

	return header, nil
}

type WatchCmd struct {
	MetricsAddress string `help:"Serve prometheus metrics on the address, disabled when empty" env:"METRICS_ADDRESS"`
}

func (c *WatchCmd) Run(app *App) error {
	accounts := app.accounts.MustLoad()
	resumed, err := accounts.Resume(app.ctx)
	if err != nil {
		return err
	}
	if !resumed {
		return errNotLoggedIn
	}

	name, _, err := accounts.CurrentUser(app.ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(app.out, "keeping session of %s alive, press Ctrl+C to stop\n", name)

	jobs := []worker.ErrorJob{func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt := <-app.expired:
			return fmt.Errorf("%w, sign in again (%s)", domain.ErrSessionExpired, evt.LoginPath)
		}
	}}
	if c.MetricsAddress != "" {
		server := pkghttp.NewServer(c.MetricsAddress)
		server.Register(
			pkghttp.Route{Method: http.MethodGet, URL: "/metrics"},
			promhttp.HandlerFor(app.registry.MustLoad(), promhttp.HandlerOpts{}),
		)
		jobs = append(jobs, server.Listener)
	}

	return pkgcmd.Run(app.ctx, app.logger.MustLoad(), jobs...)
}
