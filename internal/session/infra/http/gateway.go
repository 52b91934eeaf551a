package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	commonhttp "github.com/klwxsrx/storefront-client/internal/pkg/http"
	"github.com/klwxsrx/storefront-client/internal/session/app/auth"
	"github.com/klwxsrx/storefront-client/internal/session/domain"
	pkghttp "github.com/klwxsrx/storefront-client/pkg/http"
)

type (
	// Gateway performs calls on behalf of the logged in user.
	Gateway interface {
		Fetch(ctx context.Context, req Request) (*resty.Response, error)
	}

	Request struct {
		Method string
		URL    string
		Header http.Header
		Body   any
	}

	Refresher interface {
		Refresh(ctx context.Context) (domain.AccessToken, error)
	}
)

type gateway struct {
	client    pkghttp.Client
	store     domain.SessionStore
	refresher Refresher
}

func NewGateway(
	client pkghttp.Client,
	store domain.SessionStore,
	refresher Refresher,
) Gateway {
	return &gateway{
		client:    client,
		store:     store,
		refresher: refresher,
	}
}

// Fetch sends the request with the stored access token.
// A 401 triggers one refresh and one retry, the retry response is returned whatever its status.
// When the refresh fails the original 401 response is returned with an error wrapping domain.ErrSessionExpired.
func (g *gateway) Fetch(ctx context.Context, req Request) (*resty.Response, error) {
	resp, err := g.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusUnauthorized {
		return resp, nil
	}

	_, err = g.refresher.Refresh(ctx)
	if errors.Is(err, domain.ErrSessionExpired) {
		return resp, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}

	return g.send(ctx, req)
}

func (g *gateway) send(ctx context.Context, req Request) (*resty.Response, error) {
	token, ok, err := g.store.Token(ctx)
	if err != nil {
		return nil, err
	}

	r := g.client.NewRequest(ctx)
	for key, values := range req.Header {
		for _, value := range values {
			r.Header.Add(key, value)
		}
	}
	if r.Header.Get(commonhttp.HeaderContentType) == "" {
		r.SetHeader(commonhttp.HeaderContentType, commonhttp.ContentTypeJSON)
	}
	if ok {
		r.SetHeader(commonhttp.HeaderAuthorization, commonhttp.BearerToken(string(token)))
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", auth.ErrUnavailable, req.Method, req.URL, err)
	}

	return resp, nil
}
