package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/klwxsrx/storefront-client/internal/session/app/auth"
	"github.com/klwxsrx/storefront-client/internal/session/domain"
	pkghttp "github.com/klwxsrx/storefront-client/pkg/http"
)

var (
	loginRoute    = pkghttp.Route{Method: http.MethodPost, URL: "/auth/login"}
	registerRoute = pkghttp.Route{Method: http.MethodPost, URL: "/auth/register"}
	refreshRoute  = pkghttp.Route{Method: http.MethodPost, URL: "/auth/refresh"}
)

var errEmptyAccessToken = errors.New("empty access token")

type (
	accessTokenOut struct {
		AccessToken string `json:"accessToken"`
	}

	errorOut struct {
		Message string `json:"message"`
	}
)

type authAPI struct {
	client pkghttp.Client
}

// NewAuthAPI talks to the auth origin without the gateway,
// a 401 from login means wrong credentials rather than an expired session.
func NewAuthAPI(client pkghttp.Client) auth.API {
	return &authAPI{client: client}
}

func (a *authAPI) Login(ctx context.Context, credentials auth.Credentials) (domain.AccessToken, error) {
	resp, err := loginRoute.Send(a.client.NewRequest(ctx).SetBody(credentials))
	if err != nil {
		return "", fmt.Errorf("%w: login: %w", auth.ErrUnavailable, err)
	}
	if !pkghttp.IsSuccess(resp) {
		return "", rejectedWithJSONMessage(resp)
	}

	return parseAccessToken(resp)
}

func (a *authAPI) Register(ctx context.Context, registration auth.Registration) error {
	resp, err := registerRoute.Send(a.client.NewRequest(ctx).SetBody(registration))
	if err != nil {
		return fmt.Errorf("%w: register: %w", auth.ErrUnavailable, err)
	}
	if pkghttp.IsSuccess(resp) {
		return nil
	}

	message, _ := pkghttp.ParseResponse(resp, pkghttp.TextBody(), nil)
	return &auth.RejectedError{
		StatusCode: resp.StatusCode(),
		Message:    message,
	}
}

func (a *authAPI) Refresh(ctx context.Context) (domain.AccessToken, error) {
	resp, err := refreshRoute.Send(a.client.NewRequest(ctx))
	if err != nil {
		return "", fmt.Errorf("%w: refresh: %w", auth.ErrUnavailable, err)
	}
	if !pkghttp.IsSuccess(resp) {
		return "", rejectedWithJSONMessage(resp)
	}

	return parseAccessToken(resp)
}

func parseAccessToken(resp *resty.Response) (domain.AccessToken, error) {
	out, err := pkghttp.ParseResponse(resp, pkghttp.JSONBody[accessTokenOut](), nil)
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: %w", pkghttp.ErrParsingError, errEmptyAccessToken)
	}

	return domain.AccessToken(out.AccessToken), nil
}

func rejectedWithJSONMessage(resp *resty.Response) error {
	rejected := &auth.RejectedError{StatusCode: resp.StatusCode()}

	out := pkghttp.ParseResponseOptional(resp, pkghttp.JSONBody[errorOut](), nil)
	if out != nil {
		rejected.Message = out.Message
	}

	return rejected
}
