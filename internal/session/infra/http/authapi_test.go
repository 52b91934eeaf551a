package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/storefront-client/internal/session/app/auth"
	"github.com/klwxsrx/storefront-client/internal/session/domain"
	sessionhttp "github.com/klwxsrx/storefront-client/internal/session/infra/http"
	pkghttp "github.com/klwxsrx/storefront-client/pkg/http"
)

func TestAuthAPI_Login(t *testing.T) {
	ctx := context.Background()
	origin := newFakeOrigin(t)
	s := newSession(t, origin)
	api := sessionhttp.NewAuthAPI(s.client)

	token, err := api.Login(ctx, auth.Credentials{Email: "a@b.co", Password: validPassword})
	require.NoError(t, err)
	assert.Equal(t, domain.AccessToken(origin.currentToken()), token)

	stored, ok, err := s.storage.Get(ctx, domain.StorageKeyCookies)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, stored, refreshCookie)
}

func TestAuthAPI_Login_Rejected(t *testing.T) {
	origin := newFakeOrigin(t)
	api := sessionhttp.NewAuthAPI(newSession(t, origin).client)

	_, err := api.Login(context.Background(), auth.Credentials{Email: "a@b.co", Password: "wrong"})

	var rejected *auth.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusUnauthorized, rejected.StatusCode)
	assert.Equal(t, "Invalid credentials", rejected.Message)
}

func TestAuthAPI_Login_InvalidResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		expect  func(t *testing.T, err error)
	}{
		{
			name: "non_json_error_body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("<html>bad gateway</html>"))
			},
			expect: func(t *testing.T, err error) {
				var rejected *auth.RejectedError
				require.ErrorAs(t, err, &rejected)
				assert.Equal(t, http.StatusBadGateway, rejected.StatusCode)
				assert.Empty(t, rejected.Message)
			},
		},
		{
			name: "empty_access_token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{"accessToken": ""})
			},
			expect: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, pkghttp.ErrParsingError)
			},
		},
		{
			name: "invalid_json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("ok"))
			},
			expect: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, pkghttp.ErrParsingError)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			t.Cleanup(server.Close)

			api := sessionhttp.NewAuthAPI(pkghttp.NewClient(pkghttp.WithBaseURL(server.URL)))
			_, err := api.Login(context.Background(), auth.Credentials{Email: "a@b.co", Password: validPassword})
			tc.expect(t, err)
		})
	}
}

func TestAuthAPI_Register(t *testing.T) {
	origin := newFakeOrigin(t)
	api := sessionhttp.NewAuthAPI(newSession(t, origin).client)

	err := api.Register(context.Background(), auth.Registration{Username: "ana", Email: "a@b.co", Password: validPassword})
	require.NoError(t, err)

	err = api.Register(context.Background(), auth.Registration{Username: "ana", Email: takenEmail, Password: validPassword})

	var rejected *auth.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusConflict, rejected.StatusCode)
	assert.Equal(t, "Email already registered", rejected.Message)
}

func TestAuthAPI_Refresh_UsesCookie(t *testing.T) {
	ctx := context.Background()
	origin := newFakeOrigin(t)
	api := sessionhttp.NewAuthAPI(newSession(t, origin).client)

	_, err := api.Refresh(ctx)
	var rejected *auth.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusUnauthorized, rejected.StatusCode)

	_, err = api.Login(ctx, auth.Credentials{Email: "a@b.co", Password: validPassword})
	require.NoError(t, err)

	token, err := api.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessToken(origin.nextToken), token)
}

func TestAuthAPI_Unavailable(t *testing.T) {
	origin := newFakeOrigin(t)
	api := sessionhttp.NewAuthAPI(newSession(t, origin).client)
	origin.server.Close()

	_, err := api.Refresh(context.Background())
	assert.ErrorIs(t, err, auth.ErrUnavailable)

	err = api.Register(context.Background(), auth.Registration{Username: "ana", Email: "a@b.co", Password: validPassword})
	assert.ErrorIs(t, err, auth.ErrUnavailable)
}
