package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/klwxsrx/storefront-client/internal/session/app/auth"
	sessionappauthmock "github.com/klwxsrx/storefront-client/internal/session/app/auth/mock"
	"github.com/klwxsrx/storefront-client/internal/session/app/service"
	sessionappservicemock "github.com/klwxsrx/storefront-client/internal/session/app/service/mock"
	"github.com/klwxsrx/storefront-client/internal/session/domain"
	"github.com/klwxsrx/storefront-client/internal/session/infra/memory"
	"github.com/klwxsrx/storefront-client/pkg/event"
	"github.com/klwxsrx/storefront-client/pkg/log"
)

const (
	validEmail    = "ana@shop.io"
	validPassword = "Secret123"
)

var messages = service.DefaultMessages()

type fixture struct {
	api       *sessionappauthmock.API
	scheduler *sessionappservicemock.RefreshScheduler
	store     domain.SessionStore

	mu     sync.Mutex
	events []string

	service *service.AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		api:       sessionappauthmock.NewAPI(ctrl),
		scheduler: sessionappservicemock.NewRefreshScheduler(ctrl),
		store:     domain.NewSessionStore(memory.NewStorage()),
	}

	record := func(_ context.Context, evt event.Event) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.events = append(f.events, evt.Type())
		return nil
	}
	dispatcher := event.NewDispatcher(map[string]event.Handler{
		domain.EventTypeLoggedIn:  record,
		domain.EventTypeLoggedOut: record,
	})

	f.service = service.NewAccountService(f.api, f.store, f.scheduler, dispatcher, service.Messages{}, log.NewStub())
	return f
}

func validToken(t *testing.T) domain.AccessToken {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}).
		SignedString([]byte("secret"))
	require.NoError(t, err)
	return domain.AccessToken(token)
}

func requireFormError(t *testing.T, err error, expectedMessage string) {
	t.Helper()

	var formErr *service.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, expectedMessage, formErr.Message)
}

func TestAccountService_Login_ValidatesBeforeNetwork(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		expected string
	}{
		{name: "empty_email", email: "", password: validPassword, expected: messages.FillAllFields},
		{name: "empty_password", email: validEmail, password: "", expected: messages.FillAllFields},
		{name: "invalid_email", email: "ana@shop", password: validPassword, expected: messages.InvalidEmail},
		{name: "email_with_space", email: "ana @shop.io", password: validPassword, expected: messages.InvalidEmail},
		{name: "invalid_email_wins_over_weak_password", email: "ana", password: "weak", expected: messages.InvalidEmail},
		{name: "short_password", email: validEmail, password: "Sh0rt", expected: messages.WeakPassword},
		{name: "no_upper_case", email: validEmail, password: "secret123", expected: messages.WeakPassword},
		{name: "no_lower_case", email: validEmail, password: "SECRET123", expected: messages.WeakPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			err := f.service.Login(context.Background(), tc.email, tc.password)
			requireFormError(t, err, tc.expected)
		})
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	token := validToken(t)

	f.api.EXPECT().Login(gomock.Any(), auth.Credentials{Email: validEmail, Password: validPassword}).Return(token, nil)
	f.scheduler.EXPECT().Schedule(token).Return(nil)

	require.NoError(t, f.service.Login(ctx, validEmail, validPassword))

	stored, ok, err := f.store.Token(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, token, stored)

	name, ok, err := f.service.CurrentUser(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, validEmail, name)
	assert.Equal(t, []string{domain.EventTypeLoggedIn}, f.events)
}

func TestAccountService_Login_Failures(t *testing.T) {
	tests := []struct {
		name     string
		token    domain.AccessToken
		err      error
		expected string
	}{
		{
			name:     "rejected_with_message",
			err:      &auth.RejectedError{StatusCode: 401, Message: "Invalid credentials"},
			expected: "Invalid credentials",
		},
		{
			name:     "rejected_without_message",
			err:      &auth.RejectedError{StatusCode: 500},
			expected: messages.LoginError,
		},
		{
			name:     "unavailable",
			err:      auth.ErrUnavailable,
			expected: messages.ServerError,
		},
		{
			name:     "undecodable_token",
			token:    "garbage",
			expected: messages.ServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			require.NoError(t, f.store.SetToken(ctx, "previous"))

			f.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(tc.token, tc.err)

			err := f.service.Login(ctx, validEmail, validPassword)
			requireFormError(t, err, tc.expected)
			assert.Empty(t, f.events)

			if tc.token != "" {
				_, ok, err := f.store.Token(ctx)
				require.NoError(t, err)
				assert.False(t, ok)
			}
		})
	}
}

func TestAccountService_Register_ValidatesBeforeNetwork(t *testing.T) {
	valid := service.RegisterForm{
		Username:        "ana",
		Email:           validEmail,
		Password:        validPassword,
		ConfirmPassword: validPassword,
	}

	tests := []struct {
		name     string
		modify   func(form *service.RegisterForm)
		expected string
	}{
		{
			name:     "empty_username",
			modify:   func(form *service.RegisterForm) { form.Username = "" },
			expected: messages.FillAllFields,
		},
		{
			name:     "empty_confirmation",
			modify:   func(form *service.RegisterForm) { form.ConfirmPassword = "" },
			expected: messages.FillAllFields,
		},
		{
			name: "mismatch_wins_over_invalid_email_and_weak_password",
			modify: func(form *service.RegisterForm) {
				form.Email = "ana"
				form.Password = "weak"
				form.ConfirmPassword = "other"
			},
			expected: messages.PasswordMismatch,
		},
		{
			name:     "invalid_email",
			modify:   func(form *service.RegisterForm) { form.Email = "ana@@shop.io" },
			expected: messages.InvalidEmail,
		},
		{
			name: "weak_password",
			modify: func(form *service.RegisterForm) {
				form.Password = "alllowercase"
				form.ConfirmPassword = "alllowercase"
			},
			expected: messages.WeakPassword,
		},
		{
			name: "password_with_line_break",
			modify: func(form *service.RegisterForm) {
				form.Password = "abcdefgh\nA"
				form.ConfirmPassword = "abcdefgh\nA"
			},
			expected: messages.WeakPassword,
		},
		{
			name: "password_with_carriage_return",
			modify: func(form *service.RegisterForm) {
				form.Password = "Abcdefgh\rb"
				form.ConfirmPassword = "Abcdefgh\rb"
			},
			expected: messages.WeakPassword,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			form := valid
			tc.modify(&form)

			err := f.service.Register(context.Background(), form)
			requireFormError(t, err, tc.expected)
		})
	}
}

func TestAccountService_Register(t *testing.T) {
	form := service.RegisterForm{
		Username:        "ana",
		Email:           validEmail,
		Password:        validPassword,
		ConfirmPassword: validPassword,
	}
	registration := auth.Registration{Username: "ana", Email: validEmail, Password: validPassword}

	tests := []struct {
		name   string
		err    error
		expect func(t *testing.T, err error)
	}{
		{
			name: "success",
			expect: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "rejected_with_text",
			err:  &auth.RejectedError{StatusCode: 409, Message: "Email already registered"},
			expect: func(t *testing.T, err error) {
				requireFormError(t, err, "Email already registered")
			},
		},
		{
			name: "rejected_without_text",
			err:  &auth.RejectedError{StatusCode: 500},
			expect: func(t *testing.T, err error) {
				requireFormError(t, err, messages.RegisterError)
			},
		},
		{
			name: "unavailable",
			err:  auth.ErrUnavailable,
			expect: func(t *testing.T, err error) {
				requireFormError(t, err, messages.ServerError)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.api.EXPECT().Register(gomock.Any(), registration).Return(tc.err)

			tc.expect(t, f.service.Register(context.Background(), form))
		})
	}
}

func TestAccountService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.SetToken(ctx, validToken(t)))
	require.NoError(t, f.store.SetDisplayName(ctx, validEmail))

	f.scheduler.EXPECT().Cancel()

	require.NoError(t, f.service.Logout(ctx))

	_, ok, err := f.service.CurrentUser(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{domain.EventTypeLoggedOut}, f.events)
}

func TestAccountService_Resume(t *testing.T) {
	ctx := context.Background()

	t.Run("no_stored_token", func(t *testing.T) {
		f := newFixture(t)

		resumed, err := f.service.Resume(ctx)
		require.NoError(t, err)
		assert.False(t, resumed)
	})

	t.Run("schedules_stored_token", func(t *testing.T) {
		f := newFixture(t)
		token := validToken(t)
		require.NoError(t, f.store.SetToken(ctx, token))
		f.scheduler.EXPECT().Schedule(token).Return(nil)

		resumed, err := f.service.Resume(ctx)
		require.NoError(t, err)
		assert.True(t, resumed)
	})

	t.Run("clears_undecodable_token", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.SetToken(ctx, "garbage"))
		f.scheduler.EXPECT().Schedule(domain.AccessToken("garbage")).Return(domain.ErrTokenDecode)

		resumed, err := f.service.Resume(ctx)
		require.NoError(t, err)
		assert.False(t, resumed)

		_, ok, err := f.store.Token(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestAccountService_CustomMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := service.NewAccountService(
		sessionappauthmock.NewAPI(ctrl),
		domain.NewSessionStore(memory.NewStorage()),
		sessionappservicemock.NewRefreshScheduler(ctrl),
		event.NewDispatcher(nil),
		service.Messages{FillAllFields: "Por favor, rellena todos los campos"},
		log.NewStub(),
	)

	err := accounts.Login(context.Background(), "", "")
	requireFormError(t, err, "Por favor, rellena todos los campos")

	err = accounts.Login(context.Background(), "ana", validPassword)
	requireFormError(t, err, messages.InvalidEmail)
}
