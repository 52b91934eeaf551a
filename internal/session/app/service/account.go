//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "RefreshScheduler=RefreshScheduler"
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/klwxsrx/storefront-client/internal/session/app/auth"
	"github.com/klwxsrx/storefront-client/internal/session/domain"
	"github.com/klwxsrx/storefront-client/pkg/event"
	"github.com/klwxsrx/storefront-client/pkg/log"
)

type (
	// Messages are the user facing texts of the account forms.
	Messages struct {
		FillAllFields    string
		PasswordMismatch string
		InvalidEmail     string
		WeakPassword     string
		LoginError       string
		RegisterError    string
		ServerError      string
	}

	// FormError is a failure to show next to the form, the user may fix the input and retry.
	FormError struct {
		Message string
	}

	RefreshScheduler interface {
		Schedule(token domain.AccessToken) error
		Cancel()
	}
)

func DefaultMessages() Messages {
	return Messages{
		FillAllFields:    "Please fill in all fields",
		PasswordMismatch: "Passwords do not match",
		InvalidEmail:     "Invalid email",
		WeakPassword:     "Password must be at least 8 characters long and contain an uppercase and a lowercase letter",
		LoginError:       "Login failed",
		RegisterError:    "Registration failed",
		ServerError:      "Could not connect to the server",
	}
}

func (m Messages) withDefaults() Messages {
	defaults := DefaultMessages()
	fallback := func(value *string, defaultValue string) {
		if *value == "" {
			*value = defaultValue
		}
	}

	fallback(&m.FillAllFields, defaults.FillAllFields)
	fallback(&m.PasswordMismatch, defaults.PasswordMismatch)
	fallback(&m.InvalidEmail, defaults.InvalidEmail)
	fallback(&m.WeakPassword, defaults.WeakPassword)
	fallback(&m.LoginError, defaults.LoginError)
	fallback(&m.RegisterError, defaults.RegisterError)
	fallback(&m.ServerError, defaults.ServerError)
	return m
}

func (e *FormError) Error() string {
	return e.Message
}

type AccountService struct {
	api        auth.API
	store      domain.SessionStore
	scheduler  RefreshScheduler
	dispatcher event.Dispatcher
	validator  formValidator
	messages   Messages
	logger     log.Logger
}

func NewAccountService(
	api auth.API,
	store domain.SessionStore,
	scheduler RefreshScheduler,
	dispatcher event.Dispatcher,
	messages Messages,
	logger log.Logger,
) *AccountService {
	messages = messages.withDefaults()
	return &AccountService{
		api:        api,
		store:      store,
		scheduler:  scheduler,
		dispatcher: dispatcher,
		validator:  newFormValidator(messages),
		messages:   messages,
		logger:     logger,
	}
}

func (s *AccountService) Login(ctx context.Context, email, password string) error {
	err := s.validator.Validate(LoginForm{Email: email, Password: password})
	if err != nil {
		return err
	}

	token, err := s.api.Login(ctx, auth.Credentials{Email: email, Password: password})
	if err != nil {
		return s.formError(ctx, err, s.messages.LoginError)
	}

	_, err = domain.ExpiresAt(token)
	if err != nil {
		s.logger.WithError(err).Error(ctx, "auth service issued undecodable access token")
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clear session: %w", clearErr)
		}
		return &FormError{Message: s.messages.ServerError}
	}

	err = s.store.SetDisplayName(ctx, email)
	if err != nil {
		return err
	}
	err = s.store.SetToken(ctx, token)
	if err != nil {
		return err
	}

	err = s.scheduler.Schedule(token)
	if err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}

	err = s.dispatcher.Dispatch(ctx, domain.EventLoggedIn{
		EventID:     uuid.New(),
		DisplayName: email,
	})
	if err != nil {
		s.logger.WithError(err).Error(ctx, "failed to dispatch logged in event")
	}

	return nil
}

func (s *AccountService) Register(ctx context.Context, form RegisterForm) error {
	err := s.validator.Validate(form)
	if err != nil {
		return err
	}

	err = s.api.Register(ctx, auth.Registration{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return s.formError(ctx, err, s.messages.RegisterError)
	}

	return nil
}

func (s *AccountService) Logout(ctx context.Context) error {
	s.scheduler.Cancel()

	err := s.store.Clear(ctx)
	if err != nil {
		return err
	}

	err = s.dispatcher.Dispatch(ctx, domain.EventLoggedOut{EventID: uuid.New()})
	if err != nil {
		s.logger.WithError(err).Error(ctx, "failed to dispatch logged out event")
	}

	return nil
}

// Resume arms the refresh for a token stored by a previous run.
// An undecodable stored token ends the session.
func (s *AccountService) Resume(ctx context.Context) (bool, error) {
	token, ok, err := s.store.Token(ctx)
	if err != nil || !ok {
		return false, err
	}

	err = s.scheduler.Schedule(token)
	if errors.Is(err, domain.ErrTokenDecode) {
		s.logger.WithError(err).Warn(ctx, "stored access token is undecodable, clearing session")
		return false, s.store.Clear(ctx)
	}
	if err != nil {
		return false, fmt.Errorf("schedule refresh: %w", err)
	}

	return true, nil
}

// CurrentUser returns the display name of the logged in user.
func (s *AccountService) CurrentUser(ctx context.Context) (string, bool, error) {
	_, ok, err := s.store.Token(ctx)
	if err != nil || !ok {
		return "", false, err
	}

	return s.store.DisplayName(ctx)
}

func (s *AccountService) formError(ctx context.Context, err error, rejectedFallback string) error {
	var rejected *auth.RejectedError
	if errors.As(err, &rejected) {
		if rejected.Message != "" {
			return &FormError{Message: rejected.Message}
		}
		return &FormError{Message: rejectedFallback}
	}

	s.logger.WithError(err).Warn(ctx, "auth service call failed")
	return &FormError{Message: s.messages.ServerError}
}
