//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "API=API"
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/klwxsrx/storefront-client/internal/session/domain"
)

var ErrUnavailable = errors.New("auth service unavailable")

type (
	// API is the auth origin contract. Refresh relies on the refresh cookie only.
	API interface {
		Login(ctx context.Context, credentials Credentials) (domain.AccessToken, error)
		Register(ctx context.Context, registration Registration) error
		Refresh(ctx context.Context) (domain.AccessToken, error)
	}

	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	Registration struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// RejectedError is a non-2xx answer of the auth origin.
	RejectedError struct {
		StatusCode int
		Message    string
	}
)

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth request rejected with status %d", e.StatusCode)
	}

	return fmt.Sprintf("auth request rejected with status %d: %s", e.StatusCode, e.Message)
}
