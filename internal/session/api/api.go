//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "AccountService=AccountService,Gateway=Gateway"
package api

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/klwxsrx/storefront-client/internal/session/app/service"
	sessionhttp "github.com/klwxsrx/storefront-client/internal/session/infra/http"
)

type (
	AccountService interface {
		Login(ctx context.Context, email, password string) error
		Register(ctx context.Context, form service.RegisterForm) error
		Logout(ctx context.Context) error
		Resume(ctx context.Context) (bool, error)
		CurrentUser(ctx context.Context) (string, bool, error)
	}

	Gateway interface {
		Fetch(ctx context.Context, req sessionhttp.Request) (*resty.Response, error)
	}
)
