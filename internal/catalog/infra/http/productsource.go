package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/klwxsrx/storefront-client/internal/catalog/domain"
	pkghttp "github.com/klwxsrx/storefront-client/pkg/http"
)

const (
	DefaultFetchAttempts = 1

	retryInitialInterval = 200 * time.Millisecond
	retryMaxInterval     = 2 * time.Second
)

var listProductsRoute = pkghttp.Route{Method: http.MethodGet, URL: "/api/products"}

type productSource struct {
	client   pkghttp.Client
	attempts int
}

// NewProductSource reads the public catalog, failed calls are retried until attempts are exhausted.
func NewProductSource(client pkghttp.Client, attempts int) domain.ProductSource {
	if attempts < 1 {
		attempts = DefaultFetchAttempts
	}

	return &productSource{
		client:   client,
		attempts: attempts,
	}
}

func (s *productSource) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := backoff.Retry(func() error {
		resp, err := listProductsRoute.Send(s.client.NewRequest(ctx))
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		if !pkghttp.IsSuccess(resp) {
			return fmt.Errorf("list products: unexpected status %d", resp.StatusCode())
		}

		products, err = pkghttp.ParseResponse(resp, pkghttp.JSONBody[[]domain.Product](), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}, backoff.WithContext(s.retryPolicy(), ctx))
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (s *productSource) retryPolicy() backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = retryInitialInterval
	eb.MaxInterval = retryMaxInterval
	eb.MaxElapsedTime = 0

	return backoff.WithMaxRetries(eb, uint64(s.attempts-1))
}
