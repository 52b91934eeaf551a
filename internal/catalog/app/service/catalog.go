package service

import (
	"context"

	"github.com/klwxsrx/storefront-client/internal/catalog/domain"
	"github.com/klwxsrx/storefront-client/pkg/log"
)

type CatalogService struct {
	source domain.ProductSource
	logger log.Logger
}

func NewCatalogService(source domain.ProductSource, logger log.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		logger: logger,
	}
}

// List never fails, the built-in products are returned when the source is unavailable.
func (s *CatalogService) List(ctx context.Context) []domain.Product {
	products, err := s.source.List(ctx)
	if err != nil {
		s.logger.WithError(err).Warn(ctx, "product source unavailable, using fallback products")
		return domain.FallbackProducts()
	}

	return products
}
