//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "CatalogService=CatalogService"
package api

import (
	"context"

	"github.com/klwxsrx/storefront-client/internal/catalog/domain"
)

type CatalogService interface {
	List(ctx context.Context) []domain.Product
}
