package catalog

import (
	"github.com/klwxsrx/storefront-client/internal/catalog/api"
	"github.com/klwxsrx/storefront-client/internal/catalog/app/service"
	"github.com/klwxsrx/storefront-client/internal/catalog/domain"
	cataloghttp "github.com/klwxsrx/storefront-client/internal/catalog/infra/http"
	commoncmd "github.com/klwxsrx/storefront-client/internal/pkg/cmd"
	commonhttp "github.com/klwxsrx/storefront-client/internal/pkg/http"
	pkgenv "github.com/klwxsrx/storefront-client/pkg/env"
	pkglazy "github.com/klwxsrx/storefront-client/pkg/lazy"
)

type DependencyContainer struct {
	CatalogService pkglazy.Loader[api.CatalogService]
}

func NewDependencyContainer(infra *commoncmd.InfrastructureContainer) *DependencyContainer {
	productSource := pkglazy.New(func() (domain.ProductSource, error) {
		attempts := pkgenv.Must(pkgenv.ParseDefault("CATALOG_FETCH_ATTEMPTS", cataloghttp.DefaultFetchAttempts))
		return cataloghttp.NewProductSource(
			infra.HTTPClientFactory.MustLoad().MustInitClient(commonhttp.DestinationCatalogService),
			attempts,
		), nil
	})

	return &DependencyContainer{
		CatalogService: pkglazy.New(func() (api.CatalogService, error) {
			return service.NewCatalogService(productSource.MustLoad(), infra.Logger.MustLoad()), nil
		}),
	}
}
