package http

import (
	pkghttp "github.com/klwxsrx/storefront-client/pkg/http"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	RequestIDHeader = pkghttp.DefaultRequestIDHeader
)

const (
	DestinationAuthService    pkghttp.Destination = "auth"
	DestinationCatalogService pkghttp.Destination = "catalog"
)

func BearerToken(token string) string {
	return "Bearer " + token
}
