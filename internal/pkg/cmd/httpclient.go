package cmd

import (
	"fmt"
	"time"

	"github.com/klwxsrx/storefront-client/pkg/env"
	"github.com/klwxsrx/storefront-client/pkg/http"
	"github.com/klwxsrx/storefront-client/pkg/strings"
)

type HTTPClientFactory struct {
	impl http.ClientFactory
}

func NewHTTPClientFactory(
	opts ...http.ClientOption,
) HTTPClientFactory {
	return HTTPClientFactory{
		impl: http.NewClientFactory(opts...),
	}
}

func (f HTTPClientFactory) InitRawClient(extraOpts ...http.ClientOption) http.Client {
	return f.impl.InitRawClient(extraOpts...)
}

// MustInitClient reads the base URL from <DEST>_SERVICE_URL and an optional timeout from <DEST>_HTTP_TIMEOUT.
func (f HTTPClientFactory) MustInitClient(dest http.Destination, extraOpts ...http.ClientOption) http.Client {
	timeout := env.Must(env.ParseOptional[time.Duration](destinationEnv(dest, "HTTP_TIMEOUT")))
	if timeout != nil {
		extraOpts = append([]http.ClientOption{http.WithTimeout(*timeout)}, extraOpts...)
	}

	return f.impl.InitClient(dest, MustServiceURL(dest), extraOpts...)
}

func MustServiceURL(dest http.Destination) string {
	return env.Must(env.Parse[string](destinationEnv(dest, "SERVICE_URL")))
}

func destinationEnv(dest http.Destination, suffix string) string {
	return fmt.Sprintf("%s_%s", strings.ToScreamingSnakeCase(string(dest)), suffix)
}
