package metric_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/storefront-client/pkg/metric"
)

func TestPrometheus_Increment(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := metric.NewPrometheus("storefront", registry)

	metrics.WithLabel("result", "success").Increment("session_refresh_total")
	metrics.WithLabel("result", "success").Increment("session_refresh_total")
	metrics.WithLabel("result", "failure").Increment("session_refresh_total")

	count, err := testutil.GatherAndCount(registry, "storefront_session_refresh_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	values := map[string]float64{}
	for _, m := range families[0].GetMetric() {
		values[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"success": 2, "failure": 1}, values)
}

func TestPrometheus_DurationIgnoresInconsistentLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := metric.NewPrometheus("storefront", registry)

	metrics.With(metric.Labels{"destination": "auth"}).Duration("http_client_request_duration_seconds", time.Second)
	metrics.With(metric.Labels{"method": "GET"}).Duration("http_client_request_duration_seconds", time.Second)

	count, err := testutil.GatherAndCount(registry, "storefront_http_client_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
