package metric

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type prometheusRegistry struct {
	namespace  string
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

type prometheusMetrics struct {
	registry *prometheusRegistry
	labels   Labels
}

// NewPrometheus creates metrics backed by collectors registered on demand:
// counters for Increment, histograms for Duration. The label set of a metric is fixed by its first use.
func NewPrometheus(namespace string, registerer prometheus.Registerer) Metrics {
	return prometheusMetrics{
		registry: &prometheusRegistry{
			namespace:  namespace,
			registerer: registerer,
			counters:   make(map[string]*prometheus.CounterVec),
			histograms: make(map[string]*prometheus.HistogramVec),
		},
	}
}

func (m prometheusMetrics) With(labels Labels) Metrics {
	m.labels = m.labels.merge(labels)
	return m
}

func (m prometheusMetrics) WithLabel(name string, value any) Metrics {
	return m.With(Labels{name: fmt.Sprint(value)})
}

func (m prometheusMetrics) Increment(name string) {
	counter, err := m.registry.counter(name, labelNames(m.labels)).GetMetricWith(prometheus.Labels(m.labels))
	if err != nil {
		return
	}

	counter.Inc()
}

func (m prometheusMetrics) Duration(name string, d time.Duration) {
	observer, err := m.registry.histogram(name, labelNames(m.labels)).GetMetricWith(prometheus.Labels(m.labels))
	if err != nil {
		return
	}

	observer.Observe(d.Seconds())
}

func (r *prometheusRegistry) counter(name string, labels []string) *prometheus.CounterVec {
	r.mu.Lock()
	defer r.mu.Unlock()

	if counter, ok := r.counters[name]; ok {
		return counter
	}

	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      name,
		Help:      helpText(name),
	}, labels)
	r.register(counter)
	r.counters[name] = counter

	return counter
}

func (r *prometheusRegistry) histogram(name string, labels []string) *prometheus.HistogramVec {
	r.mu.Lock()
	defer r.mu.Unlock()

	if histogram, ok := r.histograms[name]; ok {
		return histogram
	}

	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      name,
		Help:      helpText(name),
		Buckets:   prometheus.DefBuckets,
	}, labels)
	r.register(histogram)
	r.histograms[name] = histogram

	return histogram
}

func (r *prometheusRegistry) register(collector prometheus.Collector) {
	if r.registerer == nil {
		return
	}

	// duplicate registration only happens for equal descriptors, collectors are cached above
	_ = r.registerer.Register(collector)
}

func labelNames(labels Labels) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func helpText(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
