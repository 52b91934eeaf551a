//go:generate ${TOOLS_BIN}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Metrics=Metrics"
package metric

import "time"

type (
	Metrics interface {
		With(labels Labels) Metrics
		WithLabel(name string, value any) Metrics
		Increment(name string)
		Duration(name string, d time.Duration)
	}

	Labels map[string]string
)

func (l Labels) merge(other Labels) Labels {
	result := make(Labels, len(l)+len(other))
	for k, v := range l {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}

	return result
}
