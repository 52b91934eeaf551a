package metric

import "time"

type stub struct{}

func NewStub() Metrics {
	return stub{}
}

func (s stub) With(Labels) Metrics {
	return s
}

func (s stub) WithLabel(string, any) Metrics {
	return s
}

func (s stub) Increment(string) {}

func (s stub) Duration(string, time.Duration) {}
