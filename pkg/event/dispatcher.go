package event

import (
	"context"
	"errors"
	"fmt"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, events ...Event) error
}

type dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher routes every event to the handler registered for its type.
// Events without a handler are skipped, every handler is called even if a previous one failed.
func NewDispatcher(handlers map[string]Handler) Dispatcher {
	return &dispatcher{handlers: handlers}
}

func (d *dispatcher) Dispatch(ctx context.Context, events ...Event) error {
	var errs []error
	for _, evt := range events {
		handler, ok := d.handlers[evt.Type()]
		if !ok {
			continue
		}

		err := handler(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("handle event %s: %w", evt.Type(), err))
		}
	}

	return errors.Join(errs...)
}
