package sig

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var termSignals = []os.Signal{syscall.SIGTERM, syscall.SIGINT}

func TermSignals() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, termSignals...)
	return ch
}

// WithTermination returns a context cancelled on SIGTERM or SIGINT.
func WithTermination(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, termSignals...)
}
