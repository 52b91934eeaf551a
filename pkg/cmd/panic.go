package cmd

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/klwxsrx/storefront-client/pkg/log"
)

// LogPanic records a value returned by recover, nil is ignored.
func LogPanic(ctx context.Context, logger log.Logger, msg any) (panicCaught bool) {
	if msg == nil {
		return false
	}

	logger.WithField("panic", log.Fields{
		"message": fmt.Sprintf("%v", msg),
		"stack":   string(debug.Stack()),
	}).Error(ctx, "app failed with panic")
	return true
}
