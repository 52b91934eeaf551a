package cmd

import (
	"context"
	"errors"

	"github.com/klwxsrx/storefront-client/pkg/log"
	"github.com/klwxsrx/storefront-client/pkg/worker"
)

// Run runs the jobs until the first of them completes, the rest are cancelled.
// A job failure is logged and returned, completion through ctx cancellation is not a failure.
func Run(ctx context.Context, logger log.Logger, jobs ...worker.ErrorJob) error {
	errCompleted := errors.New("job completed")

	group := worker.NewFailFastGroup(ctx)
	for _, job := range jobs {
		group.Do(func(ctx context.Context) error {
			err := job(ctx)
			if err == nil || errors.Is(err, ctx.Err()) {
				return errCompleted
			}

			logger.WithError(err).Error(ctx, "running job completed with error")
			return err
		})
	}

	err := group.Wait()
	if errors.Is(err, errCompleted) {
		return nil
	}

	return err
}
