package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/klwxsrx/storefront-client/internal/session/app/auth"
	"github.com/klwxsrx/storefront-client/internal/session/domain"
	"github.com/klwxsrx/storefront-client/pkg/event"
	"github.com/klwxsrx/storefront-client/pkg/log"
	"github.com/klwxsrx/storefront-client/pkg/metric"
)

const (
	DefaultLead      = 60 * time.Second
	DefaultLoginPath = "/login"

	metricRefreshTotal = "session_refresh_total"
	refreshFlightKey   = "refresh"
)

type Option func(*Scheduler)

func WithLead(lead time.Duration) Option {
	return func(s *Scheduler) {
		if lead >= 0 {
			s.lead = lead
		}
	}
}

func WithLoginPath(path string) Option {
	return func(s *Scheduler) {
		if path != "" {
			s.loginPath = path
		}
	}
}

// Scheduler keeps the stored access token fresh.
// It holds at most one pending refresh, every Schedule supersedes the previous one.
type Scheduler struct {
	api        auth.API
	store      domain.SessionStore
	dispatcher event.Dispatcher
	clock      clockwork.Clock
	metrics    metric.Metrics
	logger     log.Logger

	lead      time.Duration
	loginPath string

	ctx       context.Context
	ctxCancel context.CancelFunc
	flight    singleflight.Group

	mu            sync.Mutex
	timer         clockwork.Timer
	generation    uint64
	nextRefreshAt time.Time
	scheduled     bool
}

func NewScheduler(
	api auth.API,
	store domain.SessionStore,
	dispatcher event.Dispatcher,
	clock clockwork.Clock,
	metrics metric.Metrics,
	logger log.Logger,
	opts ...Option,
) *Scheduler {
	ctx, ctxCancel := context.WithCancel(context.Background())
	s := &Scheduler{
		api:        api,
		store:      store,
		dispatcher: dispatcher,
		clock:      clock,
		metrics:    metrics,
		logger:     logger,
		lead:       DefaultLead,
		loginPath:  DefaultLoginPath,
		ctx:        ctx,
		ctxCancel:  ctxCancel,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Schedule arms a refresh lead before the token expiry.
// Tokens expiring within lead are refreshed right away on a new goroutine.
func (s *Scheduler) Schedule(token domain.AccessToken) error {
	expiresAt, err := domain.ExpiresAt(token)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	delay := expiresAt.Sub(now) - s.lead

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	generation := s.generation
	s.scheduled = true

	if delay <= 0 {
		s.nextRefreshAt = now
		go s.fire(generation)
		return nil
	}

	s.nextRefreshAt = now.Add(delay)
	s.timer = s.clock.AfterFunc(delay, func() {
		go s.fire(generation)
	})
	return nil
}

// Refresh exchanges the refresh cookie for a new access token.
// Concurrent callers share one network call and its result.
// The shared call outlives the caller ctx and stops only with the scheduler.
// Any failure ends the session, the returned error wraps domain.ErrSessionExpired.
func (s *Scheduler) Refresh(ctx context.Context) (domain.AccessToken, error) {
	resultChan := s.flight.DoChan(refreshFlightKey, func() (any, error) {
		flightCtx, cancel := s.flightContext(ctx)
		defer cancel()

		return s.refresh(flightCtx)
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("refresh access token: %w", ctx.Err())
	case result := <-resultChan:
		if result.Err != nil {
			return "", result.Err
		}
		return result.Val.(domain.AccessToken), nil
	}
}

func (s *Scheduler) NextRefreshAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.nextRefreshAt, s.scheduled
}

// Cancel drops the pending refresh, the scheduler stays usable.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Stop cancels the pending refresh and any refresh fired by the timer.
func (s *Scheduler) Stop() {
	s.ctxCancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *Scheduler) refresh(ctx context.Context) (domain.AccessToken, error) {
	token, err := s.api.Refresh(ctx)
	if err == nil {
		_, err = domain.ExpiresAt(token)
	}
	if err == nil {
		err = s.store.SetToken(ctx, token)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("refresh access token: %w", errors.Join(ctxErr, err))
		}

		s.expire(ctx, err)
		return "", fmt.Errorf("refresh access token: %w: %w", domain.ErrSessionExpired, err)
	}

	s.metrics.WithLabel("result", "success").Increment(metricRefreshTotal)

	err = s.dispatcher.Dispatch(ctx, domain.EventTokenRefreshed{EventID: uuid.New()})
	if err != nil {
		s.logger.WithError(err).Error(ctx, "failed to dispatch token refreshed event")
	}

	err = s.Schedule(token)
	if err != nil {
		return "", fmt.Errorf("schedule refresh: %w", err)
	}

	return token, nil
}

// flightContext keeps the values of ctx and is cancelled by Stop only.
func (s *Scheduler) flightContext(ctx context.Context) (context.Context, context.CancelFunc) {
	flightCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(s.ctx, cancel)

	return flightCtx, func() {
		stop()
		cancel()
	}
}

func (s *Scheduler) expire(ctx context.Context, cause error) {
	ctx = context.WithoutCancel(ctx)
	s.metrics.WithLabel("result", "failure").Increment(metricRefreshTotal)

	s.mu.Lock()
	s.cancelLocked()
	s.mu.Unlock()

	err := s.store.Clear(ctx)
	if err != nil {
		s.logger.WithError(err).Error(ctx, "failed to clear session")
	}

	err = s.dispatcher.Dispatch(ctx, domain.EventSessionExpired{
		EventID:   uuid.New(),
		LoginPath: s.loginPath,
	})
	if err != nil {
		s.logger.WithError(err).Error(ctx, "failed to dispatch session expired event")
	}

	s.logger.WithError(cause).Warn(ctx, "session expired")
}

func (s *Scheduler) fire(generation uint64) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	_, err := s.Refresh(s.ctx)
	if err != nil {
		s.logger.WithError(err).Error(s.ctx, "scheduled token refresh failed")
	}
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	s.scheduled = false
	s.nextRefreshAt = time.Time{}
}
