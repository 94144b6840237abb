package fetcher

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultInterval is the fixed spacing between two registry calls. The
// registry documents 5 requests per minute; 15s keeps a safety margin.
const DefaultInterval = 15 * time.Second

// Gate enforces a fixed minimum interval between permitted calls. It is a
// token bucket with burst 1, so the first call passes immediately and each
// later call waits until the interval has elapsed since the previous one.
type Gate struct {
	limiter  *rate.Limiter
	interval time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	last     time.Time
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithClock sets the time source (for testing).
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		g.now = now
	}
}

// WithSleep sets the function used to wait (for testing).
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) GateOption {
	return func(g *Gate) {
		g.sleep = sleep
	}
}

// NewGate creates a gate permitting one call per interval.
func NewGate(interval time.Duration, opts ...GateOption) *Gate {
	if interval <= 0 {
		interval = DefaultInterval
	}
	g := &Gate{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Interval returns the configured spacing.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

// Last returns when the previous call was permitted. Zero before the first call.
func (g *Gate) Last() time.Time {
	return g.last
}

// Wait blocks until the next call is permitted and returns how long it
// waited. A cancelled context aborts the wait and releases the reservation.
func (g *Gate) Wait(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := g.now()
	r := g.limiter.ReserveN(now, 1)
	if !r.OK() {
		return 0, eris.New("gate: reservation exceeds burst")
	}

	delay := r.DelayFrom(now)
	if delay > 0 {
		zap.L().Info("waiting for request interval",
			zap.Duration("wait", delay),
			zap.Duration("interval", g.interval),
		)
		if err := g.sleep(ctx, delay); err != nil {
			r.CancelAt(g.now())
			return 0, err
		}
	}

	g.last = now.Add(delay)
	return delay, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
