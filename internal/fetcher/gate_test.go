package fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when the gate sleeps or the test calls Advance.
type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestGate(clock *fakeClock) *Gate {
	return NewGate(15*time.Second, WithClock(clock.Now), WithSleep(clock.Sleep))
}

const tolerance = time.Millisecond

func TestGate_FirstCallDoesNotWait(t *testing.T) {
	clock := newFakeClock()
	g := newTestGate(clock)

	assert.True(t, g.Last().IsZero())

	waited, err := g.Wait(context.Background())
	require.NoError(t, err)
	assert.Zero(t, waited)
	assert.Empty(t, clock.slept)
	assert.Equal(t, clock.Now(), g.Last())
}

func TestGate_WaitsRemainderOfInterval(t *testing.T) {
	clock := newFakeClock()
	g := newTestGate(clock)

	_, err := g.Wait(context.Background())
	require.NoError(t, err)
	first := g.Last()

	clock.Advance(5 * time.Second)
	waited, err := g.Wait(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, float64(10*time.Second), float64(waited), float64(tolerance))
	assert.InDelta(t, float64(15*time.Second), float64(g.Last().Sub(first)), float64(tolerance))
}

func TestGate_NoWaitAfterInterval(t *testing.T) {
	clock := newFakeClock()
	g := newTestGate(clock)

	_, err := g.Wait(context.Background())
	require.NoError(t, err)

	clock.Advance(20 * time.Second)
	waited, err := g.Wait(context.Background())
	require.NoError(t, err)
	assert.Zero(t, waited)
}

func TestGate_ConsecutiveCallsAreSpaced(t *testing.T) {
	clock := newFakeClock()
	g := newTestGate(clock)

	gaps := []time.Duration{0, time.Second, 14 * time.Second, 0, 16 * time.Second, 3 * time.Second}
	var prev time.Time
	for i, gap := range gaps {
		clock.Advance(gap)
		_, err := g.Wait(context.Background())
		require.NoError(t, err)
		if i > 0 {
			assert.GreaterOrEqual(t, g.Last().Sub(prev), 15*time.Second-tolerance, "call %d", i)
		}
		prev = g.Last()
	}
}

func TestGate_CancelledContext(t *testing.T) {
	clock := newFakeClock()
	g := newTestGate(clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Wait(ctx)
	require.Error(t, err)
	assert.True(t, g.Last().IsZero())
}

func TestGate_CancelDuringWait(t *testing.T) {
	clock := newFakeClock()
	g := NewGate(15*time.Second,
		WithClock(clock.Now),
		WithSleep(func(ctx context.Context, d time.Duration) error { return context.Canceled }),
	)

	_, err := g.Wait(context.Background())
	require.NoError(t, err)
	first := g.Last()

	_, err = g.Wait(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, first, g.Last())
}

func TestGate_DefaultInterval(t *testing.T) {
	g := NewGate(0)
	assert.Equal(t, DefaultInterval, g.Interval())
	assert.Equal(t, 15*time.Second, DefaultInterval)
}

func TestGate_RealSleep(t *testing.T) {
	g := NewGate(50 * time.Millisecond)

	start := time.Now()
	_, err := g.Wait(context.Background())
	require.NoError(t, err)
	_, err = g.Wait(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}

func TestSleepContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepContext(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
