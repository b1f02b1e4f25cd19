package mercari

import (
	"context"
	"math/rand/v2"
	"time"
)

// Delayer decides how long the driver pauses. Settle runs after a
// successful navigation so client-rendered content can appear; Pace runs
// after every page to bound the request rate.
type Delayer interface {
	Settle(ctx context.Context) error
	Pace(ctx context.Context) error
}

// JitterDelayer sleeps for a uniformly random duration in each range.
type JitterDelayer struct {
	SettleMin, SettleMax time.Duration
	PaceMin, PaceMax     time.Duration
}

// DefaultJitter is the production pacing policy.
func DefaultJitter() *JitterDelayer {
	return &JitterDelayer{
		SettleMin: 2 * time.Second,
		SettleMax: 4 * time.Second,
		PaceMin:   1 * time.Second,
		PaceMax:   2 * time.Second,
	}
}

func (j *JitterDelayer) Settle(ctx context.Context) error {
	return sleep(ctx, jitter(j.SettleMin, j.SettleMax))
}

func (j *JitterDelayer) Pace(ctx context.Context) error {
	return sleep(ctx, jitter(j.PaceMin, j.PaceMax))
}

func jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + rand.N(max-min)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoDelay never pauses.
type NoDelay struct{}

func (NoDelay) Settle(ctx context.Context) error { return ctx.Err() }
func (NoDelay) Pace(ctx context.Context) error   { return ctx.Err() }
