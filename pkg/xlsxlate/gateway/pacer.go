package gateway

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between capability calls.
const DefaultInterval = 400 * time.Millisecond

// Pacer blocks until the next capability call may start.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer admits one call per interval. Spacing is measured from the
// start of one call to the start of the next, and the first call is admitted
// immediately. It is safe for concurrent use, so several workers may share
// one instance.
type IntervalPacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a pacer admitting one call per interval.
// A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *IntervalPacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &IntervalPacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until a call is admitted or ctx is done.
func (p *IntervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
