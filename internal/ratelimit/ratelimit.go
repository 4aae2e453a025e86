package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/amishk599/jobfeed/internal/model"
)

var _ model.Notifier = (*PacedNotifier)(nil)

// PacedNotifier is a decorator that enforces a minimum gap between
// consecutive deliveries to the wrapped Notifier. The first delivery is
// never delayed.
type PacedNotifier struct {
	inner   model.Notifier
	limiter *rate.Limiter
}

// NewPacedNotifier wraps inner so deliveries are at least minInterval apart.
// A non-positive minInterval disables pacing.
func NewPacedNotifier(inner model.Notifier, minInterval time.Duration) *PacedNotifier {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &PacedNotifier{
		inner:   inner,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Notify waits for the limiter, then delegates to the wrapped notifier.
// Returns an error if the context is cancelled while waiting.
func (n *PacedNotifier) Notify(ctx context.Context, l model.Listing) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacing delivery: %w", err)
	}
	return n.inner.Notify(ctx, l)
}
