package pipeline

import (
	"context"

	"golang.org/x/time/rate"
)

type dispatcher interface {
	Wait(ctx context.Context) error
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

// newTokenBucketDispatcher paces module dispatch. A non-positive rate
// disables pacing.
func newTokenBucketDispatcher(ratePerSecond float64, burst int) dispatcher {
	if ratePerSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (l *limiterAdapter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
