package apiclient

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/palm-beach-resort/internal/logging"
)

// RetryPolicy is an exponential backoff: Attempts tries, waiting
// BaseDelay, 2*BaseDelay, ... capped at MaxDelay between them.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetryPolicy is used for the room availability lookup.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, BaseDelay: 500 * time.Millisecond, MaxDelay: 4 * time.Second}

// Delay returns the wait after the given failed attempt (1-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return d
}

// retryable is true for transport failures and 5xx answers.
func retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, ErrUnavailable)
}

// withRetry runs fn until it succeeds, fails with a non-retryable error,
// runs out of attempts or ctx ends.
func withRetry(ctx context.Context, p RetryPolicy, op string, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); !retryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}
		wait := p.Delay(attempt)
		logging.FromContext(ctx).Debug().Err(err).Str("op", op).Int("attempt", attempt).Dur("wait", wait).Msg("retrying")
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return err
}
