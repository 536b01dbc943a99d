package service

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
)

// RetryPolicy drives an attempt function until it succeeds, fails with a
// non-retryable error, or runs out of attempts. The delay before attempt n
// (1-based, n > 1) is BaseDelay * 2^(n-2): 2s, 4s, 8s for the defaults.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Retryable   func(error) bool
	Sleep       func(ctx context.Context, d time.Duration) error
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Retryable:   IsRateLimited,
		Sleep:       sleepContext,
	}
}

func (p RetryPolicy) backoff(retry int) time.Duration {
	return p.BaseDelay * time.Duration(1<<retry)
}

// Retry runs attempt under the policy and returns the first success or the
// error that ended the sequence.
func Retry[T any](ctx context.Context, p RetryPolicy, name string, attempt func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			delay := p.backoff(i - 1)
			log.Printf("Retry attempt %d/%d for %s after %v", i+1, maxAttempts, name, delay)
			if err := sleep(ctx, delay); err != nil {
				return zero, fmt.Errorf("context done during retry: %w", err)
			}
		}

		result, err := attempt(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if p.Retryable == nil || !p.Retryable(err) {
			return zero, err
		}
		log.Printf("Retryable error on attempt %d for %s: %v", i+1, name, err)
	}

	return zero, fmt.Errorf("max attempts (%d) exceeded: %w", maxAttempts, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
