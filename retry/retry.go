// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package retry

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 500 * time.Millisecond
)

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	HTTPStatus() int
}

// Policy describes how an operation is retried.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BaseDelay is the wait before the second attempt; it doubles after that.
	BaseDelay time.Duration
	// OnRetry is called before each backoff wait. attempt is 1-based.
	OnRetry func(attempt int, delay time.Duration, err error)
	// Sleep waits for d or until ctx is done. Nil means a real timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
	}
}

// IsRetryable reports whether err may succeed on another attempt.
// Errors carrying a 4xx status are never retried.
func IsRetryable(err error) bool {
	var sc StatusCoder
	if errors.As(err, &sc) {
		code := sc.HTTPStatus()
		if code >= 400 && code < 500 {
			return false
		}
	}
	return true
}

// Delay returns the wait before attempt attemptIndex+2. It saturates at the
// largest time.Duration instead of overflowing.
func (p Policy) Delay(attemptIndex int) time.Duration {
	if p.BaseDelay <= 0 || attemptIndex <= 0 {
		return max(p.BaseDelay, 0)
	}
	if attemptIndex >= 63 || p.BaseDelay > time.Duration(math.MaxInt64>>attemptIndex) {
		return time.Duration(math.MaxInt64)
	}
	return p.BaseDelay << attemptIndex
}

// WithBackoff runs op until it succeeds, fails with a non-retryable error or
// the retry budget is spent. The last error from op is returned as is.
func WithBackoff[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T
	maxRetries := max(p.MaxRetries, 0)
	sleep := p.Sleep
	if sleep == nil {
		sleep = wait
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}
		if attempt == maxRetries {
			break
		}

		delay := p.Delay(attempt)
		slog.Warn("operation failed, backing off",
			"attempt", humanize.Ordinal(attempt+1),
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, delay, err)
		}
		if werr := sleep(ctx, delay); werr != nil {
			return zero, errors.Join(lastErr, werr)
		}
	}

	return zero, lastErr
}

// Do is WithBackoff for operations without a result.
func Do(ctx context.Context, p Policy, op func(context.Context) error) error {
	_, err := WithBackoff(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func wait(ctx context.Context, d time.Duration) error {
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
