// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package retry re-invokes fallible operations with exponential backoff.

# Policy

	p := retry.DefaultPolicy() // 3 retries, 500ms base delay
	receipt, err := retry.WithBackoff(ctx, p, func(ctx context.Context) (Receipt, error) {
		return client.Submit(ctx, payload)
	})

The operation runs at most MaxRetries+1 times. The wait before attempt n+2 is
BaseDelay * 2^n: 500ms, 1s, 2s with the defaults. There is no jitter and no
upper bound on the delay.

# Classification

Errors that implement StatusCoder and report a status in [400, 500) are
client rejections and are returned after the first attempt. Everything else
(network errors, timeouts, 5xx, errors without a status) is retried.

When the budget runs out the last error returned by the operation is returned
unchanged, so callers can inspect the real cause with errors.As.
*/
package retry
