package iostats

import (
	"context"
	"log/slog"
	"time"
)

// retryPolicy bounds transient-failure retries on read queries.
// Attempts run back to back with exponential backoff; the last failure
// propagates once attempts are exhausted.
type retryPolicy struct {
	attempts  int
	baseDelay time.Duration
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{attempts: 3, baseDelay: 500 * time.Millisecond}
}

// do runs op up to p.attempts times, sleeping baseDelay, then twice
// that, between attempts. Cancellation of ctx stops waiting immediately.
func (p retryPolicy) do(
	ctx context.Context,
	name string,
	op func() error,
) error {
	var err error
	delay := p.baseDelay
	for attempt := 1; attempt <= p.attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if attempt == p.attempts {
			break
		}

		slog.Warn("Store query failed, retrying",
			"query", name,
			"attempt", attempt,
			"wait", delay,
			"error", err,
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}

	slog.Error("Store query failed after all attempts",
		"query", name,
		"attempts", p.attempts,
		"error", err,
	)
	return QueryError(name, p.attempts, err)
}
