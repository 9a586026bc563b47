package fetcher

import (
	"context"
	"log/slog"
	"math/rand"
	"time"
)

// Fetcher retrieves the raw markup of a page.
type Fetcher interface {
	// Fetch retrieves the content at the given URL. A non-200 status is an
	// error; the caller decides whether to retry.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}

// FetchPage runs a fetch with bounded retry: a fixed (non-exponential) sleep
// between attempts, and after maxAttempts failures an explicit nil result
// instead of an error. A down source degrades to zero headlines rather than
// aborting the run.
func FetchPage(ctx context.Context, f Fetcher, url string, maxAttempts int, delay time.Duration, logger *slog.Logger) []byte {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, err := f.Fetch(ctx, url)
		if err == nil {
			return body
		}

		if attempt < maxAttempts {
			logger.Warn("fetch failed, retrying",
				"url", url,
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"error", err,
			)
			select {
			case <-ctx.Done():
				logger.Warn("fetch canceled", "url", url, "error", ctx.Err())
				return nil
			case <-time.After(delay):
			}
			continue
		}

		logger.Error("fetch failed after all attempts",
			"url", url,
			"attempts", maxAttempts,
			"error", err,
		)
	}
	return nil
}

// RandomDelay returns a random delay around the base duration (±25%).
// Used for the cooldown between source fetches.
func RandomDelay(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	jitter := float64(base) * 0.25
	return base + time.Duration(rand.Float64()*2*jitter-jitter)
}
