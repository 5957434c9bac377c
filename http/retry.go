package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jurisref"
)

// Ensure RetryFetcher implements jurisref.Fetcher at compile time.
var _ jurisref.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher retries transient failures of the wrapped fetcher with
// backoff. Missing pages and invalid URLs fail at once. It wraps the fetch of the page a user asks for, never the linked
// documents an adapter fetches during extraction.
type RetryFetcher struct {
	next   jurisref.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryFetcher creates a RetryFetcher waiting delays[i] before retry i+1.
// A nil logger discards retry messages.
func NewRetryFetcher(next jurisref.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch attempts the URL up to len(delays)+1 times.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(ctx, err) || attempt >= maxAttempts-1 {
			break
		}

		f.logger.Info("retry", "url", url, "attempt", attempt+2, "err", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close closes the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch jurisref.ErrorCode(err) {
	case jurisref.ENOTFOUND, jurisref.EINVALID:
		return false
	}
	return true
}
