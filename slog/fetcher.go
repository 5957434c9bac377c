// Package slog provides logging decorators for jurisref services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jurisref"
)

var _ jurisref.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page and linked document it retrieves.
// Successful fetches log at info; failures log at warn with their error code
// so unreachable court sites stand out in verbose output.
type LoggingFetcher struct {
	next   jurisref.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next jurisref.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	begin := time.Now()
	html, err = f.next.Fetch(ctx, url)

	attrs := []any{"url", url, "bytes", len(html), "duration", time.Since(begin)}
	if err != nil {
		f.logger.Warn("fetch failed", append(attrs, "code", jurisref.ErrorCode(err), "err", err)...)
		return html, err
	}
	f.logger.Info("fetch", attrs...)
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
