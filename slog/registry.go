package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/jurisref"
)

// Ensure LoggingRegistry implements jurisref.AdapterRegistry.
var _ jurisref.AdapterRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps an AdapterRegistry with logging for adapter
// selection. Selected adapters are wrapped in LoggingAdapter.
type LoggingRegistry struct {
	next   jurisref.AdapterRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next jurisref.AdapterRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Match delegates to the wrapped registry.
func (r *LoggingRegistry) Match(url string) jurisref.Site {
	return r.next.Match(url)
}

// Select logs which site matched the page and returns the wrapped adapter.
func (r *LoggingRegistry) Select(page *jurisref.Page) jurisref.Adapter {
	begin := time.Now()
	a := r.next.Select(page)

	url := ""
	if page != nil {
		url = page.URL
	}
	if a == nil {
		r.logger.Info("adapter selection",
			"url", url,
			"site", "(none)",
			"duration", time.Since(begin),
		)
		return nil
	}
	r.logger.Info("adapter selection",
		"url", url,
		"site", string(a.Site()),
		"duration", time.Since(begin),
	)
	return NewLoggingAdapter(a, r.logger)
}
