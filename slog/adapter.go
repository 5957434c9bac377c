package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jurisref"
)

// Ensure LoggingAdapter implements jurisref.Adapter.
var _ jurisref.Adapter = (*LoggingAdapter)(nil)

// LoggingAdapter wraps an Adapter with debug logging of each extraction.
type LoggingAdapter struct {
	next   jurisref.Adapter
	logger *slog.Logger
}

// NewLoggingAdapter creates a new LoggingAdapter.
func NewLoggingAdapter(next jurisref.Adapter, logger *slog.Logger) *LoggingAdapter {
	return &LoggingAdapter{next: next, logger: logger.With("site", string(next.Site()))}
}

// Site delegates to the wrapped adapter.
func (a *LoggingAdapter) Site() jurisref.Site {
	return a.next.Site()
}

// CheckCompatibility logs the result of the wrapped check.
func (a *LoggingAdapter) CheckCompatibility() bool {
	ok := a.next.CheckCompatibility()
	a.logger.Debug("compatibility", "compatible", ok)
	return ok
}

// ExtractMetadata logs which identifying fields were found.
func (a *LoggingAdapter) ExtractMetadata(ctx context.Context) (m *jurisref.CaseMetadata, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if m != nil {
			attrs = append(attrs, "court", m.Court, "date", m.Date, "number", m.DecisionNumber)
		}
		a.logger.Debug("extract metadata", attrs...)
	}(time.Now())
	return a.next.ExtractMetadata(ctx)
}

// ExtractDecisionText logs the length of the decision text.
func (a *LoggingAdapter) ExtractDecisionText(ctx context.Context) (text string, err error) {
	defer a.logText("extract decision", time.Now(), &text, &err)
	return a.next.ExtractDecisionText(ctx)
}

// ExtractAnalysis logs the length of the analysis.
func (a *LoggingAdapter) ExtractAnalysis(ctx context.Context) (text string, err error) {
	defer a.logText("extract analysis", time.Now(), &text, &err)
	return a.next.ExtractAnalysis(ctx)
}

// ExtractOpinion logs the length of the opinion.
func (a *LoggingAdapter) ExtractOpinion(ctx context.Context) (text string, err error) {
	defer a.logText("extract opinion", time.Now(), &text, &err)
	return a.next.ExtractOpinion(ctx)
}

// RecordOptions delegates to the wrapped adapter.
func (a *LoggingAdapter) RecordOptions() jurisref.RecordOptions {
	return a.next.RecordOptions()
}

func (a *LoggingAdapter) logText(msg string, begin time.Time, text *string, err *error) {
	a.logger.Debug(msg,
		"chars", len([]rune(*text)),
		"duration", time.Since(begin),
		"err", *err,
	)
}
