package mock

import (
	"context"
	"time"

	"github.com/fwojciec/jurisref"
)

var (
	_ jurisref.Clipboard          = (*Clipboard)(nil)
	_ jurisref.Notifier           = (*Notifier)(nil)
	_ jurisref.Importer           = (*Importer)(nil)
	_ jurisref.NavigationObserver = (*NavigationObserver)(nil)
)

// Clipboard is a mock implementation of jurisref.Clipboard.
type Clipboard struct {
	CopyFn func(ctx context.Context, text string) bool
}

func (c *Clipboard) Copy(ctx context.Context, text string) bool {
	return c.CopyFn(ctx, text)
}

// Notifier is a mock implementation of jurisref.Notifier.
type Notifier struct {
	SuccessFn func(message string, d time.Duration)
	ErrorFn   func(message string, d time.Duration)
	WarningFn func(message string, d time.Duration)
	InfoFn    func(message string, d time.Duration)
}

func (n *Notifier) Success(message string, d time.Duration) {
	n.SuccessFn(message, d)
}

func (n *Notifier) Error(message string, d time.Duration) {
	n.ErrorFn(message, d)
}

func (n *Notifier) Warning(message string, d time.Duration) {
	n.WarningFn(message, d)
}

func (n *Notifier) Info(message string, d time.Duration) {
	n.InfoFn(message, d)
}

// Importer is a mock implementation of jurisref.Importer.
type Importer struct {
	ImportWithConfirmationFn func(ctx context.Context, record jurisref.Record) jurisref.ImportResult
}

func (i *Importer) ImportWithConfirmation(ctx context.Context, record jurisref.Record) jurisref.ImportResult {
	return i.ImportWithConfirmationFn(ctx, record)
}

// NavigationObserver is a mock implementation of jurisref.NavigationObserver.
type NavigationObserver struct {
	ChangesFn func(ctx context.Context) <-chan *jurisref.Page
}

func (o *NavigationObserver) Changes(ctx context.Context) <-chan *jurisref.Page {
	return o.ChangesFn(ctx)
}
