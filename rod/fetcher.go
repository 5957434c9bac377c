// Package rod provides a browser-backed jurisref.Fetcher for decision pages
// whose content is rendered by JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/jurisref"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultPageTimeout bounds a single page load.
const DefaultPageTimeout = 10 * time.Second

var _ jurisref.Fetcher = (*Fetcher)(nil)

// Fetcher loads pages in a headless Chrome and returns the DOM after
// scripts have run. It is safe for concurrent use; each Fetch opens its own
// tab.
type Fetcher struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	timeout   time.Duration
	userAgent string

	once   sync.Once
	closed atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each page load. Defaults to DefaultPageTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent for every tab.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher launches the browser. Close must be called to stop it.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultPageTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser, f.launcher = b, l
	return f, nil
}

// Fetch opens url in a new tab, waits for the load event and returns the
// serialized DOM. Context errors are returned wrapped; other navigation
// failures are EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", jurisref.Errorf(jurisref.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	tab, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening tab: %w", err)
	}
	defer tab.Close()
	tab = tab.Context(ctx)

	if f.userAgent != "" {
		if err := tab.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", fail(ctx, url, err)
		}
	}
	if err := tab.Navigate(url); err != nil {
		return "", fail(ctx, url, err)
	}
	if err := tab.WaitLoad(); err != nil {
		return "", fail(ctx, url, err)
	}

	html, err := tab.HTML()
	if err != nil {
		return "", fail(ctx, url, err)
	}
	return html, nil
}

func fail(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("loading %s: %w", url, ctxErr)
	}
	return jurisref.Errorf(jurisref.EUNAVAILABLE, "could not load %s: %v", url, err)
}

// LauncherPID returns the browser's process ID, or 0 if none was launched.
func (f *Fetcher) LauncherPID() int {
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

// Close stops the browser. Later calls are no-ops.
func (f *Fetcher) Close() error {
	var err error
	f.once.Do(func() {
		f.closed.Store(true)
		err = f.browser.Close()
		f.launcher.Kill()
		f.launcher.Cleanup()
	})
	return err
}
