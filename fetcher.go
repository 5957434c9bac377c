package jurisref

import "context"

// Fetcher retrieves HTML from URLs.
// Adapters use it to bridge from a list page to a linked document page.
type Fetcher interface {
	// Fetch retrieves the URL and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
