package jurisref

import "context"

// Page represents the page a user is currently viewing: its address and its
// rendered markup.
type Page struct {
	URL  string
	HTML string
}

// NavigationObserver signals when the host page's logical location changes.
// The host environment provides it; the core never patches host objects to
// detect navigation itself.
type NavigationObserver interface {
	// Changes returns a channel that receives the new page after every
	// navigation. The channel is closed when ctx is done or the host detaches.
	Changes(ctx context.Context) <-chan *Page
}
