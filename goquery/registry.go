package goquery

import (
	"log/slog"
	"net/url"
	"regexp"

	"github.com/fwojciec/jurisref"
)

var _ jurisref.AdapterRegistry = (*Registry)(nil)

// rule binds a site to the host and paths its adapter handles.
type rule struct {
	site jurisref.Site
	host string
	path *regexp.Regexp
}

// rules are tried in order; the first match wins.
var rules = []rule{
	{
		site: jurisref.SiteLegifrance,
		host: LegifranceHost,
		path: regexp.MustCompile(`^/(?:(?:ceta|juri|constit|jufi)/id/|search/)`),
	},
	{
		site: jurisref.SiteCuria,
		host: CuriaHost,
		path: regexp.MustCompile(`/(?:liste|document/document)\.jsf$`),
	},
}

// Registry selects the site adapter for a page from its URL. Pages on
// unsupported sites get no adapter.
type Registry struct {
	fetcher    jurisref.Fetcher
	converters map[jurisref.Site]jurisref.Converter
	logger     *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithConverter makes every adapter use c for note text instead of its
// site reflower.
func WithConverter(c jurisref.Converter) RegistryOption {
	return func(r *Registry) {
		for _, rl := range rules {
			r.converters[rl.site] = c
		}
	}
}

// WithLogger sets the logger handed to adapters.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a Registry whose adapters reach linked documents
// through fetcher.
func NewRegistry(fetcher jurisref.Fetcher, opts ...RegistryOption) *Registry {
	r := &Registry{
		fetcher:    fetcher,
		converters: make(map[jurisref.Site]jurisref.Converter),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Match returns the site whose rule matches rawURL, or jurisref.SiteUnknown.
func (r *Registry) Match(rawURL string) jurisref.Site {
	u, err := url.Parse(rawURL)
	if err != nil {
		return jurisref.SiteUnknown
	}
	for _, rl := range rules {
		if hostHasSuffix(u.Hostname(), rl.host) && rl.path.MatchString(u.Path) {
			return rl.site
		}
	}
	return jurisref.SiteUnknown
}

// Select returns a fresh adapter bound to page, or nil when no rule matches.
func (r *Registry) Select(page *jurisref.Page) jurisref.Adapter {
	if page == nil {
		return nil
	}
	switch r.Match(page.URL) {
	case jurisref.SiteLegifrance:
		return NewLegifranceAdapter(page, r.fetcher, r.converters[jurisref.SiteLegifrance], r.logger)
	case jurisref.SiteCuria:
		return NewCuriaAdapter(page, r.fetcher, r.converters[jurisref.SiteCuria], r.logger)
	}
	return nil
}
