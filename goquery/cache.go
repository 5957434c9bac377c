package goquery

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jurisref"
)

type cacheEntry struct {
	doc *goquery.Document
	err error
}

// documentCache fetches linked document pages at most once per URL.
// Failures are remembered as well, so a broken link is not retried within the
// lifetime of an adapter.
type documentCache struct {
	fetcher jurisref.Fetcher
	logger  *slog.Logger
	entries map[string]cacheEntry
}

func newDocumentCache(fetcher jurisref.Fetcher, logger *slog.Logger) *documentCache {
	return &documentCache{
		fetcher: fetcher,
		logger:  logger,
		entries: make(map[string]cacheEntry),
	}
}

// get returns the parsed document at url.
func (c *documentCache) get(ctx context.Context, url string) (*goquery.Document, error) {
	if e, ok := c.entries[url]; ok {
		return e.doc, e.err
	}

	doc, err := c.fetch(ctx, url)
	if err != nil {
		c.logger.Warn("linked document unavailable", "url", url, "error", err)
	}
	c.entries[url] = cacheEntry{doc: doc, err: err}
	return doc, err
}

func (c *documentCache) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if c.fetcher == nil {
		return nil, jurisref.Errorf(jurisref.EUNAVAILABLE, "no fetcher configured")
	}
	html, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, jurisref.Errorf(jurisref.EINVALID, "failed to parse %s: %v", url, err)
	}
	return doc, nil
}
