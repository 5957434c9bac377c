package goquery

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jurisref"
	"github.com/fwojciec/jurisref/normalize"
)

// shape distinguishes the page layouts a site serves.
type shape int

const (
	shapeUnknown shape = iota
	shapeList
	shapeDocument
)

func (s shape) String() string {
	switch s {
	case shapeList:
		return "list"
	case shapeDocument:
		return "document"
	}
	return "unknown"
}

// base holds the state shared by the site adapters: the parsed page, the
// collaborators used to reach linked documents and the memoized metadata.
type base struct {
	page      *jurisref.Page
	url       *url.URL
	doc       *goquery.Document
	shape     shape
	converter jurisref.Converter
	cache     *documentCache
	logger    *slog.Logger

	metadata *jurisref.CaseMetadata
}

func newBase(page *jurisref.Page, fetcher jurisref.Fetcher, converter jurisref.Converter, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := base{
		page:      page,
		converter: converter,
		cache:     newDocumentCache(fetcher, logger),
		logger:    logger,
	}
	if page == nil {
		return b
	}
	if u, err := url.Parse(page.URL); err == nil {
		b.url = u
	}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML)); err == nil {
		b.doc = doc
	} else {
		logger.Warn("page could not be parsed", "url", page.URL, "error", err)
	}
	return b
}

// readable reports whether the page parsed and its URL is usable.
func (b *base) readable() bool {
	return b.doc != nil && b.url != nil
}

func (b *base) hostMatches(suffix string) bool {
	if b.url == nil {
		return false
	}
	return hostHasSuffix(b.url.Hostname(), suffix)
}

func (b *base) has(selector string) bool {
	return b.doc != nil && b.doc.Find(selector).Length() > 0
}

// resolve makes href absolute against the page URL.
func (b *base) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || b.url == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.url.ResolveReference(ref).String()
}

// convert turns the selection into note text. An empty selection yields an
// empty string.
func (b *base) convert(sel *goquery.Selection) (string, error) {
	if sel.Length() == 0 || strings.TrimSpace(sel.Text()) == "" {
		return "", nil
	}
	var parts []string
	for i := range sel.Nodes {
		h, err := goquery.OuterHtml(sel.Eq(i))
		if err != nil {
			return "", jurisref.Errorf(jurisref.EINTERNAL, "failed to render fragment: %v", err)
		}
		parts = append(parts, h)
	}
	text, err := b.converter.Convert(strings.Join(parts, "\n"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// linked fetches a linked document. Failures yield nil; the cache logs them.
func (b *base) linked(ctx context.Context, link string) *goquery.Document {
	if link == "" {
		return nil
	}
	doc, err := b.cache.get(ctx, link)
	if err != nil {
		return nil
	}
	return doc
}

// plain reflows markup with the default block rules only.
var plain = MustReflower(nil, nil)

// text returns the normalized text of the first matching element.
func text(sel *goquery.Selection) string {
	return normalize.Space(sel.First().Text())
}

// blockText is like text but keeps block elements apart, so that adjacent
// paragraphs do not run together.
func blockText(sel *goquery.Selection) string {
	return normalize.Space(plain.ConvertSelection(sel.First()))
}

func hostHasSuffix(host, suffix string) bool {
	host = strings.ToLower(host)
	return host == suffix || strings.HasSuffix(host, "."+suffix)
}

// applyDate sets the date fields from raw text and logs text that holds no
// recognizable date.
func applyDate(m *jurisref.CaseMetadata, raw string, logger *slog.Logger) {
	if raw == "" {
		return
	}
	d, ok := normalize.ParseDate(raw)
	if !ok {
		logger.Warn("unrecognized date", "site", m.Site, "text", raw)
		return
	}
	m.Date = d.Local()
	m.DateCanonical = d.Canonical()
	m.Year = d.YearString()
}
