package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/jurisref"
	"golang.org/x/net/html"
)

// Ensure Reflower implements jurisref.Converter at compile time.
var _ jurisref.Converter = (*Reflower)(nil)

// ReflowKind says how an element contributes to the reflowed text.
type ReflowKind int

// Reflow kinds. Elements matched by no rule are inline.
const (
	ReflowInline ReflowKind = iota
	ReflowSkip
	ReflowLine
	ReflowParagraph
	ReflowCell
)

// ReflowRule maps a CSS selector to a reflow kind. Rules are tried in order;
// the first selector matching an element decides its kind.
type ReflowRule struct {
	Selector string
	Kind     ReflowKind
}

// Marker inserts breaks around a structural pattern after reflowing.
// Replacement follows regexp.Expand syntax.
type Marker struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// defaultRules apply after site rules.
var defaultRules = []ReflowRule{
	{Selector: "head, script, style, noscript, template, iframe, svg", Kind: ReflowSkip},
	{Selector: "br, tr", Kind: ReflowLine},
	{Selector: "td, th", Kind: ReflowCell},
	{Selector: "p, div, section, article, header, footer, blockquote, pre, ul, ol, li, dl, dt, dd, table, h1, h2, h3, h4, h5, h6", Kind: ReflowParagraph},
}

// LegifranceRules reflow Légifrance decision markup.
var LegifranceRules = []ReflowRule{
	{Selector: "button, .visually-hidden, .sr-only, .js-hidden, .print-hidden", Kind: ReflowSkip},
	{Selector: "a, em, i, strong, b, span, sup, sub", Kind: ReflowInline},
}

// LegifranceMarkers separate recitals, articles and operative parts.
var LegifranceMarkers = []Marker{
	{Pattern: regexp.MustCompile(`;[ ]*\n`), Replacement: ";\n\n"},
	{Pattern: regexp.MustCompile(`:[ ]*\n`), Replacement: ":\n\n"},
	{Pattern: regexp.MustCompile(`Considérant`), Replacement: "\n\n$0"},
	{Pattern: regexp.MustCompile(`Article \d+`), Replacement: "\n\n$0"},
	{Pattern: regexp.MustCompile(`DECIDE|DÉCIDE`), Replacement: "\n\n$0"},
	{Pattern: regexp.MustCompile(`PAR CES MOTIFS`), Replacement: "\n\n$0"},
}

// CuriaRules reflow Curia document markup. Numbered paragraphs are laid out
// as table rows whose first cell holds the number.
var CuriaRules = []ReflowRule{
	{Selector: "button, .coj-note-tag, a[href^='#'] > sup", Kind: ReflowSkip},
	{Selector: "td.coj-count, td.count", Kind: ReflowCell},
	{Selector: "td > p, td > div", Kind: ReflowInline},
}

// CuriaMarkers separate the headings of an EU court decision.
var CuriaMarkers = []Marker{
	{Pattern: regexp.MustCompile(`Le cadre juridique`), Replacement: "\n\n$0"},
	{Pattern: regexp.MustCompile(`Le litige au principal`), Replacement: "\n\n$0"},
	{Pattern: regexp.MustCompile(`Sur (?:la|les) questions? préjudicielles?`), Replacement: "\n\n$0"},
	{Pattern: regexp.MustCompile(`Sur les dépens`), Replacement: "\n\n$0"},
	{Pattern: regexp.MustCompile(`Par ces motifs`), Replacement: "\n\n$0"},
}

var (
	textSpaceRe       = regexp.MustCompile(`[\s\p{Zs}]+`)
	horizontalSpaceRe = regexp.MustCompile(`[\t\f\r\p{Zs}]+`)
	lineEdgeSpaceRe   = regexp.MustCompile(` *\n *`)
	blankLinesRe      = regexp.MustCompile(`\n{3,}`)
)

type compiledRule struct {
	sel  cascadia.Selector
	kind ReflowKind
}

// Reflower converts decision markup into readable plain text. It walks the
// parsed document once, letting the first matching rule decide how each
// element breaks the text, then inserts paragraph breaks before structural
// markers.
type Reflower struct {
	rules   []compiledRule
	markers []Marker
}

// NewReflower compiles the rules, followed by the default block rules.
func NewReflower(rules []ReflowRule, markers []Marker) (*Reflower, error) {
	r := &Reflower{markers: markers}
	for _, rule := range append(append([]ReflowRule{}, rules...), defaultRules...) {
		sel, err := cascadia.Compile(rule.Selector)
		if err != nil {
			return nil, jurisref.Errorf(jurisref.EINVALID, "invalid reflow selector %q: %v", rule.Selector, err)
		}
		r.rules = append(r.rules, compiledRule{sel: sel, kind: rule.Kind})
	}
	return r, nil
}

// MustReflower is like NewReflower but panics on an invalid selector.
func MustReflower(rules []ReflowRule, markers []Marker) *Reflower {
	r, err := NewReflower(rules, markers)
	if err != nil {
		panic(err)
	}
	return r
}

// NewLegifranceReflower returns the reflower for Légifrance decisions.
func NewLegifranceReflower() *Reflower {
	return MustReflower(LegifranceRules, LegifranceMarkers)
}

// NewCuriaReflower returns the reflower for Curia documents.
func NewCuriaReflower() *Reflower {
	return MustReflower(CuriaRules, CuriaMarkers)
}

// Convert reflows an HTML fragment into plain text.
func (r *Reflower) Convert(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", jurisref.Errorf(jurisref.EINVALID, "failed to parse HTML: %v", err)
	}
	return r.ConvertSelection(doc.Selection), nil
}

// ConvertSelection reflows already parsed nodes.
func (r *Reflower) ConvertSelection(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		r.walk(&b, n)
	}

	text := tidy(b.String())
	for _, m := range r.markers {
		text = m.Pattern.ReplaceAllString(text, m.Replacement)
	}
	return tidy(text)
}

func (r *Reflower) walk(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(textSpaceRe.ReplaceAllString(n.Data, " "))
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		switch r.kind(n) {
		case ReflowSkip:
			return
		case ReflowLine:
			r.walkChildren(b, n)
			b.WriteString("\n")
			return
		case ReflowParagraph:
			b.WriteString("\n\n")
			r.walkChildren(b, n)
			b.WriteString("\n\n")
			return
		case ReflowCell:
			b.WriteString(" ")
			r.walkChildren(b, n)
			b.WriteString(" ")
			return
		}
	}
	r.walkChildren(b, n)
}

func (r *Reflower) walkChildren(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(b, c)
	}
}

func (r *Reflower) kind(n *html.Node) ReflowKind {
	for _, rule := range r.rules {
		if rule.sel.Match(n) {
			return rule.kind
		}
	}
	return ReflowInline
}

// tidy collapses runs of whitespace, trims spaces around line breaks and
// keeps at most one blank line between paragraphs.
func tidy(text string) string {
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = lineEdgeSpaceRe.ReplaceAllString(text, "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
