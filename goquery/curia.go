package goquery

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jurisref"
	"github.com/fwojciec/jurisref/normalize"
)

// Ensure CuriaAdapter implements jurisref.Adapter at compile time.
var _ jurisref.Adapter = (*CuriaAdapter)(nil)

// CuriaHost is the host suffix of Curia pages.
const CuriaHost = "curia.europa.eu"

// Curia selectors.
const (
	curiaCaseTitle     = ".affaire_title"
	curiaDecisionTitle = ".decision_title"
	curiaECLI          = ".outputEcliAff"
	curiaDocumentLink  = "a[href*='document.jsf']"
	curiaDocumentLabel = ".liste_table_cell_doc"
	curiaEURLexLink    = "a[href*='eur-lex.europa.eu']"
	curiaContent       = "#document_content"
)

// headerLength bounds the part of a document searched for identifiers, so
// that cases cited in the reasoning are not mistaken for the case itself.
const headerLength = 1500

var (
	curiaListPathRe     = regexp.MustCompile(`/liste\.jsf$`)
	curiaDocumentPathRe = regexp.MustCompile(`/document/document\.jsf$`)
	curiaTypeRe         = regexp.MustCompile(`^(Arrêt|Conclusions|Ordonnance)`)
	curiaHeadingRe      = regexp.MustCompile(`\b(arret|conclusions|ordonnance)\b`)
	curiaDeliveredRe    = regexp.MustCompile(`\bpresentees\s+le\s+((?:1er|\d{1,2})\s+\p{L}+\s+\d{4})`)
	curiaPartiesRe      = regexp.MustCompile(`\baffaires?\b|\b[ctf]\s?[-\x{2010}-\x{2015}]\s?\d+/\d{2}\b`)
)

var curiaDocumentTypes = map[string]jurisref.DocumentType{
	"arret":       jurisref.DocumentJudgment,
	"conclusions": jurisref.DocumentOpinion,
	"ordonnance":  jurisref.DocumentOrder,
}

// CuriaAdapter extracts Court of Justice of the European Union decisions from
// Curia. Case list pages carry the metadata and link to document pages, which
// are fetched for the decision and opinion texts. Document pages are read
// directly.
type CuriaAdapter struct {
	base
}

// NewCuriaAdapter creates an adapter bound to page. The fetcher reaches
// document pages linked from case lists and may be nil when only document
// pages are read.
func NewCuriaAdapter(page *jurisref.Page, fetcher jurisref.Fetcher, converter jurisref.Converter, logger *slog.Logger) *CuriaAdapter {
	if converter == nil {
		converter = NewCuriaReflower()
	}
	a := &CuriaAdapter{base: newBase(page, fetcher, converter, logger)}
	if a.url != nil {
		switch {
		case curiaListPathRe.MatchString(a.url.Path):
			a.shape = shapeList
		case curiaDocumentPathRe.MatchString(a.url.Path):
			a.shape = shapeDocument
		}
	}
	a.logger.Debug("page shape", "site", "curia", "shape", a.shape)
	return a
}

// Site returns jurisref.SiteCuria.
func (a *CuriaAdapter) Site() jurisref.Site {
	return jurisref.SiteCuria
}

// CheckCompatibility reports whether the page is a Curia case list showing a
// case or a Curia document page.
func (a *CuriaAdapter) CheckCompatibility() bool {
	if !a.hostMatches(CuriaHost) {
		return false
	}
	switch a.shape {
	case shapeList:
		return a.has(curiaCaseTitle) || a.has(curiaECLI)
	case shapeDocument:
		return a.has(curiaContent)
	}
	return false
}

// ExtractMetadata reads the case metadata.
func (a *CuriaAdapter) ExtractMetadata(_ context.Context) (*jurisref.CaseMetadata, error) {
	if a.metadata != nil {
		return a.metadata, nil
	}
	if !a.readable() {
		return nil, nil
	}

	switch a.shape {
	case shapeDocument:
		a.metadata = a.documentMetadata()
	default:
		a.metadata = a.listMetadata()
	}
	return a.metadata, nil
}

// ExtractDecisionText returns the judgment or order text.
func (a *CuriaAdapter) ExtractDecisionText(ctx context.Context) (string, error) {
	m, err := a.ExtractMetadata(ctx)
	if m == nil || err != nil {
		return "", err
	}
	if a.shape == shapeDocument {
		if m.DocumentType == jurisref.DocumentOpinion {
			return "", nil
		}
		return a.convert(a.doc.Find(curiaContent).First())
	}

	link := m.Link(jurisref.DocumentJudgment)
	if link == "" {
		link = m.Link(jurisref.DocumentOrder)
	}
	return a.linkedText(ctx, link)
}

// ExtractAnalysis returns an empty string: Curia publishes no analysis.
func (a *CuriaAdapter) ExtractAnalysis(_ context.Context) (string, error) {
	return "", nil
}

// ExtractOpinion returns the advocate general's opinion text.
func (a *CuriaAdapter) ExtractOpinion(ctx context.Context) (string, error) {
	m, err := a.ExtractMetadata(ctx)
	if m == nil || err != nil {
		return "", err
	}
	if a.shape == shapeDocument {
		if m.DocumentType != jurisref.DocumentOpinion {
			return "", nil
		}
		return a.convert(a.doc.Find(curiaContent).First())
	}
	return a.linkedText(ctx, m.Link(jurisref.DocumentOpinion))
}

// RecordOptions returns the Curia citation policy: the title is filled from
// the case name, dates are canonical, the EUR-Lex address is preferred and
// notes carry the address of their document.
func (a *CuriaAdapter) RecordOptions() jurisref.RecordOptions {
	return jurisref.RecordOptions{
		FillTitle:        true,
		CanonicalDate:    true,
		PreferDerivedURL: true,
		NoteSourceURLs:   true,
		ExtraRequired:    []string{jurisref.FieldCaseNumber},
	}
}

func (a *CuriaAdapter) linkedText(ctx context.Context, link string) (string, error) {
	doc := a.linked(ctx, link)
	if doc == nil {
		return "", nil
	}
	return a.convert(doc.Find(curiaContent).First())
}

// listMetadata reads a case list page. The case title reads
// "C-278/22 - NAME" and the decision title "Arrêt du 21/12/2023".
func (a *CuriaAdapter) listMetadata() *jurisref.CaseMetadata {
	m := &jurisref.CaseMetadata{
		Site:      jurisref.SiteCuria,
		SourceURL: a.page.URL,
	}

	if title := text(a.doc.Find(curiaCaseTitle)); title != "" {
		m.FullTitle = title
		if parts := strings.Split(title, " - "); len(parts) >= 2 {
			m.CaseNumber = strings.ReplaceAll(strings.TrimSpace(parts[0]), "\u2011", "-")
			m.CaseName = strings.TrimSpace(strings.Join(parts[1:], " - "))
		}
		if m.JoinedCases = normalize.JoinedCases(title); m.JoinedCases != nil {
			m.CaseNumber = m.JoinedCases[0]
		}
	}

	if decision := text(a.doc.Find(curiaDecisionTitle)); decision != "" {
		if t := curiaTypeRe.FindStringSubmatch(decision); t != nil {
			m.DocumentType = curiaDocumentTypes[normalize.Fold(t[1])]
		}
		applyDate(m, decision, a.logger)
	}

	if ecli := text(a.doc.Find(curiaECLI)); ecli != "" {
		if found := normalize.FindECLI(ecli); found != "" {
			ecli = found
		}
		m.ECLI = ecli
	}

	a.doc.Find(curiaDocumentLink).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		label := normalize.Fold(text(link.Closest("tr").Find(curiaDocumentLabel)))
		var t jurisref.DocumentType
		switch {
		case strings.Contains(label, "arret"):
			t = jurisref.DocumentJudgment
		case strings.Contains(label, "conclusions"):
			t = jurisref.DocumentOpinion
		case strings.Contains(label, "ordonnance"):
			t = jurisref.DocumentOrder
		default:
			return
		}
		if m.DocumentLinks == nil {
			m.DocumentLinks = make(map[jurisref.DocumentType]string)
		}
		if _, ok := m.DocumentLinks[t]; !ok {
			m.DocumentLinks[t] = a.resolve(href)
		}
	})

	m.DerivedURL = a.scrapedEURLexURL()
	completeCuria(m)
	return m
}

// documentMetadata reads the header of a document page.
func (a *CuriaAdapter) documentMetadata() *jurisref.CaseMetadata {
	m := &jurisref.CaseMetadata{
		Site:      jurisref.SiteCuria,
		SourceURL: a.page.URL,
	}

	full := blockText(a.doc.Find(curiaContent))
	head := header(full)
	if t := curiaHeadingRe.FindStringSubmatch(normalize.Fold(head)); t != nil {
		m.DocumentType = curiaDocumentTypes[t[1]]
	}
	applyDate(m, documentDate(head, m.DocumentType), a.logger)
	if numbers := normalize.FindCaseNumbers(head); len(numbers) > 0 {
		m.CaseNumber = numbers[0]
		m.JoinedCases = normalize.JoinedCases(head)
	}
	if m.ECLI = normalize.FindECLI(head); m.ECLI == "" {
		m.ECLI = normalize.FindECLI(full)
	}
	if m.DocumentType != jurisref.DocumentUnknown {
		m.DocumentLinks = map[jurisref.DocumentType]string{m.DocumentType: a.page.URL}
	}

	completeCuria(m)
	return m
}

// documentDate returns the header text holding the document's own date.
// Opinions carry it on the "présentées le" line. Judgments and orders
// print it alone between the heading and the case line; dates after that
// line belong to the referral or to cited acts and are never used.
func documentDate(head string, t jurisref.DocumentType) string {
	folded := normalize.Fold(head)
	if t == jurisref.DocumentOpinion {
		if d := curiaDeliveredRe.FindStringSubmatch(folded); d != nil {
			return d[1]
		}
	}

	start := 0
	if loc := curiaHeadingRe.FindStringIndex(folded); loc != nil {
		start = loc[1]
	}
	preamble := folded[start:]
	if loc := curiaPartiesRe.FindStringIndex(preamble); loc != nil {
		preamble = preamble[:loc[0]]
	}
	return preamble
}

// scrapedEURLexURL returns the first EUR-Lex link on the page that points at
// a judgment or order rather than an opinion.
func (a *CuriaAdapter) scrapedEURLexURL() string {
	var found string
	a.doc.Find(curiaEURLexLink).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		celex, ok := normalize.CELEXFromURL(href)
		if !ok || strings.HasSuffix(celex[:7], "C") {
			return true
		}
		found = a.resolve(href)
		return false
	})
	return found
}

// completeCuria fills the fields derived from the case number.
func completeCuria(m *jurisref.CaseMetadata) {
	if m.CaseNumber == "" {
		return
	}
	m.Court = normalize.CourtFromCaseNumber(m.CaseNumber)
	m.CourtRaw = m.Court
	m.DecisionNumber = "aff. " + m.CaseNumber
	m.Jurisdiction = normalize.JurisdictionFromCaseNumber(m.CaseNumber)

	if m.DerivedURL != "" {
		return
	}
	docType := m.DocumentType
	if docType != jurisref.DocumentOrder {
		docType = jurisref.DocumentJudgment
	}
	if u, ok := normalize.DeriveEURLexURL(m.CaseNumber, m.Year, docType); ok {
		m.DerivedURL = u
	}
}

// header returns the leading part of a document's text.
func header(s string) string {
	r := []rune(s)
	if len(r) <= headerLength {
		return s
	}
	return string(r[:headerLength])
}
