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

// Ensure LegifranceAdapter implements jurisref.Adapter at compile time.
var _ jurisref.Adapter = (*LegifranceAdapter)(nil)

// LegifranceHost is the host suffix of Légifrance pages.
const LegifranceHost = "legifrance.gouv.fr"

var (
	legifranceDocumentPathRe = regexp.MustCompile(`^/(?:ceta|juri|constit|jufi)/id/`)
	legifranceListPathRe     = regexp.MustCompile(`^/search/`)
	publicationMentions      = []string{"recueil", "lebon", "publie", "mentionne", "bulletin"}
)

// Légifrance selectors.
const (
	legifranceSummary      = ".frame-block.print-sommaire"
	legifranceTitle        = ".main-title"
	legifranceCourt        = ".frame-block.print-sommaire h2.title.horsAbstract"
	legifranceDate         = ".frame-block.print-sommaire .h2.title.horsAbstract"
	legifranceInfo         = ".frame-block.print-sommaire ul li"
	legifranceBench        = ".frame-block.print-sommaire dl"
	legifranceContent      = ".content-page"
	legifranceContentTitle = "h2.title"
	legifranceAbstract     = ".frame-block.abstract .js-child.texte"
	legifranceResult       = ".result-item"
	legifranceResultLink   = "a[href*='/id/']"
)

// LegifranceAdapter extracts French court decisions from Légifrance. It reads
// decision pages directly and, on search result pages, follows the first
// result to its decision page for text.
type LegifranceAdapter struct {
	base
}

// NewLegifranceAdapter creates an adapter bound to page. The fetcher reaches
// decision pages linked from search results and may be nil when only
// decision pages are read.
func NewLegifranceAdapter(page *jurisref.Page, fetcher jurisref.Fetcher, converter jurisref.Converter, logger *slog.Logger) *LegifranceAdapter {
	if converter == nil {
		converter = NewLegifranceReflower()
	}
	a := &LegifranceAdapter{base: newBase(page, fetcher, converter, logger)}
	if a.url != nil {
		switch {
		case legifranceDocumentPathRe.MatchString(a.url.Path):
			a.shape = shapeDocument
		case legifranceListPathRe.MatchString(a.url.Path):
			a.shape = shapeList
		}
	}
	a.logger.Debug("page shape", "site", "legifrance", "shape", a.shape)
	return a
}

// Site returns jurisref.SiteLegifrance.
func (a *LegifranceAdapter) Site() jurisref.Site {
	return jurisref.SiteLegifrance
}

// CheckCompatibility reports whether the page is a Légifrance decision or
// search page carrying the expected markup.
func (a *LegifranceAdapter) CheckCompatibility() bool {
	if !a.hostMatches(LegifranceHost) {
		return false
	}
	switch a.shape {
	case shapeDocument:
		return a.has(legifranceTitle) || a.has(legifranceSummary)
	case shapeList:
		return a.has(legifranceResult)
	}
	return false
}

// ExtractMetadata reads the decision's metadata. On a search page it comes
// from the first result row.
func (a *LegifranceAdapter) ExtractMetadata(_ context.Context) (*jurisref.CaseMetadata, error) {
	if a.metadata != nil {
		return a.metadata, nil
	}
	if !a.readable() {
		return nil, nil
	}

	switch a.shape {
	case shapeList:
		a.metadata = a.resultMetadata()
	default:
		a.metadata = legifranceMetadata(a.doc, a.page.URL, a.url.Path, a.logger)
	}
	return a.metadata, nil
}

// ExtractDecisionText returns the decision body without its heading.
func (a *LegifranceAdapter) ExtractDecisionText(ctx context.Context) (string, error) {
	doc, err := a.decisionDocument(ctx)
	if doc == nil || err != nil {
		return "", err
	}
	content := doc.Find(legifranceContent).First().Clone()
	content.Find(legifranceContentTitle).Remove()
	return a.convert(content)
}

// ExtractAnalysis returns the abstract blocks separated by blank lines.
func (a *LegifranceAdapter) ExtractAnalysis(ctx context.Context) (string, error) {
	doc, err := a.decisionDocument(ctx)
	if doc == nil || err != nil {
		return "", err
	}

	var blocks []string
	abstracts := doc.Find(legifranceAbstract)
	for i := range abstracts.Nodes {
		t, err := a.convert(abstracts.Eq(i))
		if err != nil {
			return "", err
		}
		if t != "" {
			blocks = append(blocks, t)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

// ExtractOpinion returns an empty string: Légifrance does not publish
// opinions alongside decisions.
func (a *LegifranceAdapter) ExtractOpinion(_ context.Context) (string, error) {
	return "", nil
}

// RecordOptions returns the Légifrance citation policy: the title is left
// for the user, the date keeps the DD/MM/YYYY form and the decision number is
// required.
func (a *LegifranceAdapter) RecordOptions() jurisref.RecordOptions {
	return jurisref.RecordOptions{
		ExtraRequired: []string{jurisref.FieldDecisionNumber},
	}
}

// decisionDocument returns the document holding the decision text: the page
// itself, or the first search result's decision page.
func (a *LegifranceAdapter) decisionDocument(ctx context.Context) (*goquery.Document, error) {
	if !a.readable() {
		return nil, nil
	}
	if a.shape != shapeList {
		return a.doc, nil
	}
	m, err := a.ExtractMetadata(ctx)
	if err != nil || m == nil {
		return nil, err
	}
	return a.linked(ctx, m.Link(jurisref.DocumentJudgment)), nil
}

// resultMetadata parses the first search result. Its title reads
// "Court, formation, DD/MM/YYYY, number, publication".
func (a *LegifranceAdapter) resultMetadata() *jurisref.CaseMetadata {
	m := &jurisref.CaseMetadata{
		Site:      jurisref.SiteLegifrance,
		SourceURL: a.page.URL,
	}

	row := a.doc.Find(legifranceResult).First()
	link := row.Find(legifranceResultLink).First()
	title := text(link)
	if title == "" {
		title = text(row.Find("h2, h3"))
	}
	m.FullTitle = title

	if href, ok := link.Attr("href"); ok {
		if abs := a.resolve(href); abs != "" {
			m.SourceURL = abs
			m.DocumentLinks = map[jurisref.DocumentType]string{jurisref.DocumentJudgment: abs}
			if a.url != nil {
				if u, err := a.url.Parse(abs); err == nil {
					m.Jurisdiction = normalize.JurisdictionFromPath(u.Path)
				}
			}
		}
	}

	parts := strings.Split(title, ",")
	dateAt := -1
	for i, p := range parts {
		if _, ok := normalize.ParseDate(p); ok {
			dateAt = i
			break
		}
	}
	if dateAt < 1 {
		if title != "" {
			a.logger.Warn("unrecognized search result title", "title", title)
		}
		return m
	}

	m.CourtRaw = strings.TrimSpace(parts[0])
	m.Formation = strings.TrimSpace(strings.Join(parts[1:dateAt], ","))
	m.Court = courtWithFormation(normalize.StandardizeCourtName(m.CourtRaw, jurisref.SiteLegifrance), m.Formation)
	applyDate(m, parts[dateAt], a.logger)

	rest := parts[dateAt+1:]
	if len(rest) > 0 {
		if n := normalize.CleanDecisionNumber(rest[0]); n != "" {
			m.DecisionNumber = "n°" + n
		}
		rest = rest[1:]
	}
	if len(rest) > 0 {
		m.Publication = strings.TrimSpace(strings.Join(rest, ","))
	}
	return m
}

// legifranceMetadata reads a decision page.
func legifranceMetadata(doc *goquery.Document, sourceURL, path string, logger *slog.Logger) *jurisref.CaseMetadata {
	m := &jurisref.CaseMetadata{
		Site:         jurisref.SiteLegifrance,
		SourceURL:    sourceURL,
		FullTitle:    text(doc.Find(legifranceTitle)),
		Jurisdiction: normalize.JurisdictionFromPath(path),
	}

	if heading := text(doc.Find(legifranceCourt)); heading != "" {
		raw, formation, _ := strings.Cut(heading, " - ")
		m.CourtRaw = strings.TrimSpace(raw)
		m.Formation = strings.TrimSpace(formation)
		m.Court = courtWithFormation(normalize.StandardizeCourtName(m.CourtRaw, jurisref.SiteLegifrance), m.Formation)
	}

	applyDate(m, text(doc.Find(legifranceDate)), logger)

	doc.Find(legifranceInfo).Each(func(_ int, li *goquery.Selection) {
		t := normalize.Space(li.Text())
		if strings.HasPrefix(t, "N°") && m.DecisionNumber == "" {
			m.DecisionNumber = "n°" + normalize.CleanDecisionNumber(t)
			return
		}
		folded := normalize.Fold(t)
		for _, mention := range publicationMentions {
			if strings.Contains(folded, mention) {
				m.Publication = t
				return
			}
		}
	})

	m.Personalities = bench(doc.Find(legifranceBench))
	return m
}

// bench reads the president and rapporteurs from definition lists.
func bench(lists *goquery.Selection) jurisref.Personalities {
	var p jurisref.Personalities
	lists.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		dd := dt.NextFiltered("dd")
		if dd.Length() == 0 {
			return
		}
		role := normalize.Fold(dt.Text())
		name := normalize.Space(dd.Text())
		switch {
		case strings.Contains(role, "rapporteur public"), strings.Contains(role, "commissaire du gouvernement"), strings.Contains(role, "avocat general"):
			p.PublicRapporteur = name
		case strings.Contains(role, "rapporteur"):
			p.Rapporteur = name
		case strings.Contains(role, "president"):
			p.President = name
		}
	})
	return p
}

func courtWithFormation(court, formation string) string {
	if formation == "" {
		return court
	}
	return court + ", " + formation
}
