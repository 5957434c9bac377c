package jurisref

// Site identifies which adapter produced a piece of metadata.
type Site string

// Supported publication sites.
const (
	SiteUnknown    Site = ""
	SiteLegifrance Site = "legifrance"
	SiteCuria      Site = "curia"
)

// Name returns the human-readable site name.
func (s Site) Name() string {
	switch s {
	case SiteLegifrance:
		return "Légifrance"
	case SiteCuria:
		return "Curia"
	}
	return ""
}

// DocumentType distinguishes the kinds of decision documents a site publishes.
type DocumentType string

// Document types.
const (
	DocumentUnknown  DocumentType = ""
	DocumentJudgment DocumentType = "Judgment"
	DocumentOpinion  DocumentType = "Opinion"
	DocumentOrder    DocumentType = "Order"
)

// Personalities lists the members of the bench named on a decision page.
type Personalities struct {
	President        string `json:"president,omitempty"`
	Rapporteur       string `json:"rapporteur,omitempty"`
	PublicRapporteur string `json:"publicRapporteur,omitempty"`
}

// IsZero reports whether no personality was found.
func (p Personalities) IsZero() bool {
	return p == Personalities{}
}

// CaseMetadata is the canonical description of one decision.
// Empty fields are absent: a selector that finds nothing leaves its field blank.
type CaseMetadata struct {
	Site      Site   `json:"site"`
	SourceURL string `json:"sourceUrl"`

	Court     string `json:"court,omitempty"`
	CourtRaw  string `json:"courtRaw,omitempty"`
	Formation string `json:"formation,omitempty"`

	// Date is formatted the way the site cites it; DateCanonical is always
	// YYYY/MM/DD when set.
	Date          string `json:"date,omitempty"`
	DateCanonical string `json:"dateCanonical,omitempty"`
	Year          string `json:"year,omitempty"`

	CaseNumber     string `json:"caseNumber,omitempty"`
	DecisionNumber string `json:"decisionNumber,omitempty"`
	CaseName       string `json:"caseName,omitempty"`
	FullTitle      string `json:"fullTitle,omitempty"`
	ECLI           string `json:"ecli,omitempty"`

	DocumentType  DocumentType            `json:"documentType,omitempty"`
	DocumentLinks map[DocumentType]string `json:"documentLinks,omitempty"`

	// DerivedURL points at the external repository copy of the decision.
	// A link scraped from the page takes precedence over one derived from
	// identifiers.
	DerivedURL string `json:"derivedUrl,omitempty"`

	Publication   string        `json:"publication,omitempty"`
	Jurisdiction  string        `json:"jurisdiction,omitempty"`
	JoinedCases   []string      `json:"joinedCases,omitempty"`
	Personalities Personalities `json:"personalities,omitzero"`
}

// Field names used in validation reports.
const (
	FieldCourt          = "court"
	FieldDate           = "date"
	FieldCaseNumber     = "caseNumber"
	FieldDecisionNumber = "decisionNumber"
	FieldCaseName       = "caseName"
	FieldYear           = "year"
)

// Value returns the metadata value for a validation field name.
// Unknown names return an empty string.
func (m *CaseMetadata) Value(field string) string {
	if m == nil {
		return ""
	}
	switch field {
	case FieldCourt:
		return m.Court
	case FieldDate:
		return m.Date
	case FieldCaseNumber:
		return m.CaseNumber
	case FieldDecisionNumber:
		return m.DecisionNumber
	case FieldCaseName:
		return m.CaseName
	case FieldYear:
		return m.Year
	}
	return ""
}

// Link returns the document link for a type, or an empty string.
func (m *CaseMetadata) Link(t DocumentType) string {
	if m == nil || m.DocumentLinks == nil {
		return ""
	}
	return m.DocumentLinks[t]
}

// ExtractionResult holds everything extracted for one user request.
// Empty text fields are absent.
type ExtractionResult struct {
	Metadata     *CaseMetadata
	DecisionText string
	AnalysisText string
	OpinionText  string
}

// Content returns the body texts of the result as note content.
func (r *ExtractionResult) Content() NoteContent {
	return NoteContent{
		DecisionText: r.DecisionText,
		AnalysisText: r.AnalysisText,
		OpinionText:  r.OpinionText,
	}
}

// Validation reports which required citation fields are missing.
type Validation struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missingFields"`
}
