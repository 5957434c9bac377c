// Package ris assembles RIS citation records from decision metadata.
package ris

import (
	"strings"

	"github.com/fwojciec/jurisref"
	"github.com/fwojciec/jurisref/normalize"
)

// Note labels.
const (
	LabelDecision = "DECISION TEXT:"
	LabelAnalysis = "ANALYSIS:"
	LabelOpinion  = "ADVOCATE GENERAL'S OPINION:"
)

// Ensure Builder implements jurisref.RecordBuilder at compile time.
var _ jurisref.RecordBuilder = (*Builder)(nil)

// Builder assembles citation records. It holds no state; a zero Builder is
// ready to use.
type Builder struct{}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildBasic returns a record carrying metadata fields only, in fixed tag
// order. TI and AU are always present, blank when unknown; other fields are
// omitted when empty.
func (b *Builder) BuildBasic(m *jurisref.CaseMetadata, opts jurisref.RecordOptions) jurisref.Record {
	if m == nil {
		m = &jurisref.CaseMetadata{}
	}

	fields := []jurisref.Field{
		{Tag: jurisref.TagType, Value: jurisref.RecordTypeCase},
		{Tag: jurisref.TagTitle, Value: title(m, opts)},
		{Tag: jurisref.TagAuthor},
	}
	add := func(tag jurisref.Tag, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fields = append(fields, jurisref.Field{Tag: tag, Value: value})
		}
	}

	add(jurisref.TagPublisher, m.Court)
	add(jurisref.TagDate, date(m, opts))
	add(jurisref.TagYear, m.Year)
	add(jurisref.TagNumber, m.DecisionNumber)
	add(jurisref.TagMisc, m.ECLI)
	add(jurisref.TagURL, recordURL(m, opts))
	fields = append(fields, jurisref.Field{Tag: jurisref.TagEnd})

	return jurisref.NewRecord(fields...)
}

// BuildComplete returns the basic record extended with one note per
// non-empty body text. Each note starts with its label, then the most
// specific source URL for that document when opts.NoteSourceURLs is set, then
// the body truncated to opts.NoteLimit.
func (b *Builder) BuildComplete(m *jurisref.CaseMetadata, content jurisref.NoteContent, opts jurisref.RecordOptions) jurisref.Record {
	basic := b.BuildBasic(m, opts)
	if m == nil {
		m = &jurisref.CaseMetadata{}
	}
	return Extend(basic, notes(m, content, opts)...)
}

// Extend returns a new record with the fields merged in tag order. The
// input record is left untouched.
func Extend(r jurisref.Record, fields ...jurisref.Field) jurisref.Record {
	return r.With(fields...)
}

func notes(m *jurisref.CaseMetadata, content jurisref.NoteContent, opts jurisref.RecordOptions) []jurisref.Field {
	limit := opts.NoteLimit
	if limit <= 0 {
		limit = DefaultNoteLimit
	}

	var fields []jurisref.Field
	add := func(label, sourceURL, body string) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		lines := []string{label}
		if opts.NoteSourceURLs && sourceURL != "" {
			lines = append(lines, sourceURL)
		}
		lines = append(lines, Truncate(body, limit))
		fields = append(fields, jurisref.Field{Tag: jurisref.TagNote, Value: strings.Join(lines, "\n")})
	}

	add(LabelDecision, decisionURL(m), content.DecisionText)
	add(LabelAnalysis, "", content.AnalysisText)
	add(LabelOpinion, opinionURL(m), content.OpinionText)
	return fields
}

func title(m *jurisref.CaseMetadata, opts jurisref.RecordOptions) string {
	if !opts.FillTitle {
		return ""
	}
	if m.CaseName != "" {
		return m.CaseName
	}
	if m.FullTitle != "" {
		if parts := strings.Split(m.FullTitle, " - "); len(parts) >= 2 {
			return strings.TrimSpace(parts[1])
		}
		return m.FullTitle
	}
	return ""
}

func date(m *jurisref.CaseMetadata, opts jurisref.RecordOptions) string {
	if opts.CanonicalDate && m.DateCanonical != "" {
		return m.DateCanonical
	}
	return m.Date
}

func recordURL(m *jurisref.CaseMetadata, opts jurisref.RecordOptions) string {
	if opts.PreferDerivedURL && m.DerivedURL != "" {
		return m.DerivedURL
	}
	return m.SourceURL
}

// decisionURL picks the most specific address for the decision itself: the
// linked document page, then the external repository copy, then the page the
// metadata came from.
func decisionURL(m *jurisref.CaseMetadata) string {
	for _, u := range []string{m.Link(jurisref.DocumentJudgment), m.Link(jurisref.DocumentOrder), m.DerivedURL, m.SourceURL} {
		if u != "" {
			return u
		}
	}
	return ""
}

// opinionURL picks the linked opinion page, else the opinion's external
// repository address derived from the judgment's.
func opinionURL(m *jurisref.CaseMetadata) string {
	if u := m.Link(jurisref.DocumentOpinion); u != "" {
		return u
	}
	if u, ok := normalize.OpinionURLFromJudgmentURL(m.DerivedURL); ok {
		return u
	}
	return ""
}
