package jurisref

import "strings"

// Tag is an RIS field tag.
type Tag string

// RIS tags in the order they appear in a record.
const (
	TagType      Tag = "TY"
	TagTitle     Tag = "TI"
	TagAuthor    Tag = "AU"
	TagPublisher Tag = "PB"
	TagDate      Tag = "DA"
	TagYear      Tag = "PY"
	TagNumber    Tag = "A2"
	TagMisc      Tag = "M1"
	TagNote      Tag = "N1"
	TagURL       Tag = "UR"
	TagEnd       Tag = "ER"
)

// RecordTypeCase is the only record type emitted.
const RecordTypeCase = "CASE"

var tagOrder = map[Tag]int{
	TagType:      0,
	TagTitle:     1,
	TagAuthor:    2,
	TagPublisher: 3,
	TagDate:      4,
	TagYear:      5,
	TagNumber:    6,
	TagMisc:      7,
	TagNote:      8,
	TagURL:       9,
	TagEnd:       10,
}

// Rank returns the position of the tag in a record.
// Unknown tags sort just before the end marker.
func (t Tag) Rank() int {
	if r, ok := tagOrder[t]; ok {
		return r
	}
	return tagOrder[TagEnd] - 1
}

// Field is one tagged line of a record. Note values may span several lines.
type Field struct {
	Tag   Tag
	Value string
}

// Record is a citation record: an ordered list of fields that begins with
// TY and ends with ER. Records are values; methods never modify the receiver.
type Record struct {
	fields []Field
}

// NewRecord returns a record holding the given fields sorted by tag rank.
// Fields with the same tag keep their relative order.
func NewRecord(fields ...Field) Record {
	return Record{}.With(fields...)
}

// Fields returns a copy of the record's fields.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Values returns the values of every field with the given tag.
func (r Record) Values(tag Tag) []string {
	var out []string
	for _, f := range r.fields {
		if f.Tag == tag {
			out = append(out, f.Value)
		}
	}
	return out
}

// Value returns the first value for the tag and whether it was present.
func (r Record) Value(tag Tag) (string, bool) {
	for _, f := range r.fields {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return "", false
}

// IsZero reports whether the record holds no fields.
func (r Record) IsZero() bool {
	return len(r.fields) == 0
}

// With returns a new record with fields merged in tag order. Each added field
// is placed after every existing field of lower or equal rank.
func (r Record) With(fields ...Field) Record {
	out := make([]Field, len(r.fields), len(r.fields)+len(fields))
	copy(out, r.fields)
	for _, f := range fields {
		i := len(out)
		for i > 0 && out[i-1].Tag.Rank() > f.Tag.Rank() {
			i--
		}
		out = append(out, Field{})
		copy(out[i+1:], out[i:])
		out[i] = f
	}
	return Record{fields: out}
}

// String serializes the record in RIS wire format.
func (r Record) String() string {
	var b strings.Builder
	for _, f := range r.fields {
		b.WriteString(string(f.Tag))
		b.WriteString("  - ")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	return b.String()
}

// NoteContent holds the body texts appended to a complete record.
type NoteContent struct {
	DecisionText string
	AnalysisText string
	OpinionText  string
}

// RecordOptions carries per-site citation policy.
type RecordOptions struct {
	// FillTitle populates TI from case-name fields. When false TI is left
	// blank for manual completion.
	FillTitle bool

	// CanonicalDate writes DA as YYYY/MM/DD instead of the site-local date.
	CanonicalDate bool

	// PreferDerivedURL writes UR from the external repository URL when one
	// is known.
	PreferDerivedURL bool

	// NoteSourceURLs writes the source URL of each sub-document on the line
	// after the note label.
	NoteSourceURLs bool

	// NoteLimit caps each note body in runes. Zero selects the default.
	NoteLimit int

	// ExtraRequired lists fields required on top of court and date.
	ExtraRequired []string
}

// RecordBuilder assembles and validates citation records.
type RecordBuilder interface {
	// BuildBasic returns a record with metadata fields only.
	BuildBasic(m *CaseMetadata, opts RecordOptions) Record

	// BuildComplete returns the basic record extended with note fields.
	BuildComplete(m *CaseMetadata, content NoteContent, opts RecordOptions) Record

	// Validate reports missing required fields.
	Validate(m *CaseMetadata, opts RecordOptions) Validation
}
