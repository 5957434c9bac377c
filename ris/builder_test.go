package ris_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/jurisref"
	"github.com/fwojciec/jurisref/ris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Builder implements jurisref.RecordBuilder at compile time.
var _ jurisref.RecordBuilder = (*ris.Builder)(nil)

func legifranceMetadata() *jurisref.CaseMetadata {
	return &jurisref.CaseMetadata{
		Site:           jurisref.SiteLegifrance,
		SourceURL:      "https://www.legifrance.gouv.fr/ceta/id/CETATEXT000048071234",
		Court:          "CE, 5ème chambre",
		Date:           "14/09/2023",
		DateCanonical:  "2023/09/14",
		Year:           "2023",
		DecisionNumber: "n°465765",
		FullTitle:      "Conseil d'État, 5ème chambre, 14/09/2023, 465765",
	}
}

func curiaMetadata() *jurisref.CaseMetadata {
	return &jurisref.CaseMetadata{
		Site:           jurisref.SiteCuria,
		SourceURL:      "https://curia.europa.eu/juris/liste.jsf?num=C-278/22",
		Court:          "CJUE",
		Date:           "21/12/2023",
		DateCanonical:  "2023/12/21",
		Year:           "2023",
		CaseNumber:     "C-278/22",
		DecisionNumber: "aff. C-278/22",
		CaseName:       "AUTOTECHNICA FLEET SERVICES",
		FullTitle:      "C-278/22 - AUTOTECHNICA FLEET SERVICES",
		ECLI:           "ECLI:EU:C:2023:1019",
		DocumentType:   jurisref.DocumentJudgment,
		DocumentLinks: map[jurisref.DocumentType]string{
			jurisref.DocumentJudgment: "https://curia.europa.eu/juris/document/document.jsf?docid=280765",
			jurisref.DocumentOpinion:  "https://curia.europa.eu/juris/document/document.jsf?docid=275321",
		},
		DerivedURL: "https://eur-lex.europa.eu/legal-content/FR/TXT/?uri=CELEX:62022CJ0278",
	}
}

func curiaOptions() jurisref.RecordOptions {
	return jurisref.RecordOptions{FillTitle: true, CanonicalDate: true, PreferDerivedURL: true, NoteSourceURLs: true}
}

func TestBuilder_BuildBasic(t *testing.T) {
	t.Parallel()

	t.Run("serializes fields in fixed order with a blank title", func(t *testing.T) {
		t.Parallel()

		r := ris.NewBuilder().BuildBasic(legifranceMetadata(), jurisref.RecordOptions{})

		assert.Equal(t, "TY  - CASE\n"+
			"TI  - \n"+
			"AU  - \n"+
			"PB  - CE, 5ème chambre\n"+
			"DA  - 14/09/2023\n"+
			"PY  - 2023\n"+
			"A2  - n°465765\n"+
			"UR  - https://www.legifrance.gouv.fr/ceta/id/CETATEXT000048071234\n"+
			"ER  - \n", r.String())
	})

	t.Run("fills title, canonical date, ECLI and derived URL", func(t *testing.T) {
		t.Parallel()

		r := ris.NewBuilder().BuildBasic(curiaMetadata(), curiaOptions())

		assert.Equal(t, "TY  - CASE\n"+
			"TI  - AUTOTECHNICA FLEET SERVICES\n"+
			"AU  - \n"+
			"PB  - CJUE\n"+
			"DA  - 2023/12/21\n"+
			"PY  - 2023\n"+
			"A2  - aff. C-278/22\n"+
			"M1  - ECLI:EU:C:2023:1019\n"+
			"UR  - https://eur-lex.europa.eu/legal-content/FR/TXT/?uri=CELEX:62022CJ0278\n"+
			"ER  - \n", r.String())
	})

	t.Run("title falls back to the full title's name part", func(t *testing.T) {
		t.Parallel()

		m := curiaMetadata()
		m.CaseName = ""

		r := ris.NewBuilder().BuildBasic(m, curiaOptions())

		ti, ok := r.Value(jurisref.TagTitle)
		require.True(t, ok)
		assert.Equal(t, "AUTOTECHNICA FLEET SERVICES", ti)
	})

	t.Run("omits empty optional fields", func(t *testing.T) {
		t.Parallel()

		r := ris.NewBuilder().BuildBasic(&jurisref.CaseMetadata{Site: jurisref.SiteCuria, SourceURL: "https://curia.europa.eu/x"}, curiaOptions())

		assert.Equal(t, "TY  - CASE\nTI  - \nAU  - \nUR  - https://curia.europa.eu/x\nER  - \n", r.String())
	})

	t.Run("canonical date falls back to local date", func(t *testing.T) {
		t.Parallel()

		m := curiaMetadata()
		m.DateCanonical = ""

		r := ris.NewBuilder().BuildBasic(m, curiaOptions())

		da, _ := r.Value(jurisref.TagDate)
		assert.Equal(t, "21/12/2023", da)
	})
}

func TestBuilder_BuildComplete(t *testing.T) {
	t.Parallel()

	t.Run("appends notes between identifiers and URL", func(t *testing.T) {
		t.Parallel()

		content := jurisref.NoteContent{
			DecisionText: "Considérant que la requête est rejetée.",
			AnalysisText: "Procédure. Recevabilité.",
		}

		r := ris.NewBuilder().BuildComplete(legifranceMetadata(), content, jurisref.RecordOptions{})

		assert.Equal(t, "TY  - CASE\n"+
			"TI  - \n"+
			"AU  - \n"+
			"PB  - CE, 5ème chambre\n"+
			"DA  - 14/09/2023\n"+
			"PY  - 2023\n"+
			"A2  - n°465765\n"+
			"N1  - DECISION TEXT:\nConsidérant que la requête est rejetée.\n"+
			"N1  - ANALYSIS:\nProcédure. Recevabilité.\n"+
			"UR  - https://www.legifrance.gouv.fr/ceta/id/CETATEXT000048071234\n"+
			"ER  - \n", r.String())
	})

	t.Run("prefixes notes with the most specific source URL", func(t *testing.T) {
		t.Parallel()

		content := jurisref.NoteContent{
			DecisionText: "La demande de décision préjudicielle porte sur l'interprétation.",
			OpinionText:  "Je propose à la Cour de répondre.",
		}

		r := ris.NewBuilder().BuildComplete(curiaMetadata(), content, curiaOptions())

		notes := r.Values(jurisref.TagNote)
		require.Len(t, notes, 2)
		assert.Equal(t, "DECISION TEXT:\nhttps://curia.europa.eu/juris/document/document.jsf?docid=280765\nLa demande de décision préjudicielle porte sur l'interprétation.", notes[0])
		assert.Equal(t, "ADVOCATE GENERAL'S OPINION:\nhttps://curia.europa.eu/juris/document/document.jsf?docid=275321\nJe propose à la Cour de répondre.", notes[1])
	})

	t.Run("opinion URL is derived from the judgment's EUR-Lex address", func(t *testing.T) {
		t.Parallel()

		m := curiaMetadata()
		m.DocumentLinks = nil

		r := ris.NewBuilder().BuildComplete(m, jurisref.NoteContent{OpinionText: "Conclusions."}, curiaOptions())

		notes := r.Values(jurisref.TagNote)
		require.Len(t, notes, 1)
		assert.Equal(t, "ADVOCATE GENERAL'S OPINION:\nhttps://eur-lex.europa.eu/legal-content/FR/TXT/?uri=CELEX:62022CC0278\nConclusions.", notes[0])
	})

	t.Run("extends the basic record without changing it", func(t *testing.T) {
		t.Parallel()

		b := ris.NewBuilder()
		basic := b.BuildBasic(curiaMetadata(), curiaOptions())
		before := basic.String()

		complete := ris.Extend(basic, jurisref.Field{Tag: jurisref.TagNote, Value: "ANALYSIS:\nx"})

		assert.Equal(t, before, basic.String())
		assert.Equal(t, b.BuildComplete(curiaMetadata(), jurisref.NoteContent{AnalysisText: "x"}, curiaOptions()).String(), complete.String())
	})

	t.Run("truncates long bodies", func(t *testing.T) {
		t.Parallel()

		opts := jurisref.RecordOptions{NoteLimit: 50}
		body := strings.Repeat("mot ", 40)

		r := ris.NewBuilder().BuildComplete(legifranceMetadata(), jurisref.NoteContent{DecisionText: body}, opts)

		notes := r.Values(jurisref.TagNote)
		require.Len(t, notes, 1)
		assert.True(t, strings.HasSuffix(notes[0], ris.TruncationMarker))
	})

	t.Run("no content yields the basic record", func(t *testing.T) {
		t.Parallel()

		b := ris.NewBuilder()
		assert.Equal(t,
			b.BuildBasic(legifranceMetadata(), jurisref.RecordOptions{}).String(),
			b.BuildComplete(legifranceMetadata(), jurisref.NoteContent{}, jurisref.RecordOptions{}).String())
	})

	t.Run("record is terminated by the end marker", func(t *testing.T) {
		t.Parallel()

		r := ris.NewBuilder().BuildComplete(curiaMetadata(), jurisref.NoteContent{DecisionText: "x"}, curiaOptions())

		fields := r.Fields()
		assert.Equal(t, jurisref.TagType, fields[0].Tag)
		assert.Equal(t, jurisref.Field{Tag: jurisref.TagEnd}, fields[len(fields)-1])
		assert.True(t, strings.HasSuffix(r.String(), "ER  - \n"))
	})
}
