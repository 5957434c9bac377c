package goquery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/jurisref"
	"github.com/fwojciec/jurisref/goquery"
	"github.com/fwojciec/jurisref/mock"
	"github.com/fwojciec/jurisref/ris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legifranceDecisionURL = "https://www.legifrance.gouv.fr/ceta/id/CETATEXT000048071234"

const legifranceDecisionHTML = `<!DOCTYPE html>
<html><body>
<h1 class="main-title">Conseil d'État, 5ème chambre, 14/09/2023, 465765, Inédit au recueil Lebon</h1>
<div class="frame-block print-sommaire">
	<h2 class="title horsAbstract">Conseil d'État - 5ème chambre</h2>
	<p class="h2 title horsAbstract">Lecture du jeudi 14 septembre 2023</p>
	<ul>
		<li>N° 465765</li>
		<li>ECLI:FR:CECHS:2023:465765.20230914</li>
		<li>Inédit au recueil Lebon</li>
	</ul>
	<dl>
		<dt>Président</dt><dd>M. Dupont</dd>
		<dt>Rapporteur</dt><dd>Mme Martin</dd>
		<dt>Rapporteur public</dt><dd>M. Durand</dd>
	</dl>
</div>
<div class="frame-block abstract">
	<div class="js-child texte">54-01 Procédure.</div>
	<div class="js-child texte">Recevabilité.</div>
</div>
<div class="content-page">
	<h2 class="title">Texte intégral</h2>
	<p>Vu la procédure suivante :</p>
	<p>Considérant ce qui suit :</p>
	<p>1. La requête est rejetée.</p>
	<p>DECIDE :</p>
	<p>Article 1er : La requête est rejetée.</p>
</div>
</body></html>`

const legifranceDecisionText = "Vu la procédure suivante :\n\n" +
	"Considérant ce qui suit :\n\n" +
	"1. La requête est rejetée.\n\n" +
	"DECIDE :\n\n" +
	"Article 1er : La requête est rejetée."

const legifranceSearchURL = "https://www.legifrance.gouv.fr/search/juri?query=465765"

const legifranceSearchHTML = `<html><body>
<div class="result-item">
	<h2 class="title-result-item"><a href="/ceta/id/CETATEXT000048071234">Conseil d'État, 5ème chambre, 14/09/2023, 465765, Inédit au recueil Lebon</a></h2>
</div>
<div class="result-item">
	<h2 class="title-result-item"><a href="/juri/id/JURITEXT000047000000">Cour de cassation, civile, Chambre civile 1, 12/01/2023, 21-19.000, Publié au bulletin</a></h2>
</div>
</body></html>`

func TestLegifranceAdapter_CheckCompatibility(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		page *jurisref.Page
		want bool
	}{
		{"decision page", &jurisref.Page{URL: legifranceDecisionURL, HTML: legifranceDecisionHTML}, true},
		{"search page", &jurisref.Page{URL: legifranceSearchURL, HTML: legifranceSearchHTML}, true},
		{"decision path without markers", &jurisref.Page{URL: legifranceDecisionURL, HTML: "<p>Maintenance</p>"}, false},
		{"other Légifrance section", &jurisref.Page{URL: "https://www.legifrance.gouv.fr/loda/id/LEGITEXT000006069414", HTML: legifranceDecisionHTML}, false},
		{"other host", &jurisref.Page{URL: "https://example.com/ceta/id/X", HTML: legifranceDecisionHTML}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := goquery.NewLegifranceAdapter(tc.page, nil, nil, nil)

			assert.Equal(t, tc.want, a.CheckCompatibility())
		})
	}
}

func TestLegifranceAdapter_DecisionPage(t *testing.T) {
	t.Parallel()

	page := &jurisref.Page{URL: legifranceDecisionURL, HTML: legifranceDecisionHTML}

	t.Run("extracts metadata", func(t *testing.T) {
		t.Parallel()

		a := goquery.NewLegifranceAdapter(page, nil, nil, nil)

		m, err := a.ExtractMetadata(context.Background())

		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, jurisref.SiteLegifrance, m.Site)
		assert.Equal(t, legifranceDecisionURL, m.SourceURL)
		assert.Equal(t, "CE, 5ème chambre", m.Court)
		assert.Equal(t, "Conseil d'État", m.CourtRaw)
		assert.Equal(t, "5ème chambre", m.Formation)
		assert.Equal(t, "14/09/2023", m.Date)
		assert.Equal(t, "2023/09/14", m.DateCanonical)
		assert.Equal(t, "2023", m.Year)
		assert.Equal(t, "n°465765", m.DecisionNumber)
		assert.Equal(t, "Inédit au recueil Lebon", m.Publication)
		assert.Equal(t, "administratif", m.Jurisdiction)
		assert.Equal(t, "Conseil d'État, 5ème chambre, 14/09/2023, 465765, Inédit au recueil Lebon", m.FullTitle)
		assert.Equal(t, jurisref.Personalities{President: "M. Dupont", Rapporteur: "Mme Martin", PublicRapporteur: "M. Durand"}, m.Personalities)
	})

	t.Run("extracts decision text without its heading", func(t *testing.T) {
		t.Parallel()

		a := goquery.NewLegifranceAdapter(page, nil, nil, nil)

		text, err := a.ExtractDecisionText(context.Background())

		require.NoError(t, err)
		assert.Equal(t, legifranceDecisionText, text)
	})

	t.Run("joins analysis blocks with blank lines", func(t *testing.T) {
		t.Parallel()

		a := goquery.NewLegifranceAdapter(page, nil, nil, nil)

		text, err := a.ExtractAnalysis(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "54-01 Procédure.\n\nRecevabilité.", text)
	})

	t.Run("has no opinion", func(t *testing.T) {
		t.Parallel()

		a := goquery.NewLegifranceAdapter(page, nil, nil, nil)

		text, err := a.ExtractOpinion(context.Background())

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("missing blocks yield empty fields", func(t *testing.T) {
		t.Parallel()

		a := goquery.NewLegifranceAdapter(&jurisref.Page{URL: legifranceDecisionURL, HTML: `<h1 class="main-title">Titre</h1>`}, nil, nil, nil)
		ctx := context.Background()

		m, err := a.ExtractMetadata(ctx)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "Titre", m.FullTitle)
		assert.Empty(t, m.Court)
		assert.Empty(t, m.Date)
		assert.True(t, m.Personalities.IsZero())

		text, err := a.ExtractDecisionText(ctx)
		require.NoError(t, err)
		assert.Empty(t, text)

		analysis, err := a.ExtractAnalysis(ctx)
		require.NoError(t, err)
		assert.Empty(t, analysis)
	})

	t.Run("uses the configured converter", func(t *testing.T) {
		t.Parallel()

		var got string
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				got = html
				return "converted", nil
			},
		}
		a := goquery.NewLegifranceAdapter(page, nil, converter, nil)

		text, err := a.ExtractDecisionText(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "converted", text)
		assert.Contains(t, got, "Vu la procédure suivante")
		assert.NotContains(t, got, "Texte intégral")
	})
}

func TestLegifranceAdapter_RecordOptions(t *testing.T) {
	t.Parallel()

	opts := goquery.NewLegifranceAdapter(&jurisref.Page{URL: legifranceDecisionURL}, nil, nil, nil).RecordOptions()

	assert.False(t, opts.FillTitle)
	assert.False(t, opts.CanonicalDate)
	assert.False(t, opts.PreferDerivedURL)
	assert.Equal(t, []string{jurisref.FieldDecisionNumber}, opts.ExtraRequired)
}

func TestLegifranceAdapter_SearchPage(t *testing.T) {
	t.Parallel()

	page := &jurisref.Page{URL: legifranceSearchURL, HTML: legifranceSearchHTML}

	t.Run("reads metadata from the first result", func(t *testing.T) {
		t.Parallel()

		a := goquery.NewLegifranceAdapter(page, nil, nil, nil)

		m, err := a.ExtractMetadata(context.Background())

		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, legifranceDecisionURL, m.SourceURL)
		assert.Equal(t, "CE, 5ème chambre", m.Court)
		assert.Equal(t, "14/09/2023", m.Date)
		assert.Equal(t, "2023", m.Year)
		assert.Equal(t, "n°465765", m.DecisionNumber)
		assert.Equal(t, "Inédit au recueil Lebon", m.Publication)
		assert.Equal(t, "administratif", m.Jurisdiction)
		assert.Equal(t, legifranceDecisionURL, m.Link(jurisref.DocumentJudgment))
	})

	t.Run("fetches the linked decision once for text and analysis", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = append(fetched, url)
				return legifranceDecisionHTML, nil
			},
		}
		a := goquery.NewLegifranceAdapter(page, fetcher, nil, nil)
		ctx := context.Background()

		text, err := a.ExtractDecisionText(ctx)
		require.NoError(t, err)
		assert.Equal(t, legifranceDecisionText, text)

		analysis, err := a.ExtractAnalysis(ctx)
		require.NoError(t, err)
		assert.Equal(t, "54-01 Procédure.\n\nRecevabilité.", analysis)

		_, err = a.ExtractDecisionText(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{legifranceDecisionURL}, fetched)
	})

	t.Run("fetch failure yields empty text and is not retried", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				calls++
				return "", errors.New("connection reset")
			},
		}
		a := goquery.NewLegifranceAdapter(page, fetcher, nil, nil)
		ctx := context.Background()

		text, err := a.ExtractDecisionText(ctx)
		require.NoError(t, err)
		assert.Empty(t, text)

		analysis, err := a.ExtractAnalysis(ctx)
		require.NoError(t, err)
		assert.Empty(t, analysis)

		assert.Equal(t, 1, calls)
	})

	t.Run("no fetcher yields empty text", func(t *testing.T) {
		t.Parallel()

		a := goquery.NewLegifranceAdapter(page, nil, nil, nil)

		text, err := a.ExtractDecisionText(context.Background())

		require.NoError(t, err)
		assert.Empty(t, text)
	})
}

func TestLegifranceAdapter_BasicRecord(t *testing.T) {
	t.Parallel()

	page := &jurisref.Page{
		URL: "https://www.legifrance.gouv.fr/ceta/id/CETATEXT000048000001",
		HTML: `<div class="frame-block print-sommaire">
			<h2 class="title horsAbstract">Conseil d'État</h2>
			<p class="h2 title horsAbstract">Lecture du 14 septembre 2023</p>
			<ul><li>N° 470000</li></ul>
		</div>`,
	}
	a := goquery.NewLegifranceAdapter(page, nil, nil, nil)

	m, err := a.ExtractMetadata(context.Background())
	require.NoError(t, err)

	b := ris.NewBuilder()
	record := b.BuildBasic(m, a.RecordOptions())

	assert.True(t, b.Validate(m, a.RecordOptions()).Valid)
	assert.Equal(t, "TY  - CASE\n"+
		"TI  - \n"+
		"AU  - \n"+
		"PB  - CE\n"+
		"DA  - 14/09/2023\n"+
		"PY  - 2023\n"+
		"A2  - n°470000\n"+
		"UR  - https://www.legifrance.gouv.fr/ceta/id/CETATEXT000048000001\n"+
		"ER  - \n", record.String())
}
