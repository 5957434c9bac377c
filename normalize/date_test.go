package normalize_test

import (
	"testing"
	"time"

	"github.com/fwojciec/jurisref/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	t.Run("parses French long dates", func(t *testing.T) {
		t.Parallel()

		d, ok := normalize.ParseDate("Lecture du jeudi 14 septembre 2023")

		require.True(t, ok)
		assert.Equal(t, "14/09/2023", d.Local())
		assert.Equal(t, "2023/09/14", d.Canonical())
		assert.Equal(t, "2023", d.YearString())
	})

	t.Run("accepts 1er and accented months", func(t *testing.T) {
		t.Parallel()

		d, ok := normalize.ParseDate("1er décembre 2021")

		require.True(t, ok)
		assert.Equal(t, normalize.Date{Year: 2021, Month: time.December, Day: 1}, d)
	})

	t.Run("accepts unaccented and capitalized months", func(t *testing.T) {
		t.Parallel()

		d, ok := normalize.ParseDate("3 Fevrier 2020")

		require.True(t, ok)
		assert.Equal(t, "2020/02/03", d.Canonical())
	})

	t.Run("parses DD/MM/YYYY", func(t *testing.T) {
		t.Parallel()

		d, ok := normalize.ParseDate("Arrêt du 21/12/2023, Autotechnica")

		require.True(t, ok)
		assert.Equal(t, "2023/12/21", d.Canonical())
	})

	t.Run("parses YYYY-MM-DD", func(t *testing.T) {
		t.Parallel()

		d, ok := normalize.ParseDate("2023-9-14")

		require.True(t, ok)
		assert.Equal(t, "14/09/2023", d.Local())
	})

	t.Run("rejects impossible dates", func(t *testing.T) {
		t.Parallel()

		_, ok := normalize.ParseDate("31/02/2023")
		assert.False(t, ok)

		_, ok = normalize.ParseDate("2023-13-01")
		assert.False(t, ok)
	})

	t.Run("rejects unsupported formats", func(t *testing.T) {
		t.Parallel()

		_, ok := normalize.ParseDate("September 14, 2023")
		assert.False(t, ok)

		_, ok = normalize.ParseDate("")
		assert.False(t, ok)
	})
}

func TestParseDate_SameDateAcrossFormats(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"14 septembre 2023",
		"14/09/2023",
		"2023-09-14",
		"le 14 Septembre 2023",
	}

	var dates []normalize.Date
	for _, in := range inputs {
		d, ok := normalize.ParseDate(in)
		require.True(t, ok, in)
		dates = append(dates, d)
	}

	for _, d := range dates[1:] {
		assert.Equal(t, dates[0].YearString(), d.YearString())
		assert.Equal(t, dates[0].Canonical(), d.Canonical())
		assert.Equal(t, dates[0].Local(), d.Local())
	}
	assert.Regexp(t, `^\d{4}/\d{2}/\d{2}$`, dates[0].Canonical())
}
