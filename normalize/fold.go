// Package normalize canonicalizes the metadata scraped from decision pages:
// court names, dates, decision numbers and EU case-law identifiers.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'", "`", "'")

// Fold lowercases s, strips diacritics and folds typographic apostrophes so
// that "Conseil d’État" and "conseil d'etat" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(apostrophes.Replace(folded))
}

// Space collapses runs of whitespace, including non-breaking spaces, to a
// single space and trims the result.
func Space(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
