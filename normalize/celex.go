package normalize

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/fwojciec/jurisref"
)

// CELEX sector for EU case law.
const celexSectorCaseLaw = "6"

// EURLexBaseURL is the address CELEX identifiers resolve against.
const EURLexBaseURL = "https://eur-lex.europa.eu/legal-content/FR/TXT/?uri=CELEX:"

// celexTypeCodes maps a document type to the CELEX type letter that follows
// the court letter: "J" for judgments, "C" for opinions, "O" for orders.
var celexTypeCodes = map[jurisref.DocumentType]string{
	jurisref.DocumentJudgment: "J",
	jurisref.DocumentOpinion:  "C",
	jurisref.DocumentOrder:    "O",
}

// DeriveCELEX builds the CELEX identifier of a CJEU document from its case
// number, the year of the decision and the document type.
//
// The identifier is the case-law sector "6", the four-digit registration year
// (the case number's two-digit suffix expanded in the decision year's
// century), the court letter followed by the type code, and the case sequence
// zero-padded to four digits: C-278/22 judged in 2023 gives 62022CJ0278.
//
// The boolean is false when the case number or document type is not
// recognized.
func DeriveCELEX(caseNumber, year string, docType jurisref.DocumentType) (string, bool) {
	cn, ok := ParseCaseNumber(caseNumber)
	if !ok {
		return "", false
	}
	code, ok := celexTypeCodes[docType]
	if !ok {
		return "", false
	}
	seq, err := strconv.Atoi(cn.Sequence)
	if err != nil || seq > 9999 {
		return "", false
	}
	suffix, err := strconv.Atoi(cn.Year)
	if err != nil {
		return "", false
	}

	return fmt.Sprintf("%s%04d%s%s%04d", celexSectorCaseLaw, registrationYear(suffix, year), cn.Court, code, seq), true
}

// registrationYear expands a two-digit case year. A case is never registered
// after it is decided, so a suffix past the decision year belongs to the
// previous century. Without a usable decision year, suffixes from 50 map to
// the 1900s.
func registrationYear(suffix int, decisionYear string) int {
	y, err := strconv.Atoi(decisionYear)
	if err != nil || y < 1000 {
		if suffix >= 50 {
			return 1900 + suffix
		}
		return 2000 + suffix
	}
	full := y - y%100 + suffix
	if full > y {
		full -= 100
	}
	return full
}

// EURLexURL returns the EUR-Lex address of a CELEX identifier.
func EURLexURL(celex string) string {
	return EURLexBaseURL + celex
}

// DeriveEURLexURL derives the EUR-Lex address of a document from its case
// number, decision year and type. The boolean is false when no identifier can
// be derived.
func DeriveEURLexURL(caseNumber, year string, docType jurisref.DocumentType) (string, bool) {
	celex, ok := DeriveCELEX(caseNumber, year, docType)
	if !ok {
		return "", false
	}
	return EURLexURL(celex), true
}

var celexRe = regexp.MustCompile(`CELEX[:%3A]+(6)(\d{4})([CTF])([JCO])(\d{4})`)

// CELEXFromURL extracts the CELEX identifier from an EUR-Lex address.
func CELEXFromURL(rawURL string) (string, bool) {
	m := celexRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1] + m[2] + m[3] + m[4] + m[5], true
}

// OpinionURLFromJudgmentURL converts the EUR-Lex address of a judgment into
// the address of the advocate general's opinion in the same case
// (CJ becomes CC, TJ becomes TC).
func OpinionURLFromJudgmentURL(rawURL string) (string, bool) {
	m := celexRe.FindStringSubmatch(rawURL)
	if m == nil || m[4] != "J" || m[3] == "F" {
		return "", false
	}
	return EURLexURL(m[1] + m[2] + m[3] + "C" + m[5]), true
}
