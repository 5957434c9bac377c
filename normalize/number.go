package normalize

import (
	"regexp"
	"strings"
)

var decisionNumberPrefixRe = regexp.MustCompile(`^[Nn]\s*[°º]\s*`)

// CleanDecisionNumber strips a leading "N°" and normalizes spacing:
// "N° 465765" becomes "465765".
func CleanDecisionNumber(text string) string {
	return decisionNumberPrefixRe.ReplaceAllString(Space(text), "")
}

// CaseNumber is a parsed EU court case number such as "C-278/22".
type CaseNumber struct {
	Court    string // "C", "T" or "F"
	Sequence string // "278"
	Year     string // two-digit registration year, "22"
	Appeal   bool   // "P" suffix
}

// String formats the case number in its canonical form.
func (c CaseNumber) String() string {
	s := c.Court + "-" + c.Sequence + "/" + c.Year
	if c.Appeal {
		s += " P"
	}
	return s
}

var (
	caseNumberRe    = regexp.MustCompile(`^([CTF])-(\d{1,4})/(\d{2})(\s*P)?$`)
	caseNumberAnyRe = regexp.MustCompile(`\b([CTF])-(\d{1,4})/(\d{2})\b`)
)

// ParseCaseNumber parses a case number. The boolean is false when the shape
// is not recognized.
func ParseCaseNumber(s string) (CaseNumber, bool) {
	m := caseNumberRe.FindStringSubmatch(Space(strings.ReplaceAll(s, "\u2011", "-")))
	if m == nil {
		return CaseNumber{}, false
	}
	return CaseNumber{
		Court:    m[1],
		Sequence: m[2],
		Year:     m[3],
		Appeal:   strings.TrimSpace(m[4]) == "P",
	}, true
}

// FindCaseNumbers returns every case number in text, in order, without
// duplicates.
func FindCaseNumbers(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range caseNumberAnyRe.FindAllString(strings.ReplaceAll(text, "\u2011", "-"), -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// JoinedCases returns the case numbers of a title naming several joined
// cases, or nil when the title names at most one.
func JoinedCases(title string) []string {
	cases := FindCaseNumbers(title)
	if len(cases) < 2 {
		return nil
	}
	return cases
}

var ecliRe = regexp.MustCompile(`ECLI:[A-Z]{2}:[A-Z0-9]{1,7}:\d{4}:[A-Z0-9.]{0,24}[A-Z0-9]`)

// FindECLI returns the first European Case Law Identifier in text.
func FindECLI(text string) string {
	return ecliRe.FindString(text)
}
