package normalize

import (
	"regexp"
	"strings"

	"github.com/fwojciec/jurisref"
)

// courtRule maps a folded substring to a canonical court label. When city is
// set, the city following the court name is appended to the label.
type courtRule struct {
	match string
	label string
	city  *regexp.Regexp
}

func cityPattern(court string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + court + `.*?(?:\bde\s+|\bd'\s*)([\p{L}][\p{L}\s-]*)`)
}

// courtRules is ordered: the first matching rule wins.
var courtRules = []courtRule{
	{match: "conseil d'etat", label: "CE"},
	{match: "conseil constitutionnel", label: "Cons. const."},
	{match: "cour de cassation", label: "Cass."},
	{match: "tribunal des conflits", label: "T. confl."},
	{match: "cour des comptes", label: "C. comptes"},
	{match: "cour administrative d'appel", label: "CAA", city: cityPattern(`cour administrative d'appel`)},
	{match: "cour d'appel", label: "CA", city: cityPattern(`cour d'appel`)},
	{match: "tribunal administratif", label: "TA", city: cityPattern(`tribunal administratif`)},
	{match: "tribunal judiciaire", label: "TJ", city: cityPattern(`tribunal judiciaire`)},
	{match: "cour de justice de l'union europeenne", label: "CJUE"},
	{match: "cour de justice des communautes europeennes", label: "CJCE"},
	{match: "tribunal de l'union europeenne", label: "Trib. UE"},
	{match: "tribunal de la fonction publique", label: "Trib. fonction publique UE"},
}

// StandardizeCourtName converts a court name into its citation abbreviation.
// Matching is case- and accent-insensitive; the first matching rule wins.
// Names matching no rule are returned unchanged, trimmed.
func StandardizeCourtName(raw string, site jurisref.Site) string {
	name := Space(raw)
	if name == "" {
		return ""
	}

	folded := Fold(name)
	for _, rule := range courtRules {
		if !strings.Contains(folded, rule.match) {
			continue
		}
		if rule.city == nil {
			return rule.label
		}
		if m := rule.city.FindStringSubmatch(apostrophes.Replace(name)); m != nil {
			if city := strings.Trim(m[1], " \t-"); city != "" {
				return rule.label + " " + city
			}
		}
		return rule.label
	}

	return name
}

// CourtFromCaseNumber returns the EU court for a Curia case number prefix.
func CourtFromCaseNumber(caseNumber string) string {
	switch {
	case strings.HasPrefix(caseNumber, "C-"):
		return "CJUE"
	case strings.HasPrefix(caseNumber, "T-"):
		return "Trib. UE"
	case strings.HasPrefix(caseNumber, "F-"):
		return "Trib. fonction publique UE"
	}
	return "Cour UE"
}

// Jurisdiction kinds.
const (
	JurisdictionAdministrative = "administratif"
	JurisdictionJudicial       = "judiciaire"
	JurisdictionConstitutional = "constitutionnel"
	JurisdictionFinancial      = "financier"
	JurisdictionCJEU           = "cjue"
	JurisdictionGeneralCourt   = "tribunal_ue"
	JurisdictionCivilService   = "tribunal_fonction_publique"
	JurisdictionEuropean       = "europeen"
	JurisdictionUnknown        = "inconnu"
)

// JurisdictionFromPath identifies the kind of French court from a Légifrance
// URL path.
func JurisdictionFromPath(path string) string {
	switch {
	case strings.Contains(path, "/ceta/"):
		return JurisdictionAdministrative
	case strings.Contains(path, "/juri/"):
		return JurisdictionJudicial
	case strings.Contains(path, "/constit/"):
		return JurisdictionConstitutional
	case strings.Contains(path, "/jufi/"):
		return JurisdictionFinancial
	}
	return JurisdictionUnknown
}

// JurisdictionFromCaseNumber identifies the EU court from a case number.
func JurisdictionFromCaseNumber(caseNumber string) string {
	switch {
	case strings.HasPrefix(caseNumber, "C-"):
		return JurisdictionCJEU
	case strings.HasPrefix(caseNumber, "T-"):
		return JurisdictionGeneralCourt
	case strings.HasPrefix(caseNumber, "F-"):
		return JurisdictionCivilService
	}
	return JurisdictionEuropean
}
