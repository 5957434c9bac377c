package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Date is a calendar date parsed from a decision page.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Local formats the date as DD/MM/YYYY, the form French citations use.
func (d Date) Local() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// Canonical formats the date as YYYY/MM/DD.
func (d Date) Canonical() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, int(d.Month), d.Day)
}

// YearString returns the four-digit year.
func (d Date) YearString() string {
	return fmt.Sprintf("%04d", d.Year)
}

var frenchMonths = map[string]time.Month{
	"janvier":   time.January,
	"fevrier":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"aout":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"decembre":  time.December,
}

var (
	longDateRe  = regexp.MustCompile(`\b(\d{1,2})(?:er)?\s+(janvier|fevrier|mars|avril|mai|juin|juillet|aout|septembre|octobre|novembre|decembre)\s+(\d{4})\b`)
	slashDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	isoDateRe   = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
)

// ParseDate finds the first date in raw. It accepts French day-month-year
// ("14 septembre 2023", "1er mars 2021"), DD/MM/YYYY and YYYY-MM-DD, and
// rejects impossible calendar dates. The boolean is false when no supported
// date is found.
func ParseDate(raw string) (Date, bool) {
	folded := Fold(Space(raw))

	if m := longDateRe.FindStringSubmatch(folded); m != nil {
		return newDate(m[3], frenchMonths[m[2]], m[1])
	}
	if m := slashDateRe.FindStringSubmatch(folded); m != nil {
		month, _ := strconv.Atoi(m[2])
		return newDate(m[3], time.Month(month), m[1])
	}
	if m := isoDateRe.FindStringSubmatch(folded); m != nil {
		month, _ := strconv.Atoi(m[2])
		return newDate(m[1], time.Month(month), m[3])
	}
	return Date{}, false
}

func newDate(year string, month time.Month, day string) (Date, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return Date{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return Date{}, false
	}
	if month < time.January || month > time.December || d < 1 {
		return Date{}, false
	}
	t := time.Date(y, month, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != month {
		return Date{}, false
	}
	return Date{Year: y, Month: month, Day: d}, true
}
