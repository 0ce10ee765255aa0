// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates recognises a date expression in free text and normalises it
// to YYYY-MM-DD.
//
// Recognised forms, in priority order: "today" / "today's date", ISO
// (2025-06-15), slash (06/15/2025, 6/15/25), month name (June 15, 2025),
// legal longhand (effective the 15th day of September, 2026) and dash
// (06-15-2025). The first form that matches anywhere in the text wins, even
// when a lower-priority form appears earlier in the text.
package dates

import (
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Layout is the canonical output format.
const Layout = "2006-01-02"

const monthAlternation = `january|february|march|april|may|june|july|august|september|october|november|december|` +
	`jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// Match is a recognised date. Start and End are rune offsets of the matched
// expression in the input.
type Match struct {
	Value string
	Start int
	End   int
	Form  string
}

// form is one recognised date shape. normalize receives the regex groups
// and returns the canonical date.
type form struct {
	name      string
	re        *regexp2.Regexp
	normalize func(g []string, now time.Time) (string, bool)
}

// Parser finds dates in text. The zero value is not usable; call New.
type Parser struct {
	// Now supplies the current time for "today". Defaults to time.Now.
	Now func() time.Time

	forms []form
}

// New compiles the date forms. timeout bounds each regex evaluation; zero
// means no bound.
func New(timeout time.Duration) *Parser {
	compile := func(expr string) *regexp2.Regexp {
		re := regexp2.MustCompile(expr, regexp2.IgnoreCase)
		if timeout > 0 {
			re.MatchTimeout = timeout
		}
		return re
	}

	return &Parser{
		Now: time.Now,
		forms: []form{
			{
				name: "today",
				re:   compile(`\btoday(?:'?s\s+date)?\b`),
				normalize: func(_ []string, now time.Time) (string, bool) {
					return now.Format(Layout), true
				},
			},
			{
				name: "iso",
				re:   compile(`\b([0-9]{4})-([0-9]{1,2})-([0-9]{1,2})\b`),
				normalize: func(g []string, _ time.Time) (string, bool) {
					return civil(g[1], g[2], g[3])
				},
			},
			{
				name: "slash",
				re:   compile(`\b([0-9]{1,2})/([0-9]{1,2})/([0-9]{4}|[0-9]{2})\b`),
				normalize: func(g []string, _ time.Time) (string, bool) {
					return civil(expandYear(g[3]), g[1], g[2])
				},
			},
			{
				name: "month_name",
				re:   compile(`\b(` + monthAlternation + `)\.?\s+([0-9]{1,2})(?:st|nd|rd|th)?,?\s+([0-9]{4})\b`),
				normalize: func(g []string, _ time.Time) (string, bool) {
					return civilMonth(g[3], g[1], g[2])
				},
			},
			{
				name: "legal",
				re:   compile(`\b(?:effective\s+)?the\s+([0-9]{1,2})(?:st|nd|rd|th)\s+day\s+of\s+(` + monthAlternation + `)\.?,?\s+([0-9]{4})\b`),
				normalize: func(g []string, _ time.Time) (string, bool) {
					return civilMonth(g[3], g[2], g[1])
				},
			},
			{
				name: "dash",
				re:   compile(`\b([0-9]{1,2})-([0-9]{1,2})-([0-9]{4})\b`),
				normalize: func(g []string, _ time.Time) (string, bool) {
					return civil(g[3], g[1], g[2])
				},
			},
		},
	}
}

var defaultParser = New(0)

// Parse returns the first recognised date in text as YYYY-MM-DD, or "".
func Parse(text string) string {
	return defaultParser.Parse(text)
}

// Parse returns the first recognised date in text as YYYY-MM-DD, or "".
func (p *Parser) Parse(text string) string {
	m, ok := p.Find(text)
	if !ok {
		return ""
	}
	return m.Value
}

// Find returns the winning date form's match. It reports false when no form
// matches or the winning form does not describe a real calendar date. Find
// never panics.
func (p *Parser) Find(text string) (m Match, ok bool) {
	defer func() {
		if recover() != nil {
			m, ok = Match{}, false
		}
	}()

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	for _, f := range p.forms {
		rm, err := f.re.FindStringMatch(text)
		if err != nil || rm == nil {
			continue
		}

		groups := rm.Groups()
		g := make([]string, len(groups))
		for i := range groups {
			g[i] = groups[i].String()
		}

		value, valid := f.normalize(g, now())
		if !valid {
			return Match{}, false
		}
		return Match{
			Value: value,
			Start: rm.Index,
			End:   rm.Index + rm.Length,
			Form:  f.name,
		}, true
	}
	return Match{}, false
}

// expandYear maps two-digit years into the 2000s.
func expandYear(y string) string {
	if len(y) == 2 {
		return "20" + y
	}
	return y
}

func civilMonth(year, month, day string) (string, bool) {
	mon, ok := months[strings.ToLower(month)]
	if !ok {
		return "", false
	}
	return civil(year, strconv.Itoa(int(mon)), day)
}

// civil validates a year/month/day triple and formats it. Dates that do not
// exist (February 30) are rejected rather than rolled over.
func civil(year, month, day string) (string, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", false
	}
	mo, err := strconv.Atoi(month)
	if err != nil || mo < 1 || mo > 12 {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return "", false
	}

	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return "", false
	}
	return t.Format(Layout), true
}
