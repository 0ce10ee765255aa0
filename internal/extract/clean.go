// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/deedparse/internal/patterns"
	"github.com/pdiddy/deedparse/pkg/types"
)

// Clean normalises a raw matched substring for field f. It is applied until
// the value stops changing, so Clean(Clean(x, f), f) == Clean(x, f).
//
// Each pass either returns the whitespace-collapsed input unchanged or a
// strictly shorter substring of it, so the loop terminates.
func Clean(raw string, f types.Field) string {
	cur := raw
	for {
		next := cleanOnce(cur, f)
		if next == cur {
			return next
		}
		cur = next
	}
}

// cleanOnce runs the post-processing steps once:
//  1. trim and collapse whitespace,
//  2. strip the field's leading phrase,
//  3. for addresses, cut at the first connector word,
//  4. strip trailing prepositions and articles,
//  5. for parties, cut at another field's keyword,
//  6. keep the first non-empty clause.
func cleanOnce(raw string, f types.Field) string {
	collapsed := strings.TrimSpace(patterns.Whitespace.ReplaceAllString(raw, " "))
	v := collapsed

	if re, ok := patterns.LeadingPhrases[f]; ok {
		for {
			loc := re.FindStringIndex(v)
			if loc == nil || loc[1] == 0 {
				break
			}
			v = strings.TrimSpace(v[loc[1]:])
		}
	}

	if f == types.FieldAddress {
		if loc := patterns.AddressConnector.FindStringIndex(v); loc != nil {
			v = strings.TrimSpace(v[:loc[0]])
		}
	}

	for {
		loc := patterns.TrailingFiller.FindStringIndex(v)
		if loc == nil {
			break
		}
		v = strings.TrimSpace(v[:loc[0]])
	}

	if f == types.FieldBuyer || f == types.FieldSeller {
		if loc := patterns.FieldKeyword.FindStringIndex(v); loc != nil {
			v = strings.TrimSpace(v[:loc[0]])
		}
	}

	for _, seg := range patterns.ClauseSeparator.Split(v, -1) {
		if seg = strings.TrimSpace(seg); seg != "" {
			return seg
		}
	}
	return collapsed
}
