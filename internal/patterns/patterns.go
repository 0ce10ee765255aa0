// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package patterns holds the ordered per-field match rules used by the
// extraction engine, the looser fallback rules, and the post-processing
// table used to clean matched text.
//
// Rules for a field are tried in order and the first match wins. Explicit
// labels ("buyer is X", "buyer: X", quoted values) come first, then
// prepositional phrasing ("sold to X", "X purchased"), then legal phrasing
// ("grantee:", "conveys ... to"). Every capture is bounded on the right by
// field keywords, clause punctuation or action verbs.
package patterns

import (
	"time"

	"github.com/dlclark/regexp2"

	"github.com/pdiddy/deedparse/pkg/types"
)

// value captures a name-like run that starts on a non-space character and
// never crosses clause punctuation or a pipe delimiter.
const value = `([^\s,.;|\n][^,.;|\n]{0,79}?)`

// streetSuffix lists the words that end a street address.
const streetSuffix = `st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|ct|court|way|pl|place`

// Rule is one ordered match rule.
type Rule struct {
	// Name identifies the rule in logs and tests.
	Name string

	// Group is the capture group holding the value; 0 uses the whole match.
	Group int

	re *regexp2.Regexp
}

// Capture is a rule match. Start and End are rune offsets of the captured
// text in the input.
type Capture struct {
	Text  string
	Start int
	End   int
}

// Find returns the rule's first match in text. It reports false when the
// rule does not match. A non-nil error means the evaluation failed (for
// example on timeout) and should be treated as no match.
func (r Rule) Find(text string) (Capture, bool, error) {
	m, err := r.re.FindStringMatch(text)
	if err != nil || m == nil {
		return Capture{}, false, err
	}

	g := &m.Group
	if r.Group > 0 {
		if sub := m.GroupByNumber(r.Group); sub != nil && len(sub.Captures) > 0 {
			g = sub
		}
	}
	return Capture{
		Text:  g.String(),
		Start: g.Index,
		End:   g.Index + g.Length,
	}, true, nil
}

// Catalog is the compiled rule set. A Catalog is safe for concurrent use.
type Catalog struct {
	rules    map[types.Field][]Rule
	fallback map[types.Field]Rule
}

// New compiles the catalog. timeout bounds each regex evaluation; zero
// means no bound.
func New(timeout time.Duration) *Catalog {
	rule := func(name, expr string) Rule {
		re := regexp2.MustCompile(expr, regexp2.IgnoreCase)
		if timeout > 0 {
			re.MatchTimeout = timeout
		}
		return Rule{Name: name, Group: 1, re: re}
	}

	return &Catalog{
		rules: map[types.Field][]Rule{
			types.FieldBuyer: {
				rule("buyer_is", `\bbuyer\s+is\s+`+value+`(?=\s*[,.;|]|\s+(?:seller|address|date)\b|\s*$)`),
				rule("buyer_quoted", `\bbuyer\s*:?\s*"([^"\n]{1,80})"(?=\s*[|,.;]|\s*$)`),
				rule("buyer_label", `\bbuyer\s*:\s*`+value+`(?=\s*[|,.;]|\s+(?:seller|address|date)\b|\s*$)`),
				rule("sold_to", `\bsold\s+to\s+`+value+`(?=\s+(?:on|for|from|by|effective)\b|\s*[,.;|]|\s*$)`),
				rule("purchased_by", `\bpurchased\s+by\s+`+value+`(?=\s+(?:on|for|from|effective)\b|\s*[,.;|]|\s*$)`),
				rule("to", `\bto\s+`+value+`(?=\s+(?:on|for|under|per|from|by|effective)\b|\s*[,.;|]|\s*$)`),
				rule("purchased", value+`\s+(?:purchased|bought)\b`),
				rule("grantee", `\bgrantee\s*:?\s*`+value+`(?=\s*[,.;|]|\s*$)`),
				rule("conveys_to", `\bconveys\s+[^,.;|\n]{1,80}?\s+to\s+`+value+`(?=\s+(?:effective|on)\b|\s*[,.;|]|\s*$)`),
			},
			types.FieldSeller: {
				rule("seller_is", `\bseller\s+is\s+`+value+`(?=\s*[,.;|]|\s+(?:buyer|address|date)\b|\s*$)`),
				rule("seller_quoted", `\bseller\s*:?\s*"([^"\n]{1,80})"(?=\s*[|,.;]|\s*$)`),
				rule("seller_label", `\bseller\s*:\s*`+value+`(?=\s*[|,.;]|\s+(?:buyer|address|date)\b|\s*$)`),
				rule("sold_by", `\bsold\s+by\s+`+value+`(?=\s+(?:to|on)\b|\s*[,.;|]|\s*$)`),
				rule("from", `\bfrom\s+`+value+`(?=\s+(?:to|on)\b|\s*[,.;|]|\s*$)`),
				rule("sold", value+`\s+(?:sold|transferred)\b`),
				rule("seller_appositive", `\b(?:undersigned\s+)?seller,\s*`+value+`(?=\s+(?:hereby|to|on)\b|\s*[,.;|]|\s*$)`),
				rule("grantor", `\bgrantor\s*:?\s*`+value+`(?=\s*[,.;|]|\s*$)`),
			},
			types.FieldAddress: {
				rule("street", `\b([0-9]+[a-z]?(?:-[0-9]+[a-z]?)?\s+(?:[a-z0-9'#-]+\s+){0,6}?(?:`+streetSuffix+`)\b(?:\s+unit\s+[a-z0-9-]+\b)?)(?!\s+(?:date|[0-9]{4})\b)`),
				rule("address_label", `\baddress(?:\s+is)?(?:\s*:\s*|\s+)`+value+`(?=\s*[|,.;]|\s+(?:buyer|seller|date)\b|\s*$)`),
				rule("located_at", `\b(?:property\s+at|located\s+at|at)\s+`+value+`(?=\s+(?:was|sold|transferred|conveyed|to|from)\b|\s*[,.;|]|\s*$)`),
				rule("house_number", `\b([0-9]+[a-z]?(?:-[0-9]+)?\s+[^,.;|\n]{2,80}?)(?=\s+(?:was|sold|transferred|conveyed|to|from|date|on)\b|\s*[,.;|]|\s*$)`),
			},
		},
		fallback: map[types.Field]Rule{
			types.FieldAddress: rule("address_loose", `\b(?:address|property|location|premises)\s*(?:is\s+|at\s+|:\s*)?([^,;|\n]{3,120})`),
			types.FieldBuyer:   rule("buyer_loose", `\b(?:buyer|purchaser|grantee|vendee)s?\s*(?:is\s+|:\s*)?([^,;.|\n]{1,80})`),
			types.FieldSeller:  rule("seller_loose", `\b(?:seller|vendor|grantor)s?\s*(?:is\s+|:\s*)?([^,;.|\n]{1,80})`),
		},
	}
}

// Rules returns the ordered primary rules for f. Date has no rules here;
// it is handled by the date parser.
func (c *Catalog) Rules(f types.Field) []Rule {
	return c.rules[f]
}

// Fallback returns the loose second-pass rule for f.
func (c *Catalog) Fallback(f types.Field) (Rule, bool) {
	r, ok := c.fallback[f]
	return r, ok
}
