// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patterns

import (
	"regexp"

	"github.com/pdiddy/deedparse/pkg/types"
)

// Post-processing table. These expressions need no lookaround, so they use
// the standard library engine.
var (
	// LeadingPhrases strips a label or preposition left at the start of a
	// matched value (e.g. "seller is ", "from ", "on ").
	LeadingPhrases = map[types.Field]*regexp.Regexp{
		types.FieldAddress: regexp.MustCompile(`(?i)^(?:at\s+|address(?:\s+is)?(?:\s*:\s*|\s+))`),
		types.FieldBuyer:   regexp.MustCompile(`(?i)^(?:buyer(?:\s+is)?(?:\s*:\s*|\s+)|to\s+)`),
		types.FieldSeller:  regexp.MustCompile(`(?i)^(?:seller(?:\s+is)?(?:\s*:\s*|\s+)|from\s+|grantor(?:\s*:\s*|\s+)|sold\s+by\s+|is\s+|:\s*)`),
		types.FieldDate:    regexp.MustCompile(`(?i)^(?:date(?:\s+is)?(?:\s*:\s*|\s+)|on\s+)`),
	}

	// AddressConnector marks where an address runs into the rest of the
	// sentence.
	AddressConnector = regexp.MustCompile(`(?i)\b(?:was|sold|transferred|conveyed|to|from|date)\b`)

	// TrailingFiller matches a dangling preposition or article.
	TrailingFiller = regexp.MustCompile(`(?i)(?:^|\s+)(?:to|from|by|at|in|on|the|a|an)$`)

	// FieldKeyword marks the start of another field's label inside a
	// buyer or seller value.
	FieldKeyword = regexp.MustCompile(`(?i)\b(?:seller|buyer|address|date)\s`)

	// ClauseSeparator splits multi-clause matches.
	ClauseSeparator = regexp.MustCompile(`[,.;]`)

	// Whitespace collapses runs of whitespace.
	Whitespace = regexp.MustCompile(`\s+`)
)
