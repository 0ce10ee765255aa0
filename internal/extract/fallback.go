// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"unicode"

	"go.uber.org/zap"

	"github.com/pdiddy/deedparse/pkg/types"
)

const (
	fallbackConfidence = 0.6

	// fallbackThreshold is the confidence below which a field is retried.
	fallbackThreshold = 0.5
)

// fillGaps retries fields that are empty or below fallbackThreshold with
// the looser rule set (or the date parser). A recovered value replaces the
// field; a failed retry leaves it as it was.
func (e *Engine) fillGaps(text string, fs FieldSet) FieldSet {
	for _, f := range types.Fields {
		s := fs[f]
		if s.Value != "" && s.Confidence >= fallbackThreshold {
			continue
		}

		raw, ok := e.fallbackRaw(text, f)
		if !ok {
			e.log.Debug("fallback recovered nothing", zap.String("field", string(f)))
			continue
		}
		v := Clean(raw, f)
		if v == "" {
			e.log.Debug("fallback recovered nothing", zap.String("field", string(f)))
			continue
		}

		start, end := locate(text, v)
		e.log.Debug("fallback recovered field",
			zap.String("field", string(f)),
			zap.String("value", v),
			zap.Int("start", start),
		)
		fs[f] = types.Span{
			Value:      v,
			Start:      start,
			End:        end,
			Confidence: fallbackConfidence,
			Method:     types.MethodFallback,
		}
	}
	return fs
}

func (e *Engine) fallbackRaw(text string, f types.Field) (string, bool) {
	if f == types.FieldDate {
		d := e.dates.Parse(text)
		return d, d != ""
	}

	rule, ok := e.catalog.Fallback(f)
	if !ok {
		return "", false
	}
	c, found, err := rule.Find(text)
	if err != nil {
		e.log.Debug("rule evaluation failed",
			zap.String("field", string(f)),
			zap.String("rule", rule.Name),
			zap.Error(err),
		)
		return "", false
	}
	return c.Text, found && c.Text != ""
}

// locate finds the first case-insensitive occurrence of needle in text and
// returns its rune offsets, or -1, -1.
func locate(text, needle string) (int, int) {
	hay := []rune(text)
	n := []rune(needle)
	if len(n) == 0 || len(n) > len(hay) {
		return -1, -1
	}

outer:
	for i := 0; i+len(n) <= len(hay); i++ {
		for j := range n {
			if unicode.ToLower(hay[i+j]) != unicode.ToLower(n[j]) {
				continue outer
			}
		}
		return i, i + len(n)
	}
	return -1, -1
}
