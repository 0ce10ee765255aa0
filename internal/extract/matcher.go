// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/deedparse/pkg/types"
)

const (
	regexConfidence = 0.8
	dateConfidence  = 0.9

	// minValueLen is the longest cleaned value still rejected as noise.
	minValueLen = 2
)

// matchField returns the first rule capture for f whose cleaned value is
// longer than minValueLen. The span locates the captured group, not the
// whole match.
func (e *Engine) matchField(text string, f types.Field) types.Span {
	for _, rule := range e.catalog.Rules(f) {
		c, ok, err := rule.Find(text)
		if err != nil {
			e.log.Debug("rule evaluation failed",
				zap.String("field", string(f)),
				zap.String("rule", rule.Name),
				zap.Error(err),
			)
			continue
		}
		if !ok || c.Text == "" {
			continue
		}

		v := Clean(c.Text, f)
		if utf8.RuneCountInString(v) <= minValueLen {
			continue
		}

		e.log.Debug("field matched",
			zap.String("field", string(f)),
			zap.String("rule", rule.Name),
			zap.String("value", v),
			zap.Int("start", c.Start),
			zap.Int("end", c.End),
		)
		return types.Span{
			Value:      v,
			Start:      c.Start,
			End:        c.End,
			Confidence: regexConfidence,
			Method:     types.MethodRegex,
		}
	}
	return types.EmptySpan()
}

// extractDateWithSpan locates the winning date expression.
func (e *Engine) extractDateWithSpan(text string) types.Span {
	m, ok := e.dates.Find(text)
	if !ok || m.Value == "" {
		return types.EmptySpan()
	}
	e.log.Debug("field matched",
		zap.String("field", string(types.FieldDate)),
		zap.String("rule", m.Form),
		zap.String("value", m.Value),
		zap.Int("start", m.Start),
		zap.Int("end", m.End),
	)
	return types.Span{
		Value:      m.Value,
		Start:      m.Start,
		End:        m.End,
		Confidence: dateConfidence,
		Method:     types.MethodDateParser,
	}
}
