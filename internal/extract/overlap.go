// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"
	"unicode/utf8"

	"github.com/pdiddy/deedparse/pkg/types"
)

// Priority orders fields from highest to lowest when spans collide. Address
// captures are the most likely to swallow neighbouring party names, so
// address yields to everything.
var Priority = []types.Field{
	types.FieldDate,
	types.FieldSeller,
	types.FieldBuyer,
	types.FieldAddress,
}

const trimPenalty = 0.05

// Resolve trims or clears lower-priority spans that overlap a higher-priority
// span. Each field is compared only against fields strictly above it, so a
// span is never re-trimmed on behalf of a lower field. Trimmed ranges are
// re-sliced from text and cleaned again.
//
// The second result counts trim and clear events.
func Resolve(fs FieldSet, text string) (FieldSet, int) {
	runes := []rune(text)
	trimmed := 0

	for i := 1; i < len(Priority); i++ {
		f := Priority[i]
		for _, higher := range Priority[:i] {
			s := fs[f]
			h := fs[higher]
			if !s.Located() {
				break
			}
			if !h.Located() || !overlaps(s, h) {
				continue
			}

			trimmed++
			start, end, ok := remainder(s, h)
			if !ok || end > len(runes) {
				fs[f] = types.EmptySpan()
				break
			}

			v := Clean(string(runes[start:end]), f)
			if utf8.RuneCountInString(v) <= minValueLen {
				fs[f] = types.EmptySpan()
				break
			}

			s.Value, s.Start, s.End = v, start, end
			s.Confidence = math.Max(0, s.Confidence-trimPenalty)
			fs[f] = s
		}
	}
	return fs, trimmed
}

func overlaps(a, b types.Span) bool {
	return a.Start < b.End && a.End > b.Start
}

// remainder returns the part of s left after removing h. It keeps the left
// side when s starts before h and the right side when s runs past h's end.
func remainder(s, h types.Span) (int, int, bool) {
	switch {
	case s.Start < h.Start:
		return s.Start, h.Start, true
	case s.End > h.End:
		return h.End, s.End, true
	}
	return 0, 0, false
}
