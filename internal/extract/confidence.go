// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"

	"github.com/pdiddy/deedparse/pkg/types"
)

// AdjustmentsVersion identifies the adjustment table below. Bump it whenever
// a rule or delta changes; confidence drives the review UI.
const AdjustmentsVersion = 1

// Adjustment is one global correction applied after averaging.
type Adjustment struct {
	Name    string
	Delta   float64
	Applies func(fs FieldSet, trimmed int) bool
}

// Adjustments are applied in order to the mean field confidence.
var Adjustments = []Adjustment{
	{
		Name:  "parties_by_regex",
		Delta: 0.10,
		Applies: func(fs FieldSet, _ int) bool {
			b, s := fs[types.FieldBuyer], fs[types.FieldSeller]
			return b.Method == types.MethodRegex && b.Value != "" &&
				s.Method == types.MethodRegex && s.Value != ""
		},
	},
	{
		Name:  "fallback_used",
		Delta: -0.10,
		Applies: func(fs FieldSet, _ int) bool {
			for _, f := range types.Fields {
				if fs[f].Method == types.MethodFallback {
					return true
				}
			}
			return false
		},
	},
	{
		Name:  "spans_trimmed",
		Delta: -0.05,
		Applies: func(_ FieldSet, trimmed int) bool {
			return trimmed > 0
		},
	},
}

// Aggregate averages the four field confidences, applies Adjustments, clamps
// to [0, 1] and rounds to two decimals.
func Aggregate(fs FieldSet, trimmed int) float64 {
	var sum float64
	for _, f := range types.Fields {
		sum += fs[f].Confidence
	}
	score := sum / float64(len(types.Fields))

	for _, a := range Adjustments {
		if a.Applies(fs, trimmed) {
			score += a.Delta
		}
	}

	score = math.Max(0, math.Min(1, score))
	return math.Round(score*100) / 100
}
