// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/deedparse/internal/dates"
	"github.com/pdiddy/deedparse/pkg/types"
)

var fixedNow = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	p := dates.New(0)
	p.Now = func() time.Time { return fixedNow }
	opts = append([]Option{WithDateFinder(p)}, opts...)
	return New(types.Defaults().Engine, opts...)
}

// panicFinder fails inside the pipeline to probe the recovery boundary.
type panicFinder struct{}

func (panicFinder) Find(string) (dates.Match, bool) { panic("date finder exploded") }
func (panicFinder) Parse(string) string             { panic("date finder exploded") }

func TestExtractScenarios(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    types.FieldValues
		minConf float64
	}{
		{
			name:    "narrative sentence",
			text:    "The property at 123 Main St was sold by John Doe to Jane Smith on June 15, 2025.",
			want:    types.FieldValues{Address: "123 Main St", Buyer: "Jane Smith", Seller: "John Doe", Date: "2025-06-15"},
			minConf: 0.85,
		},
		{
			name: "labelled clauses with today",
			text: "Buyer is Jane. Seller is John. Address 123 Main St. Today's date.",
			want: types.FieldValues{Address: "123 Main St", Buyer: "Jane", Seller: "John", Date: "2026-10-18"},
		},
		{
			name: "identical buyer and seller",
			text: "John Doe sold 123 Main St to John Doe on 2025-01-01",
			want: types.FieldValues{Address: "123 Main St", Buyer: "John Doe", Seller: "John Doe", Date: "2025-01-01"},
		},
		{
			name: "pipe delimited with quotes",
			text: `Buyer: "Peter Parker" | Seller: "Bruce Wayne" | Address: 177A Bleecker St | Date: 05/05/2029`,
			want: types.FieldValues{Address: "177A Bleecker St", Buyer: "Peter Parker", Seller: "Bruce Wayne", Date: "2029-05-05"},
		},
		{
			name: "transfer without date",
			text: "123 Main Street transferred from Acme LLC to Beta Inc.",
			want: types.FieldValues{Address: "123 Main Street", Buyer: "Beta Inc", Seller: "Acme LLC"},
		},
		{
			name: "empty input",
			text: "",
			want: types.FieldValues{},
		},
	}

	e := testEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			assert.Equal(t, tt.want, got.Values())
			assert.GreaterOrEqual(t, got.Confidence, tt.minConf)
		})
	}
}

func TestExtractConfidence(t *testing.T) {
	e := testEngine(t)

	full := e.Extract("The property at 123 Main St was sold by John Doe to Jane Smith on June 15, 2025.")
	assert.InDelta(t, 0.925, full.Confidence, 0.006)

	noDate := e.Extract("123 Main Street transferred from Acme LLC to Beta Inc.")
	assert.InDelta(t, 0.70, noDate.Confidence, 1e-9)
	assert.Less(t, noDate.Confidence, full.Confidence)

	empty := e.Extract("")
	assert.Equal(t, 0.0, empty.Confidence)
}

func TestExtractFallback(t *testing.T) {
	e := testEngine(t)
	got := e.Extract("purchaser Maria Lopez, seller Tom Hardy, 9 Elm Street, 2025-04-04")

	assert.Equal(t, types.FieldValues{
		Address: "9 Elm Street",
		Buyer:   "Maria Lopez",
		Seller:  "Tom Hardy",
		Date:    "2025-04-04",
	}, got.Values())

	// (0.8 + 0.6 + 0.6 + 0.9) / 4 - 0.10
	assert.InDelta(t, 0.625, got.Confidence, 0.011)
	assert.Equal(t, &[2]int{10, 21}, got.Spans[types.FieldBuyer])
}

func TestExtractSpansLocateCaptures(t *testing.T) {
	e := testEngine(t)
	text := "John Doe sold 123 Main St to John Doe on 2025-01-01"
	got := e.Extract(text)

	runes := []rune(text)
	slice := func(f types.Field) string {
		s := got.Spans[f]
		require.NotNil(t, s, "span for %s", f)
		return string(runes[s[0]:s[1]])
	}

	assert.Equal(t, "John Doe", slice(types.FieldSeller))
	assert.Equal(t, "John Doe", slice(types.FieldBuyer))
	assert.Equal(t, "123 Main St", slice(types.FieldAddress))
	assert.Equal(t, "2025-01-01", slice(types.FieldDate))
	assert.Equal(t, &[2]int{0, 8}, got.Spans[types.FieldSeller])
	assert.Equal(t, &[2]int{29, 37}, got.Spans[types.FieldBuyer])
}

func TestExtractWellFormedForAnyInput(t *testing.T) {
	inputs := []string{
		"",
		"   \t\n  ",
		"日本語の文章です。売主は田中、買主は佐藤。",
		"Ünïcödé Straße 12 Straße verkauft",
		strings.Repeat("123 Main St sold by John Doe to Jane ", 1000),
		strings.Repeat("a", 50000),
		strings.Repeat("buyer is ", 3000),
		"\x00\x01\x02 seller: \"",
		`Buyer: "unterminated | Seller: | Date: 99/99/9999`,
	}

	e := testEngine(t)
	for _, in := range inputs {
		var got types.ExtractionResult
		require.NotPanics(t, func() { got = e.Extract(in) })

		assert.GreaterOrEqual(t, got.Confidence, 0.0)
		assert.LessOrEqual(t, got.Confidence, 1.0)
		assert.InDelta(t, math.Round(got.Confidence*100), got.Confidence*100, 1e-6,
			"confidence must have two decimals")

		n := len([]rune(in))
		require.Len(t, got.Spans, len(types.Fields))
		for f, s := range got.Spans {
			if s == nil {
				continue
			}
			assert.True(t, s[0] >= 0 && s[1] > s[0] && s[1] <= n, "span %s %v out of range", f, *s)
		}
	}
}

func TestExtractFailClosed(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	e := testEngine(t, WithDateFinder(panicFinder{}), WithLogger(zap.New(core)))

	var got types.ExtractionResult
	require.NotPanics(t, func() {
		got = e.Extract("The property at 123 Main St was sold by John Doe to Jane Smith on June 15, 2025.")
	})

	assert.Equal(t, types.EmptyResult(), got)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "extraction failed, returning empty result", entry.Message)
	assert.Equal(t, "date finder exploded", entry.ContextMap()["panic"])
}

func TestExtractTruncatesLongInput(t *testing.T) {
	cfg := types.Defaults().Engine
	cfg.MaxInputRunes = 20
	core, logs := observer.New(zapcore.WarnLevel)
	e := New(cfg, WithLogger(zap.New(core)))

	got := e.Extract("Buyer is Jane Smith. Seller is John Doe.")
	assert.Equal(t, "Jane Smith", got.Buyer)
	assert.Equal(t, "", got.Seller)
	assert.Equal(t, 1, logs.FilterMessage("input truncated").Len())
}

func TestExtractConcurrent(t *testing.T) {
	e := testEngine(t)
	text := "The property at 123 Main St was sold by John Doe to Jane Smith on June 15, 2025."
	want := e.Extract(text)

	var wg sync.WaitGroup
	results := make([]types.ExtractionResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Extract(text)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestMatchField(t *testing.T) {
	e := testEngine(t)

	s := e.matchField("Buyer is Jane. Seller is John.", types.FieldBuyer)
	assert.Equal(t, types.Span{Value: "Jane", Start: 9, End: 13, Confidence: 0.8, Method: types.MethodRegex}, s)

	assert.Equal(t, types.EmptySpan(), e.matchField("nothing to see", types.FieldSeller))
	assert.Equal(t, types.EmptySpan(), e.matchField("", types.FieldAddress))
}

func TestExtractDateWithSpan(t *testing.T) {
	e := testEngine(t)

	s := e.extractDateWithSpan("closing on 2025-01-01")
	assert.Equal(t, types.Span{Value: "2025-01-01", Start: 11, End: 21, Confidence: 0.9, Method: types.MethodDateParser}, s)

	assert.Equal(t, types.EmptySpan(), e.extractDateWithSpan("2025-02-30"))
}

func TestFillGapsKeepsConfidentFields(t *testing.T) {
	e := testEngine(t)
	fs := NewFieldSet()
	fs[types.FieldBuyer] = regexSpan("Jane Smith", 0, 10)

	got := e.fillGaps("buyer is Someone Else", fs)
	assert.Equal(t, "Jane Smith", got[types.FieldBuyer].Value)
	assert.Equal(t, types.MethodRegex, got[types.FieldBuyer].Method)
}

func TestFillGapsRetriesLowConfidence(t *testing.T) {
	e := testEngine(t)
	fs := NewFieldSet()
	fs[types.FieldSeller] = types.Span{Value: "Jo", Start: 0, End: 2, Confidence: 0.3, Method: types.MethodRegex}

	got := e.fillGaps("Vendor: Acme Holdings", fs)
	assert.Equal(t, types.Span{Value: "Acme Holdings", Start: 8, End: 21, Confidence: 0.6, Method: types.MethodFallback}, got[types.FieldSeller])
}

func TestLocate(t *testing.T) {
	start, end := locate("Sold by JOHN doe", "john Doe")
	assert.Equal(t, 8, start)
	assert.Equal(t, 16, end)

	start, end = locate("Café Noël", "noël")
	assert.Equal(t, 5, start)
	assert.Equal(t, 9, end)

	start, end = locate("abc", "xyz")
	assert.Equal(t, -1, start)
	assert.Equal(t, -1, end)
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		spans   map[types.Field]types.Span
		trimmed int
		want    float64
	}{
		{
			name: "empty",
			want: 0,
		},
		{
			name: "parties by regex",
			spans: map[types.Field]types.Span{
				types.FieldAddress: regexSpan("a", 0, 1),
				types.FieldBuyer:   regexSpan("b", 0, 1),
				types.FieldSeller:  regexSpan("c", 0, 1),
			},
			want: 0.70,
		},
		{
			name: "fallback penalty",
			spans: map[types.Field]types.Span{
				types.FieldAddress: regexSpan("a", 0, 1),
				types.FieldBuyer:   {Value: "b", Start: -1, End: -1, Confidence: 0.6, Method: types.MethodFallback},
			},
			want: 0.25,
		},
		{
			name: "trim penalty",
			spans: map[types.Field]types.Span{
				types.FieldAddress: regexSpan("a", 0, 1),
				types.FieldDate:    {Value: "2025-01-01", Start: 0, End: 10, Confidence: 0.8, Method: types.MethodDateParser},
			},
			trimmed: 1,
			want:    0.35,
		},
		{
			name: "clamped high",
			spans: map[types.Field]types.Span{
				types.FieldAddress: {Value: "a", Confidence: 1, Method: types.MethodRegex},
				types.FieldBuyer:   {Value: "b", Confidence: 1, Method: types.MethodRegex},
				types.FieldSeller:  {Value: "c", Confidence: 1, Method: types.MethodRegex},
				types.FieldDate:    {Value: "d", Confidence: 1, Method: types.MethodDateParser},
			},
			want: 1,
		},
		{
			name: "clamped low",
			spans: map[types.Field]types.Span{
				types.FieldBuyer: {Value: "b", Start: -1, End: -1, Method: types.MethodFallback},
			},
			trimmed: 3,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFieldSet()
			for f, s := range tt.spans {
				fs[f] = s
			}
			assert.InDelta(t, tt.want, Aggregate(fs, tt.trimmed), 1e-9)
		})
	}
}
