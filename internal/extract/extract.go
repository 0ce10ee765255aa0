// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls the property address, buyer, seller and date out of
// a single real-estate sentence.
//
// The pipeline is linear: match each field against the pattern catalog,
// resolve overlapping spans by field priority, fill remaining gaps with a
// looser second pass, aggregate a confidence score and format the result.
// Any fault inside the pipeline yields the canonical empty result.
package extract

import (
	"go.uber.org/zap"

	"github.com/pdiddy/deedparse/internal/dates"
	"github.com/pdiddy/deedparse/internal/patterns"
	"github.com/pdiddy/deedparse/pkg/types"
)

// FieldSet maps each field to its current span. Sets built by NewFieldSet
// always hold all four fields.
type FieldSet map[types.Field]types.Span

// NewFieldSet returns a set with every field empty.
func NewFieldSet() FieldSet {
	fs := make(FieldSet, len(types.Fields))
	for _, f := range types.Fields {
		fs[f] = types.EmptySpan()
	}
	return fs
}

// DateFinder locates and normalises a date expression. *dates.Parser
// implements it; tests substitute their own.
type DateFinder interface {
	Find(text string) (dates.Match, bool)
	Parse(text string) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. A nil logger discards output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithDateFinder replaces the date parser.
func WithDateFinder(d DateFinder) Option {
	return func(e *Engine) {
		if d != nil {
			e.dates = d
		}
	}
}

// Engine runs the extraction pipeline. An Engine holds no per-call state
// and is safe for concurrent use.
type Engine struct {
	cfg     types.EngineConfig
	catalog *patterns.Catalog
	dates   DateFinder
	log     *zap.Logger
}

// New builds an engine from cfg.
func New(cfg types.EngineConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		catalog: patterns.New(cfg.MatchTimeout),
		dates:   dates.New(cfg.MatchTimeout),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the full pipeline on text. It never panics; on an internal
// fault it logs the failure and returns types.EmptyResult().
func (e *Engine) Extract(text string) types.ExtractionResult {
	return e.failClosed(func() types.ExtractionResult {
		return e.run(text)
	})
}

// Health reports empty fields and low confidence against the engine's
// configured threshold.
func (e *Engine) Health(r types.ExtractionResult) types.Health {
	return r.Health(e.cfg.LowConfidence)
}

// failClosed is the single recovery boundary of the pipeline.
func (e *Engine) failClosed(run func() types.ExtractionResult) (result types.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("extraction failed, returning empty result",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			result = types.EmptyResult()
		}
	}()
	return run()
}

func (e *Engine) run(text string) types.ExtractionResult {
	text = e.bound(text)

	fs := NewFieldSet()
	for _, f := range []types.Field{types.FieldAddress, types.FieldBuyer, types.FieldSeller} {
		fs[f] = e.matchField(text, f)
	}
	fs[types.FieldDate] = e.extractDateWithSpan(text)

	fs, trimmed := Resolve(fs, text)
	if trimmed > 0 {
		e.log.Debug("overlapping spans trimmed", zap.Int("trimmed", trimmed))
	}

	fs = e.fillGaps(text, fs)
	confidence := Aggregate(fs, trimmed)

	e.log.Debug("extraction complete",
		zap.Float64("confidence", confidence),
		zap.Int("runes", len([]rune(text))),
	)
	return format(fs, confidence)
}

// bound truncates text to the configured rune limit. Offsets into the
// prefix are valid offsets into the original.
func (e *Engine) bound(text string) string {
	if e.cfg.MaxInputRunes <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= e.cfg.MaxInputRunes {
		return text
	}
	e.log.Warn("input truncated",
		zap.Int("runes", len(runes)),
		zap.Int("limit", e.cfg.MaxInputRunes),
	)
	return string(runes[:e.cfg.MaxInputRunes])
}

func format(fs FieldSet, confidence float64) types.ExtractionResult {
	r := types.ExtractionResult{
		Address:    fs[types.FieldAddress].Value,
		Buyer:      fs[types.FieldBuyer].Value,
		Seller:     fs[types.FieldSeller].Value,
		Date:       fs[types.FieldDate].Value,
		Confidence: confidence,
		Spans:      make(map[types.Field]*[2]int, len(types.Fields)),
	}
	for _, f := range types.Fields {
		r.Spans[f] = fs[f].Range()
	}
	return r
}
