// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the extraction engine,
// the HTTP endpoint and the CLI.
package types

import (
	"fmt"
	"regexp"
	"strings"
)

// Field names one of the four extraction targets. The string values are the
// external contract consumed by the HTTP endpoint and the form filler.
type Field string

const (
	FieldAddress Field = "address"
	FieldBuyer   Field = "buyer"
	FieldSeller  Field = "seller"
	FieldDate    Field = "date"
)

// Fields lists every extraction target in output order.
var Fields = []Field{FieldAddress, FieldBuyer, FieldSeller, FieldDate}

// Method records which extraction stage produced a span's value.
type Method string

const (
	MethodRegex      Method = "regex"
	MethodDateParser Method = "date_parser"
	MethodFallback   Method = "rules_fallback"
	MethodNone       Method = "none"
)

// Span is the extraction result for one field. Start and End are rune
// offsets into the input text; both are -1 when nothing was found.
type Span struct {
	Value      string  `json:"value" yaml:"value"`
	Start      int     `json:"start" yaml:"start"`
	End        int     `json:"end" yaml:"end"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Method     Method  `json:"method" yaml:"method"`
}

// EmptySpan returns the span used for a field with no match.
func EmptySpan() Span {
	return Span{Start: -1, End: -1, Method: MethodNone}
}

// Located reports whether the span points into the source text.
func (s Span) Located() bool {
	return s.Start >= 0 && s.End > s.Start
}

// Range returns the [start, end] pair for debug output, or nil when the
// span is not located.
func (s Span) Range() *[2]int {
	if !s.Located() {
		return nil
	}
	return &[2]int{s.Start, s.End}
}

// ExtractionResult is the orchestrator output. Spans is debug information
// and is stripped before results reach end users.
type ExtractionResult struct {
	Address    string            `json:"address" yaml:"address"`
	Buyer      string            `json:"buyer" yaml:"buyer"`
	Seller     string            `json:"seller" yaml:"seller"`
	Date       string            `json:"date" yaml:"date"`
	Confidence float64           `json:"confidence" yaml:"confidence"`
	Spans      map[Field]*[2]int `json:"_spans,omitempty" yaml:"spans,omitempty"`
}

// EmptyResult is the canonical degraded result: all fields empty, zero
// confidence and every span null.
func EmptyResult() ExtractionResult {
	spans := make(map[Field]*[2]int, len(Fields))
	for _, f := range Fields {
		spans[f] = nil
	}
	return ExtractionResult{Spans: spans}
}

// Get returns the value of field f.
func (r ExtractionResult) Get(f Field) string {
	switch f {
	case FieldAddress:
		return r.Address
	case FieldBuyer:
		return r.Buyer
	case FieldSeller:
		return r.Seller
	case FieldDate:
		return r.Date
	}
	return ""
}

// Public returns a copy of r without debug spans.
func (r ExtractionResult) Public() ExtractionResult {
	r.Spans = nil
	return r
}

// Health summarises how usable a result is for the review UI.
type Health struct {
	HasIssues       bool `json:"has_issues" yaml:"has_issues"`
	HasEmptyFields  bool `json:"has_empty_fields" yaml:"has_empty_fields"`
	IsLowConfidence bool `json:"is_low_confidence" yaml:"is_low_confidence"`
	FilledCount     int  `json:"filled_count" yaml:"filled_count"`
	TotalFields     int  `json:"total_fields" yaml:"total_fields"`
}

// DefaultLowConfidence is the confidence below which a result is flagged.
const DefaultLowConfidence = 0.75

// Health reports empty fields and low confidence. A non-positive threshold
// uses DefaultLowConfidence.
func (r ExtractionResult) Health(threshold float64) Health {
	if threshold <= 0 {
		threshold = DefaultLowConfidence
	}
	h := Health{TotalFields: len(Fields)}
	for _, f := range Fields {
		if strings.TrimSpace(r.Get(f)) != "" {
			h.FilledCount++
		}
	}
	h.HasEmptyFields = h.FilledCount < h.TotalFields
	h.IsLowConfidence = r.Confidence < threshold
	h.HasIssues = h.HasEmptyFields || h.IsLowConfidence
	return h
}

// FormFieldNames maps extraction fields to the document's form-field names.
var FormFieldNames = map[Field]string{
	FieldAddress: "propertyAddress",
	FieldBuyer:   "buyer",
	FieldSeller:  "seller",
	FieldDate:    "date",
}

// FieldValues is a field set as submitted by the form filler or the edit UI.
type FieldValues struct {
	Address string `json:"address" yaml:"address"`
	Buyer   string `json:"buyer" yaml:"buyer"`
	Seller  string `json:"seller" yaml:"seller"`
	Date    string `json:"date" yaml:"date"`
}

// Values returns the four field values of r.
func (r ExtractionResult) Values() FieldValues {
	return FieldValues{Address: r.Address, Buyer: r.Buyer, Seller: r.Seller, Date: r.Date}
}

func (v FieldValues) get(f Field) string {
	switch f {
	case FieldAddress:
		return v.Address
	case FieldBuyer:
		return v.Buyer
	case FieldSeller:
		return v.Seller
	case FieldDate:
		return v.Date
	}
	return ""
}

// ToFormFields maps non-empty values to their form-field names.
func ToFormFields(v FieldValues) map[string]string {
	out := make(map[string]string, len(Fields))
	for _, f := range Fields {
		val := strings.TrimSpace(v.get(f))
		if val == "" {
			continue
		}
		out[FormFieldNames[f]] = val
	}
	return out
}

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateFields checks a field set before it is written into a document:
// at least one field must be set and the date must be YYYY-MM-DD.
func ValidateFields(v FieldValues) []string {
	var errs []string

	hasData := false
	for _, f := range Fields {
		if strings.TrimSpace(v.get(f)) != "" {
			hasData = true
			break
		}
	}
	if !hasData {
		errs = append(errs, fmt.Sprintf("at least one field (%s) must have a value", fieldList()))
	}

	if d := strings.TrimSpace(v.Date); d != "" && !isoDateRe.MatchString(d) {
		errs = append(errs, "date must be in YYYY-MM-DD format")
	}
	return errs
}

func fieldList() string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
