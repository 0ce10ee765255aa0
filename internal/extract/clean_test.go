// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/deedparse/pkg/types"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field types.Field
		want  string
	}{
		{"collapses whitespace", "  123   Main\tSt  ", types.FieldAddress, "123 Main St"},
		{"address leading at", "at 123 Main St", types.FieldAddress, "123 Main St"},
		{"address label", "Address: 9 Elm Street", types.FieldAddress, "9 Elm Street"},
		{"address connector", "123 Main St was sold by John", types.FieldAddress, "123 Main St"},
		{"address date connector", "301 King St date 2026", types.FieldAddress, "301 King St"},
		{"seller is", "seller is John Doe", types.FieldSeller, "John Doe"},
		{"seller from", "from Acme LLC", types.FieldSeller, "Acme LLC"},
		{"seller colon", ": Robert Wilson", types.FieldSeller, "Robert Wilson"},
		{"seller sold by", "sold by John Doe", types.FieldSeller, "John Doe"},
		{"seller grantor", "Grantor: Red Rock Holdings", types.FieldSeller, "Red Rock Holdings"},
		{"buyer is", "Buyer is Jane", types.FieldBuyer, "Jane"},
		{"buyer to", "to Jane Smith", types.FieldBuyer, "Jane Smith"},
		{"buyer keyword cut", "Jane Smith seller John Doe", types.FieldBuyer, "Jane Smith"},
		{"trailing filler", "Jane Smith on the", types.FieldBuyer, "Jane Smith"},
		{"first clause", "John Doe, an individual", types.FieldSeller, "John Doe"},
		{"date label", "Date is 2025-01-01", types.FieldDate, "2025-01-01"},
		{"date on", "on 2025-01-01", types.FieldDate, "2025-01-01"},
		{"all filler falls back", "the", types.FieldBuyer, "the"},
		{"all separators falls back", ", ;", types.FieldSeller, ", ;"},
		{"empty", "", types.FieldAddress, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.raw, tt.field))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"at at 123 Main St to",
		"seller is seller is John",
		"is is is Acme",
		"Jane Smith to the a",
		"address: at 5 Oak Ave, Unit 2; rest",
		"to to to",
		": : : Bob",
		"123 Main St. was sold",
		"Café Noël, Paris",
		"the an a",
		"buyer: Peter Parker | seller: Bruce",
		"on on 2025-01-01",
	}

	for _, in := range inputs {
		for _, f := range types.Fields {
			once := Clean(in, f)
			assert.Equal(t, once, Clean(once, f), "field %s input %q", f, in)
		}
	}
}
