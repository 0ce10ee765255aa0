// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deedparse/pkg/types"
)

// BatchSummary holds counts from a batch run.
type BatchSummary struct {
	Complete int
	Partial  int
	Empty    int
}

// Total returns the number of sentences processed.
func (s BatchSummary) Total() int {
	return s.Complete + s.Partial + s.Empty
}

// HasFailures reports whether any sentence yielded no fields at all.
func (s BatchSummary) HasFailures() bool {
	return s.Empty > 0
}

// BatchRecord is one line of a batch run as written to the output file.
type BatchRecord struct {
	Line   int                    `yaml:"line"`
	Text   string                 `yaml:"text"`
	Result types.ExtractionResult `yaml:"result"`
}

// ExtractAll extracts every non-blank line of r and writes the records to
// outPath as YAML. Progress lines go to w. Cancelling ctx stops the run
// between lines; records processed so far are not written.
func ExtractAll(ctx context.Context, e *Engine, r io.Reader, outPath string, w io.Writer) (BatchSummary, error) {
	var (
		summary BatchSummary
		records []BatchRecord
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("batch interrupted at line %d: %w", line, err)
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		result := e.Extract(text)
		h := result.Health(0)
		switch {
		case h.FilledCount == h.TotalFields:
			summary.Complete++
			fmt.Fprintf(w, "complete line %d (confidence %.2f)\n", line, result.Confidence)
		case h.FilledCount == 0:
			summary.Empty++
			fmt.Fprintf(w, "empty    line %d\n", line)
		default:
			summary.Partial++
			fmt.Fprintf(w, "partial  line %d (%d/%d fields, confidence %.2f)\n",
				line, h.FilledCount, h.TotalFields, result.Confidence)
		}

		records = append(records, BatchRecord{Line: line, Text: text, Result: result})
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("reading input: %w", err)
	}

	if err := writeRecords(outPath, records); err != nil {
		return summary, err
	}
	return summary, nil
}

// writeRecords marshals the batch records to a YAML file.
func writeRecords(path string, records []BatchRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if records == nil {
		records = []BatchRecord{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
