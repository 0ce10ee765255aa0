// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deedparse/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "Extract address, buyer, seller and date from one sentence",
	Long: `Extract runs the extraction engine on a single sentence. The sentence is
taken from the arguments, or from stdin when no arguments are given.

Fields that could not be found are printed empty. Use --json for machine
readable output and --spans to include the character offsets of each field.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := inputText(cmd, args)
	if err != nil {
		return err
	}

	cfg, log, engine, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	result := engine.Extract(text)

	if record, _ := cmd.Flags().GetBool("record"); record {
		store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, _, err := store.Add(context.Background(), text); err != nil {
			return err
		}
	}

	withSpans, _ := cmd.Flags().GetBool("spans")
	if !withSpans {
		result = result.Public()
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(cmd.OutOrStdout(), result, engine.Health(result))
	return nil
}

// inputText joins args or reads stdin.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if cmd.InOrStdin() == os.Stdin && stdinIsTerminal() {
		return "", fmt.Errorf("no text given: pass a sentence as arguments or on stdin")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func printResult(w io.Writer, r types.ExtractionResult, h types.Health) {
	for _, f := range types.Fields {
		line := fmt.Sprintf("%-10s %s", string(f)+":", r.Get(f))
		if s, ok := r.Spans[f]; ok {
			if s == nil {
				line += "  [-]"
			} else {
				line += fmt.Sprintf("  [%d, %d)", s[0], s[1])
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(w, "%-10s %.2f\n", "confidence:", r.Confidence)

	if h.HasIssues {
		var notes []string
		if h.HasEmptyFields {
			notes = append(notes, fmt.Sprintf("%d/%d fields found", h.FilledCount, h.TotalFields))
		}
		if h.IsLowConfidence {
			notes = append(notes, "low confidence")
		}
		fmt.Fprintf(w, "review:    %s\n", strings.Join(notes, ", "))
	}
}

func init() {
	extractCmd.Flags().Bool("json", false, "print the result as JSON")
	extractCmd.Flags().Bool("spans", false, "include field offsets in the output")
	extractCmd.Flags().Bool("record", false, "add the sentence to the history list")

	rootCmd.AddCommand(extractCmd)
}

// stdinIsTerminal reports whether stdin is an interactive terminal.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
