// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deedparse/internal/extract"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract fields from every line of a file",
	Long: `Batch reads one sentence per line, runs the extraction engine on each
and writes the results, including field offsets, to a YAML file. Blank lines
are skipped. A summary of complete, partial and empty results is printed at
the end.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	_, log, engine, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer in.Close()

	out, _ := cmd.Flags().GetString("out")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := cmd.OutOrStdout()
	summary, err := extract.ExtractAll(ctx, engine, in, out, w)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\ncomplete: %d, partial: %d, empty: %d (results in %s)\n",
		summary.Complete, summary.Partial, summary.Empty, out)
	if summary.HasFailures() {
		return fmt.Errorf("%d of %d sentence(s) yielded no fields", summary.Empty, summary.Total())
	}
	return nil
}

func init() {
	batchCmd.Flags().String("out", "results.yaml", "output YAML file")

	rootCmd.AddCommand(batchCmd)
}
