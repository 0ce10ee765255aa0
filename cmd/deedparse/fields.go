// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deedparse/pkg/types"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields [text...]",
	Short: "Print the document form fields for one sentence",
	Long: `Fields extracts a sentence and prints the values keyed by the document's
form-field names (propertyAddress, buyer, seller, date). Empty fields are
omitted. The command fails when the extracted values would not pass form
validation.`,
	RunE: runFields,
}

func runFields(cmd *cobra.Command, args []string) error {
	text, err := inputText(cmd, args)
	if err != nil {
		return err
	}

	_, log, engine, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	values := engine.Extract(text).Values()
	if errs := types.ValidateFields(values); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
	}

	fields := types.ToFormFields(values)
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, fields[name])
	}
	return nil
}

func init() {
	fieldsCmd.Flags().Bool("json", false, "print the fields as JSON")

	rootCmd.AddCommand(fieldsCmd)
}
