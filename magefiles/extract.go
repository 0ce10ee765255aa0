//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// sampleSentences exercise the main phrasing styles the engine recognises.
var sampleSentences = []string{
	"The property at 123 Main St was sold by John Doe to Jane Smith on June 15, 2025.",
	"Buyer is Jane. Seller is John. Address 123 Main St. Today's date.",
	"123 Main Street transferred from Acme LLC to Beta Inc.",
	`Buyer: "Peter Parker" | Seller: "Bruce Wayne" | Address: 177A Bleecker St | Date: 05/05/2029`,
	"Grantor: Red Rock Holdings hereby conveys 22 Pine Ct to Blue Lake Ventures effective the 15th day of September, 2026.",
}

// Samples builds the CLI and runs it on a fixed set of sentences.
func Samples() error {
	mg.Deps(Build)
	for _, s := range sampleSentences {
		fmt.Printf("\n> %s\n", s)
		if err := sh.RunV("./"+binDir+"/"+binName, "extract", "--spans", s); err != nil {
			return err
		}
	}
	return nil
}

// Serve builds the CLI and starts the HTTP endpoint on the default address.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV("./"+binDir+"/"+binName, "serve")
}
