package main

import (
	"fmt"
	"os"

	"github.com/marcelsud/troquecommerce-bridge/config"
	"github.com/marcelsud/troquecommerce-bridge/webhook"
)

/* catalog - prints the Troquecommerce event catalog and checks ACCEPTED_EVENTS against it
 * Usage: go run ./cmd/catalog [accepted events, e.g. "6,21,3"]
 * Exit codes: 0 = valid, 1 = invalid allow-list
 */

func main() {
	accepted := ""
	if len(os.Args) > 1 {
		accepted = os.Args[1]
	} else {
		cfg, err := config.GetConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		accepted = cfg.AcceptedEvents
	}

	allow, err := webhook.ParseAllowList(accepted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "INVALID ALLOW-LIST\n\nError: %v\n", err)
		os.Exit(1)
	}

	entries := webhook.Catalog()
	fmt.Printf("Troquecommerce events (%d), accepted: %s\n\n", len(entries), accepted)
	for _, e := range entries {
		mark := " "
		if allow.Accepts(e.Code) {
			mark = "x"
		}
		fmt.Printf("[%s] %3s  %s\n", mark, e.Code, e.Label)
	}

	var unknown []string
	for _, code := range allow.Codes() {
		if !webhook.Known(code) {
			unknown = append(unknown, code)
		}
	}
	if len(unknown) > 0 {
		fmt.Fprintf(os.Stderr, "\nAccepted codes not in the catalog: %v\n", unknown)
		os.Exit(1)
	}
	fmt.Printf("\nAll accepted codes are known.\n")
}
