package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/marcelsud/troquecommerce-bridge/config"
	"github.com/marcelsud/troquecommerce-bridge/millennium"
)

/* lookup - runs one ERP lookup for an e-commerce order number, the same one the webhook schedules
 * Usage: go run ./cmd/lookup <ecommerce_number>
 * Exit codes: 0 = lookup completed (any outcome but failed), 1 = failed
 */

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: lookup <ecommerce_number>")
		os.Exit(1)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	logger := cfg.Logger("troquecommerce-lookup")

	client, err := millennium.NewClient(cfg.MillenniumBaseURL, cfg.MillenniumVitrine, &http.Client{Timeout: cfg.LookupTimeout})
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LookupTimeout)
	defer cancel()

	result := millennium.NewLookup(client, logger).Run(ctx, os.Args[1])

	fmt.Printf("Order:    %s\n", result.OrderNumber)
	fmt.Printf("Vitrine:  %s\n", client.Vitrine())
	fmt.Printf("Outcome:  %s\n", result.Outcome)
	if result.Invoice != "" {
		fmt.Printf("Invoice:  %s\n", result.Invoice)
	}
	if result.Summary != nil {
		fmt.Printf("Customer: %s\n", result.Summary.Customer)
		fmt.Printf("Value:    %s\n", result.Summary.FinalValue)
		fmt.Printf("Products: %d\n", result.Summary.Products)
	}
	if result.Err != nil {
		fmt.Fprintf(os.Stderr, "Error:    %v\n", result.Err)
	}
	if result.Outcome == millennium.Failed {
		os.Exit(1)
	}
}
