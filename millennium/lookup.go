package millennium

import (
	"context"

	"github.com/rs/zerolog"
)

// Searcher is the part of the ERP client used by Lookup
type Searcher interface {
	SearchOrders(ctx context.Context, ecommerceNumber string) ([]Order, error)
	Invoices(ctx context.Context, invoiceNumber string) ([]Summary, error)
}

// Result is what one lookup found
type Result struct {
	Outcome     Outcome
	OrderNumber string
	Invoice     string
	// Summary is nil unless the invoice detail call succeeded with at least one record
	Summary *Summary
	Err     error
}

/* Lookup cross-references a storefront order number against the ERP
 * Best effort: one attempt per call, every failure is logged and folded into the Result
 */
type Lookup struct {
	erp    Searcher
	logger zerolog.Logger
}

func NewLookup(erp Searcher, logger zerolog.Logger) *Lookup {
	return &Lookup{
		erp:    erp,
		logger: logger.With().Str("component", "millennium-lookup").Logger(),
	}
}

// Run searches the order, then the invoice details when the order already has an invoice
func (l *Lookup) Run(ctx context.Context, orderNumber string) Result {
	log := l.logger.With().Str("ecommerce_number", orderNumber).Logger()
	result := Result{OrderNumber: orderNumber}

	if orderNumber == "" {
		log.Info().Msg("no ecommerce_number in payload, skipping ERP lookup")
		result.Outcome = Skipped
		return result
	}

	orders, err := l.erp.SearchOrders(ctx, orderNumber)
	if err != nil {
		log.Error().Err(err).Msg("error searching order in Millennium")
		result.Outcome = Failed
		result.Err = err
		return result
	}
	if len(orders) == 0 {
		log.Info().Msg("order not found in Millennium")
		result.Outcome = NotFound
		return result
	}

	invoice, ok := orders[0].InvoiceNumber()
	if !ok || invoice == noInvoice {
		log.Info().Msg("order found in Millennium, invoice not issued yet")
		result.Outcome = NoInvoice
		return result
	}

	result.Outcome = InvoiceFound
	result.Invoice = invoice
	log = log.With().Str("invoice", invoice).Logger()
	log.Info().Msg("invoice found for order")

	summaries, err := l.erp.Invoices(ctx, invoice)
	if err != nil {
		log.Warn().Err(err).Msg("error fetching invoice details")
		result.Err = err
		return result
	}
	if len(summaries) == 0 {
		log.Info().Msg("invoice details empty")
		return result
	}

	summary := summaries[0]
	result.Summary = &summary
	log.Info().
		Str("customer", summary.Customer).
		Str("final_value", summary.FinalValue).
		Int("products", summary.Products).
		Msg("invoice details")
	return result
}
