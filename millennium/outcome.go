package millennium

/* Outcome classifies how an ERP lookup ended
 * Only used for logging and metrics, never surfaced to the webhook caller
 */
type Outcome int

const (
	InvoiceFound Outcome = iota + 1
	NoInvoice
	NotFound
	Skipped
	Failed
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case InvoiceFound:
		return "invoice_found"
	case NoInvoice:
		return "no_invoice"
	case NotFound:
		return "not_found"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
