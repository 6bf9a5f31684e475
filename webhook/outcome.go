package webhook

/* Outcome is the classification of an inbound webhook request
 * The four client facing classes are never conflated; Failed is the internal error class
 */
type Outcome int

const (
	Processed Outcome = iota + 1
	Ignored
	Malformed
	Unauthorized
	Failed
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Processed:
		return "processed"
	case Ignored:
		return "ignored"
	case Malformed:
		return "malformed"
	case Unauthorized:
		return "unauthorized"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
