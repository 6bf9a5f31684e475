package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Payload is the Troquecommerce webhook body as far as this service reads it
type Payload struct {
	// WebhookEventID is the event type code (sent as a number or a string)
	WebhookEventID string

	// ID identifies the reverse order in Troquecommerce
	ID string

	// EcommerceNumber is the originating storefront order number, used for the ERP lookup
	EcommerceNumber string

	Status    string
	CreatedAt string

	// Raw is the body exactly as received
	Raw json.RawMessage
}

type wireFormat struct {
	WebhookEventID  scalar `json:"webhook_event_id"`
	ID              scalar `json:"id"`
	EcommerceNumber scalar `json:"ecommerce_number"`
	Status          scalar `json:"status"`
	CreatedAt       scalar `json:"created_at"`
}

// Parse reads a webhook body. An empty body is treated as "{}".
// Only presence is checked; unknown fields are kept in Raw untouched.
func Parse(data []byte) (Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		data = []byte("{}")
	}
	if data[0] != '{' {
		return Payload{}, fmt.Errorf("payload must be a JSON object")
	}

	var w wireFormat
	if err := json.Unmarshal(data, &w); err != nil {
		return Payload{}, fmt.Errorf("unmarshaling payload: %w", err)
	}

	raw := make(json.RawMessage, len(data))
	copy(raw, data)

	return Payload{
		WebhookEventID:  string(w.WebhookEventID),
		ID:              string(w.ID),
		EcommerceNumber: string(w.EcommerceNumber),
		Status:          string(w.Status),
		CreatedAt:       string(w.CreatedAt),
		Raw:             raw,
	}, nil
}

// EventCode resolves the event type code: the header value wins over the body field.
// Returns "" when neither carries one.
func (p Payload) EventCode(header string) string {
	if header != "" {
		return header
	}
	return p.WebhookEventID
}

/* scalar accepts any JSON value and keeps its textual form, strings unquoted
 * null, false, numeric zero and absent all become ""; numbers are written in their shortest form (6.0 is "6")
 */
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null" || string(data) == "false":
		*s = ""
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalar(str)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*s = scalar(formatNumber(string(data)))
	default:
		// true and nested values keep their JSON text
		*s = scalar(data)
	}
	return nil
}

// formatNumber keeps integer literals verbatim so long order numbers survive,
// and normalizes everything else through float64
func formatNumber(text string) string {
	if !strings.ContainsAny(text, ".eE") {
		if strings.TrimLeft(text, "-0") == "" {
			return ""
		}
		return text
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
