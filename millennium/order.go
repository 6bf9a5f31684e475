package millennium

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// invoiceFields are tried in order, first non-empty value wins
var invoiceFields = []string{"nf", "NF", "nota", "NOTA", "NumeroNota"}

// noInvoice is what the ERP reports while the invoice has not been issued
const noInvoice = "0"

// Order is one row of PEDIDO_VENDA.Lista_Data; the schema is not documented so it stays untyped
type Order map[string]any

// InvoiceNumber returns the first non-empty invoice field.
// "0" is returned as is; callers treat it as "no invoice yet".
func (o Order) InvoiceNumber() (string, bool) {
	for _, field := range invoiceFields {
		if v, ok := present(o[field]); ok {
			return v, true
		}
	}
	return "", false
}

// present converts a JSON value to text when it is neither empty, zero, false nor null
func present(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case json.Number:
		if f, err := val.Float64(); err == nil && f == 0 {
			return "", false
		}
		return val.String(), true
	case float64:
		if val == 0 {
			return "", false
		}
		return fmt.Sprint(val), true
	case bool:
		if !val {
			return "", false
		}
		return "true", true
	default:
		return fmt.Sprint(val), true
	}
}

// decodeList accepts either a top-level array or an OData style {"value": [...]} envelope.
// Anything else decodes to an empty list.
func decodeList(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decoding list: %w", err)
		}
		return items, nil
	case '{':
		var envelope struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("decoding envelope: %w", err)
		}
		value := bytes.TrimSpace(envelope.Value)
		if len(value) == 0 || value[0] != '[' {
			return nil, nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil {
			return nil, fmt.Errorf("decoding value list: %w", err)
		}
		return items, nil
	default:
		if !json.Valid(data) {
			return nil, fmt.Errorf("decoding list: invalid JSON")
		}
		return nil, nil
	}
}

// decodeObject reads a list element as a JSON object; non-objects yield an empty map
func decodeObject(item json.RawMessage) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return map[string]any{}
	}
	if obj == nil {
		return map[string]any{}
	}
	return obj
}
