package millennium

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_InvoiceNumber(t *testing.T) {
	tests := []struct {
		name  string
		order string
		want  string
		found bool
	}{
		{"lowercase nf", `{"nf": "123"}`, "123", true},
		{"uppercase NF number", `{"NF": 456}`, "456", true},
		{"nota", `{"nota": "789"}`, "789", true},
		{"NOTA", `{"NOTA": "790"}`, "790", true},
		{"NumeroNota", `{"NumeroNota": "791"}`, "791", true},
		{"first match wins", `{"NumeroNota": "2", "nf": "1"}`, "1", true},
		{"empty string skipped", `{"nf": "", "NF": "9"}`, "9", true},
		{"numeric zero skipped", `{"nf": 0, "nota": "10"}`, "10", true},
		{"string zero kept", `{"nf": "0"}`, "0", true},
		{"null skipped", `{"nf": null}`, "", false},
		{"absent", `{"pedidov": 1}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := Order(decodeObject(json.RawMessage(tt.order)))
			got, found := order.InvoiceNumber()
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeList(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		items, err := decodeList([]byte(`[1, 2]`))
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("value envelope", func(t *testing.T) {
		items, err := decodeList([]byte(`{"value": [{}]}`))
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("object without value", func(t *testing.T) {
		items, err := decodeList([]byte(`{"message": "ok"}`))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("empty body", func(t *testing.T) {
		items, err := decodeList(nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := decodeList([]byte(`nope`))
		require.Error(t, err)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("missing fields default", func(t *testing.T) {
		assert.Equal(t, Summary{Customer: "N/A", FinalValue: "N/A"}, summarize(json.RawMessage(`{}`)))
	})

	t.Run("null client", func(t *testing.T) {
		s := summarize(json.RawMessage(`{"cliente": null, "valor_final": "10.00", "produtos": "x"}`))
		assert.Equal(t, Summary{Customer: "N/A", FinalValue: "10.00"}, s)
	})

	t.Run("not an object", func(t *testing.T) {
		assert.Equal(t, Summary{Customer: "N/A", FinalValue: "N/A"}, summarize(json.RawMessage(`42`)))
	})
}
