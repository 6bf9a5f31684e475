package millennium

import "encoding/json"

const notAvailable = "N/A"

// Summary is the part of an invoice that gets logged
type Summary struct {
	Customer   string
	FinalValue string
	Products   int
}

// summarize reads cliente.nome, valor_final and len(produtos), tolerating any of them missing
func summarize(item json.RawMessage) Summary {
	obj := decodeObject(item)
	s := Summary{
		Customer:   notAvailable,
		FinalValue: notAvailable,
	}

	if cliente, ok := obj["cliente"].(map[string]any); ok {
		if nome, ok := present(cliente["nome"]); ok {
			s.Customer = nome
		}
	}
	if valor, ok := present(obj["valor_final"]); ok {
		s.FinalValue = valor
	}
	if produtos, ok := obj["produtos"].([]any); ok {
		s.Products = len(produtos)
	}
	return s
}
