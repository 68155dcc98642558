// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

import (
	"bytes"
	"encoding/json"
)

// SymbolItem is a catalog hit returned by /api/search.
type SymbolItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ListedSymbol is one row of GET /symbols.
type ListedSymbol struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market"`
	Ticker string `json:"ticker"`
}

// PopularResponse marshals to a JSON object {code: name} that keeps the catalog order.
type PopularResponse []SymbolItem

// MarshalJSON implements json.Marshaler.
func (p PopularResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, it := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(it.Code)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(it.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
