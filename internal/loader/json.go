package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"assetmerge/internal/domain"
)

// ParseJSON decodes a JSON array of flat objects. Decoding is token-driven
// rather than map-based so that each object's key order survives into the
// row's column order.
func ParseJSON(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, parseError("json", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, parseError("json", fmt.Errorf("expected top-level array, got %v", tok))
	}

	table := &Table{}
	for dec.More() {
		row, err := decodeObjectRow(dec, table)
		if err != nil {
			return nil, parseError("json", err)
		}
		table.addRow(row)
	}

	return table, nil
}

// decodeObjectRow reads one {...} object, preserving key order
func decodeObjectRow(dec *json.Decoder, table *Table) (domain.Row, error) {
	row := domain.NewRow()

	tok, err := dec.Token()
	if err != nil {
		return row, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return row, fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return row, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return row, fmt.Errorf("expected object key, got %v", keyTok)
		}
		key = strings.TrimSpace(key)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return row, err
		}
		if key == "" {
			continue
		}
		row.Set(key, jsonValue(raw))
		table.addColumn(key)
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return row, err
	}

	return row, nil
}

func jsonValue(raw any) domain.Value {
	if num, ok := raw.(json.Number); ok {
		if f, err := num.Float64(); err == nil {
			return domain.NumberValue(f)
		}
		return domain.StringValue(num.String())
	}
	return domain.ValueOf(raw)
}
