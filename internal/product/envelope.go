package product

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// extractList pulls a product sequence out of whatever envelope the API
// used. The fallback chain is fixed and bounded:
//
//  1. null / empty body    -> empty list
//  2. bare array           -> the array
//  3. {"data": [...]}      -> the data array
//  4. any other object     -> the first array-valued top-level property,
//     in document order
//
// Anything else is a malformed response.
func extractList(raw []byte) ([]Product, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Product{}, nil
	}

	switch trimmed[0] {
	case '[':
		var list []Product
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode product array: %w", err)
		}
		return list, nil
	case '{':
		return extractListFromObject(trimmed)
	default:
		return nil, fmt.Errorf("unexpected list payload: %s", snippet(trimmed))
	}
}

// extractListFromObject decodes the object's product array. An array-valued
// "data" property wins regardless of position; otherwise the top-level
// properties are scanned in document order and the first array-valued one is
// decoded. A json.Decoder token walk is used instead of a map so "first" is
// deterministic.
func extractListFromObject(raw []byte) ([]Product, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	if data := bytes.TrimSpace(envelope.Data); len(data) > 0 && data[0] == '[' {
		var list []Product
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode property %q: %w", "data", err)
		}
		return list, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	if _, err := dec.Token(); err != nil { // opening brace
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode list envelope: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("decode list envelope: non-string key %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode property %q: %w", key, err)
		}
		if trimmed := bytes.TrimSpace(value); len(trimmed) > 0 && trimmed[0] == '[' {
			var list []Product
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, fmt.Errorf("decode property %q: %w", key, err)
			}
			return list, nil
		}
	}
	return nil, fmt.Errorf("no product array in response: %s", snippet(raw))
}

// singleEnvelope is the {message, data} wrapper used by the mutating
// endpoints. Any of the fields may be absent.
type singleEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// extractOne decodes a single product from either a {data: {...}} envelope
// or a bare product object.
func extractOne(raw []byte) (Product, error) {
	var env singleEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && len(bytes.TrimSpace(env.Data)) > 0 {
		var p Product
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return Product{}, fmt.Errorf("decode enveloped product: %w", err)
		}
		return p, nil
	}

	var p Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return Product{}, fmt.Errorf("decode product: %w", err)
	}
	return p, nil
}

func snippet(raw []byte) string {
	const max = 120
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
