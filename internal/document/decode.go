package document

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Decode parses a JSON or YAML object into a Document, keeping key order at
// every nesting level. Empty input yields an empty document. A repeated key
// keeps its first position and its last value, as encoding/json does.
func Decode(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}

	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey()); err != nil {
		return Document{}, fmt.Errorf("document: decode: %w", err)
	}
	if raw == nil {
		return New(), nil
	}

	converted := FromValue(raw)
	doc, ok := converted.(Document)
	if !ok {
		return Document{}, fmt.Errorf("document: expected an object, got %T", raw)
	}
	return doc, nil
}

// MustDecode is Decode for literals in tests and fixtures.
func MustDecode(data string) Document {
	doc, err := Decode([]byte(data))
	if err != nil {
		panic(err)
	}
	return doc
}
