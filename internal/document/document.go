package document

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
)

// Document is an ordered string keyed tree. Values are scalars, nested
// Documents or []any sequences. Insertion order is preserved through Set,
// decoding and encoding so projections can keep the stored key order.
type Document struct {
	keys   []string
	values map[string]any
}

// Entry is a single key/value pair used to build documents literally.
type Entry struct {
	Key   string
	Value any
}

// New returns an empty document.
func New() Document {
	return Document{values: map[string]any{}}
}

// WithCapacity returns an empty document sized for n keys.
func WithCapacity(n int) Document {
	return Document{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Of builds a document from ordered entries. Nested maps and slices are
// converted with FromValue.
func Of(entries ...Entry) Document {
	doc := WithCapacity(len(entries))
	for _, entry := range entries {
		doc.Set(entry.Key, FromValue(entry.Value))
	}
	return doc
}

// Len reports the number of keys.
func (d Document) Len() int {
	return len(d.keys)
}

// Keys returns the keys in order. The slice is a copy.
func (d Document) Keys() []string {
	return slices.Clone(d.keys)
}

// Get returns the value stored under key.
func (d Document) Get(key string) (any, bool) {
	if d.values == nil {
		return nil, false
	}
	value, ok := d.values[key]
	return value, ok
}

// Has reports whether key is present.
func (d Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// String returns the string stored under key, or "" when missing or not a string.
func (d Document) String(key string) string {
	value, _ := d.Get(key)
	s, _ := value.(string)
	return s
}

// Set stores value under key. New keys are appended, existing keys keep their
// position. Plain maps, *Document and typed slices are converted with
// FromValue so nested values are always Documents or []any.
func (d *Document) Set(key string, value any) {
	if d.values == nil {
		d.values = map[string]any{}
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	if needsConversion(value) {
		value = FromValue(value)
	}
	d.values[key] = value
}

// Delete removes key, keeping the order of the remaining keys.
func (d *Document) Delete(key string) {
	if _, exists := d.values[key]; !exists {
		return
	}
	delete(d.values, key)
	if idx := slices.Index(d.keys, key); idx >= 0 {
		d.keys = slices.Delete(d.keys, idx, idx+1)
	}
}

// Range calls fn for each key in order until fn returns false.
func (d Document) Range(fn func(key string, value any) bool) {
	for _, key := range d.keys {
		if !fn(key, d.values[key]) {
			return
		}
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := WithCapacity(len(d.keys))
	for _, key := range d.keys {
		out.Set(key, cloneValue(d.values[key]))
	}
	return out
}

// ToMap converts the document into plain maps, dropping key order.
func (d Document) ToMap() map[string]any {
	out := make(map[string]any, len(d.keys))
	for _, key := range d.keys {
		out[key] = toPlain(d.values[key])
	}
	return out
}

// Equal reports whether both documents hold the same keys in the same order
// with equal values.
func Equal(a, b Document) bool {
	if len(a.keys) != len(b.keys) {
		return false
	}
	for i, key := range a.keys {
		if b.keys[i] != key {
			return false
		}
		if !valuesEqual(a.values[key], b.values[key]) {
			return false
		}
	}
	return true
}

// FromValue converts decoded values (maps, yaml.MapSlice, slices) into the
// Document representation. Scalars are returned unchanged.
func FromValue(value any) any {
	switch typed := value.(type) {
	case Document:
		return typed.Clone()
	case *Document:
		if typed == nil {
			return nil
		}
		return typed.Clone()
	case yaml.MapSlice:
		doc := WithCapacity(len(typed))
		for _, item := range typed {
			doc.Set(fmt.Sprint(item.Key), FromValue(item.Value))
		}
		return doc
	case map[string]any:
		return FromMap(typed)
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, val := range typed {
			converted[fmt.Sprint(key)] = val
		}
		return FromMap(converted)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = FromValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = FromMap(item)
		}
		return out
	case []Document:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item.Clone()
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out
	default:
		return value
	}
}

// FromMap converts a plain map into a Document. Go maps carry no order, so
// keys are sorted to keep the result deterministic.
func FromMap(input map[string]any) Document {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	doc := WithCapacity(len(keys))
	for _, key := range keys {
		doc.Set(key, FromValue(input[key]))
	}
	return doc
}

// MarshalJSON encodes the document as a JSON object in key order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		encodedValue, err := json.Marshal(d.values[key])
		if err != nil {
			return nil, fmt.Errorf("document: encode %q: %w", key, err)
		}
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*d = decoded
	return nil
}

// Value implements driver.Valuer so documents can be stored in JSON columns.
func (d Document) Value() (driver.Value, error) {
	encoded, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner for JSON columns.
func (d *Document) Scan(src any) error {
	switch typed := src.(type) {
	case nil:
		*d = New()
		return nil
	case []byte:
		return d.UnmarshalJSON(typed)
	case string:
		return d.UnmarshalJSON([]byte(typed))
	default:
		return fmt.Errorf("document: cannot scan %T", src)
	}
}

// needsConversion reports whether value holds a container that is not yet in
// Document form. Documents are canonical because Set is their only writer.
func needsConversion(value any) bool {
	switch typed := value.(type) {
	case Document:
		return false
	case []any:
		for _, item := range typed {
			if needsConversion(item) {
				return true
			}
		}
		return false
	case *Document, yaml.MapSlice, map[string]any, map[any]any, []map[string]any, []Document, []string:
		return true
	default:
		return false
	}
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case Document:
		return typed.Clone()
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}

func toPlain(value any) any {
	switch typed := value.(type) {
	case Document:
		return typed.ToMap()
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = toPlain(item)
		}
		return out
	default:
		return value
	}
}

func valuesEqual(a, b any) bool {
	switch left := a.(type) {
	case Document:
		right, ok := b.(Document)
		return ok && Equal(left, right)
	case []any:
		right, ok := b.([]any)
		if !ok || len(left) != len(right) {
			return false
		}
		for i := range left {
			if !valuesEqual(left[i], right[i]) {
				return false
			}
		}
		return true
	default:
		if _, ok := b.(Document); ok {
			return false
		}
		if _, ok := b.([]any); ok {
			return false
		}
		return reflect.DeepEqual(a, b)
	}
}
