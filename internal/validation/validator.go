package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/fields"
)

const schemaResource = "record.schema.json"

// Validator checks stored records of one collection. Build it once per
// expanded field tree; Validate is safe for concurrent use.
type Validator struct {
	schema   map[string]any
	compiled *jsonschema.Schema
}

func NewValidator(expanded []fields.Field) (*Validator, error) {
	schema := BuildSchema(expanded)
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResource, bytes.NewReader(encoded)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Validator{schema: schema, compiled: compiled}, nil
}

// Schema returns a deep copy of the generated JSON schema.
func (v *Validator) Schema() map[string]any {
	if v == nil {
		return nil
	}
	return deepCopy(v.schema).(map[string]any)
}

// Validate returns a *DocumentError when doc breaks the schema. A nil
// validator accepts every document.
func (v *Validator) Validate(doc document.Document) error {
	if v == nil || v.compiled == nil {
		return nil
	}
	instance, err := jsonInstance(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := v.compiled.Validate(instance); err != nil {
		return &DocumentError{Issues: Issues(err), Cause: err}
	}
	return nil
}

// ValidateDocument compiles a throwaway validator for expanded.
func ValidateDocument(expanded []fields.Field, doc document.Document) error {
	validator, err := NewValidator(expanded)
	if err != nil {
		return err
	}
	return validator.Validate(doc)
}

// jsonInstance re-reads doc through encoding/json with UseNumber so the
// validator sees json.Number instead of the integer types YAML decoding
// produces.
func jsonInstance(doc document.Document) (any, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var instance any
	if err := decoder.Decode(&instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := maps.Clone(typed)
		for key, item := range out {
			out[key] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = deepCopy(item)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	default:
		return value
	}
}
