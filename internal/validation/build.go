package validation

import (
	"strings"

	"github.com/goliatone/go-better-i18n/internal/fields"
)

// BuildSchema converts an expanded field tree into a JSON schema object.
// Fields with a visibility condition are never required: locale clones are
// only shown, and therefore only filled, for their own locale.
func BuildSchema(expanded []fields.Field) map[string]any {
	properties := map[string]any{}
	required := []string{}
	addFields(properties, &required, expanded)

	schema := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func addFields(properties map[string]any, required *[]string, list []fields.Field) {
	for _, field := range list {
		switch field.Kind() {
		case fields.KindTabs:
			if field.Name != "" {
				properties[field.Name] = objectSchema(tabFields(field))
				continue
			}
			addFields(properties, required, field.Fields)
			for _, tab := range field.Tabs {
				if tab.Name == "" {
					addFields(properties, required, tab.Fields)
					continue
				}
				properties[tab.Name] = objectSchema(tab.Fields)
			}
		case fields.KindContainer:
			if field.Name == "" {
				addFields(properties, required, field.Fields)
				continue
			}
			addProperty(properties, required, field, containerSchema(field))
		default:
			if field.Name == "" {
				continue
			}
			addProperty(properties, required, field, leafSchema(field))
		}
	}
}

func addProperty(properties map[string]any, required *[]string, field fields.Field, schema map[string]any) {
	properties[field.Name] = schema
	if field.Required && !field.Virtual && field.Admin.Condition == nil {
		*required = append(*required, field.Name)
	}
}

func tabFields(field fields.Field) []fields.Field {
	out := append([]fields.Field(nil), field.Fields...)
	for _, tab := range field.Tabs {
		if tab.Name == "" {
			out = append(out, tab.Fields...)
			continue
		}
		out = append(out, fields.Field{Name: tab.Name, Type: "group", Fields: tab.Fields})
	}
	return out
}

func objectSchema(list []fields.Field) map[string]any {
	properties := map[string]any{}
	required := []string{}
	addFields(properties, &required, list)
	schema := map[string]any{
		"type":       []any{"object", "null"},
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func containerSchema(field fields.Field) map[string]any {
	switch strings.ToLower(field.Type) {
	case "array", "blocks":
		items := objectSchema(field.Fields)
		items["type"] = "object"
		return map[string]any{
			"type":  []any{"array", "null"},
			"items": items,
		}
	default:
		return objectSchema(field.Fields)
	}
}

func leafSchema(field fields.Field) map[string]any {
	switch strings.ToLower(field.Type) {
	case "text", "textarea", "email", "code", "date", "radio":
		return map[string]any{"type": []any{"string", "null"}}
	case "select":
		if len(field.Options) == 0 {
			return map[string]any{"type": []any{"string", "null"}}
		}
		values := make([]any, 0, len(field.Options)+2)
		for _, option := range field.Options {
			values = append(values, option.Value)
		}
		values = append(values, "", nil)
		return map[string]any{"enum": values}
	case "number":
		return map[string]any{"type": []any{"number", "null"}}
	case "checkbox":
		return map[string]any{"type": []any{"boolean", "null"}}
	default:
		return map[string]any{}
	}
}
