package projection

import (
	"strings"

	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/fields"
	"github.com/goliatone/go-better-i18n/internal/locales"
)

// Localize turns a single-locale view into the physical keys of locale by
// suffixing every value that belongs to a localizable field of schema. The
// schema is the logical tree, before expansion. Keys not described by the
// schema are copied unchanged.
func Localize(view document.Document, schema []fields.Field, locale string) document.Document {
	return localizeLevel(view, schema, locale)
}

// Merge writes the values of a single-locale view into a copy of the stored
// multi-locale record. Values of other locales and keys missing from view are
// kept as stored. An empty locale writes nothing.
func Merge(stored, view document.Document, schema []fields.Field, locale string) document.Document {
	out := stored.Clone()
	if strings.TrimSpace(locale) == "" {
		return out
	}
	mergeLevel(&out, Localize(view, schema, locale), schema, locale)
	out.Delete(fields.SelectorFieldName)
	return out
}

func localizeLevel(view document.Document, schema []fields.Field, locale string) document.Document {
	index := indexLevel(schema)
	out := document.WithCapacity(view.Len())
	view.Range(func(key string, value any) bool {
		if key == fields.SelectorFieldName {
			return true
		}
		field, described := index.fields[key]
		switch {
		case !described:
			out.Set(key, value)
		case field.Localizable():
			out.Set(locales.Key(key, locale), value)
		default:
			out.Set(key, localizeValue(value, index.children[key], locale))
		}
		return true
	})
	return out
}

func localizeValue(value any, children []fields.Field, locale string) any {
	switch typed := value.(type) {
	case document.Document:
		return localizeLevel(typed, children, locale)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = localizeValue(item, children, locale)
		}
		return out
	default:
		return value
	}
}

func mergeLevel(stored *document.Document, localized document.Document, schema []fields.Field, locale string) {
	index := indexLevel(schema)
	localized.Range(func(key string, value any) bool {
		field, described := index.fields[key]
		if !described || field.Localizable() {
			stored.Set(key, value)
			return true
		}
		existing, _ := stored.Get(key)
		stored.Set(key, mergeValue(existing, value, index.children[key], locale))
		return true
	})
}

func mergeValue(existing, incoming any, children []fields.Field, locale string) any {
	switch typed := incoming.(type) {
	case document.Document:
		current, ok := existing.(document.Document)
		if !ok {
			return typed
		}
		merged := current.Clone()
		mergeLevel(&merged, typed, children, locale)
		return merged
	case []any:
		current, _ := existing.([]any)
		out := make([]any, len(typed))
		for i, item := range typed {
			var prior any
			if i < len(current) {
				prior = current[i]
			}
			out[i] = mergeValue(prior, item, children, locale)
		}
		return out
	default:
		return incoming
	}
}

type level struct {
	fields   map[string]fields.Field
	children map[string][]fields.Field
}

// indexLevel maps the data keys of one document level to their fields.
// Unnamed structural nodes and unnamed tabs contribute their children to the
// same level; named tabs and named containers open a nested level.
func indexLevel(schema []fields.Field) level {
	idx := level{
		fields:   map[string]fields.Field{},
		children: map[string][]fields.Field{},
	}
	var add func(list []fields.Field)
	add = func(list []fields.Field) {
		for _, field := range list {
			switch field.Kind() {
			case fields.KindTabs:
				if field.Name != "" {
					idx.fields[field.Name] = field
					idx.children[field.Name] = tabsAsFields(field)
					continue
				}
				add(field.Fields)
				for _, tab := range field.Tabs {
					if tab.Name == "" {
						add(tab.Fields)
						continue
					}
					idx.fields[tab.Name] = fields.Field{Name: tab.Name, Type: "group", Fields: tab.Fields}
					idx.children[tab.Name] = tab.Fields
				}
			case fields.KindContainer:
				if field.Name == "" {
					add(field.Fields)
					continue
				}
				idx.fields[field.Name] = field
				idx.children[field.Name] = field.Fields
			default:
				if field.Name != "" {
					idx.fields[field.Name] = field
				}
			}
		}
	}
	add(schema)
	return idx
}

func tabsAsFields(field fields.Field) []fields.Field {
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
