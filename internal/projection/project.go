package projection

import (
	"strings"

	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/fields"
	"github.com/goliatone/go-better-i18n/internal/locales"
)

type filter struct {
	suffixes []string
	suffix   string
}

// Project reduces a multi-locale record to the single-locale view of locale.
// Keys suffixed with the requested locale are renamed to their base key,
// keys suffixed with any other configured locale are dropped, base keys are
// kept, and the selector slot never appears. Nested documents and sequences
// are walked recursively. The input is never modified.
//
// A locale missing from list is not an error: nothing matches, every
// configured locale key is dropped, and only base keys survive. An empty
// locale means no projection and returns an unchanged copy.
func Project(doc document.Document, list []locales.Locale, locale string) document.Document {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return doc.Clone()
	}
	f := filter{
		suffix:   locales.Suffix(locale),
		suffixes: make([]string, 0, len(list)),
	}
	for code := range locales.CodeSet(list) {
		if code == locale {
			continue
		}
		f.suffixes = append(f.suffixes, locales.Suffix(code))
	}
	return f.document(doc)
}

func (f filter) value(value any) any {
	switch typed := value.(type) {
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = f.value(item)
		}
		return out
	case document.Document:
		return f.document(typed)
	default:
		return value
	}
}

func (f filter) document(doc document.Document) document.Document {
	out := document.WithCapacity(doc.Len())
	doc.Range(func(key string, value any) bool {
		switch {
		case key == fields.SelectorFieldName:
		case strings.HasSuffix(key, f.suffix):
			out.Set(strings.TrimSuffix(key, f.suffix), f.value(value))
		case f.siblingLocale(key):
		default:
			out.Set(key, f.value(value))
		}
		return true
	})
	return out
}

func (f filter) siblingLocale(key string) bool {
	for _, suffix := range f.suffixes {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}
