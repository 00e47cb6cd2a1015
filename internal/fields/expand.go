package fields

import (
	"fmt"

	"github.com/goliatone/go-better-i18n/internal/locales"
)

// Expand replaces every localizable field with one clone per locale, in locale
// order, at the position the original occupied. Containers and tabs are
// expanded recursively. Expand expects a tree that already went through Validate.
func Expand(fields []Field, list []locales.Locale) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, 0, len(fields))
	for _, field := range fields {
		if field.Localizable() {
			out = append(out, Localized(field, list)...)
			continue
		}

		expanded := field
		switch field.Kind() {
		case KindContainer:
			expanded.Fields = Expand(field.Fields, list)
		case KindTabs:
			if field.Tabs != nil {
				tabs := make([]Tab, len(field.Tabs))
				for i, tab := range field.Tabs {
					tabs[i] = tab
					tabs[i].Fields = Expand(tab.Fields, list)
				}
				expanded.Tabs = tabs
			}
			if field.Fields != nil {
				expanded.Fields = Expand(field.Fields, list)
			}
		}
		out = append(out, expanded)
	}
	return out
}

// Localized builds the per-locale clones of a single field. Clones share
// every attribute of the original except name, label and visibility.
func Localized(field Field, list []locales.Locale) []Field {
	out := make([]Field, 0, len(list))
	for _, locale := range list {
		clone := field
		clone.Name = locales.Key(field.Name, locale.Code)
		clone.Label = fmt.Sprintf("%s (%s)", field.Label, locale.Label)
		clone.Admin.Condition = Combine(field.Admin.Condition, LocaleIs(locale.Code))
		out = append(out, clone)
	}
	return out
}
