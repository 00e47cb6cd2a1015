package fields

import (
	"strings"

	"github.com/goliatone/go-better-i18n/internal/locales"
)

// LocaleSelector builds the sidebar select control that drives which locale
// clones are visible in the editor.
func LocaleSelector(list []locales.Locale, defaultCode string) Field {
	options := make([]Option, len(list))
	for i, locale := range list {
		options[i] = Option{
			Label: strings.TrimSpace(locale.Label + " " + locales.FlagGlyph(locale.Code)),
			Value: locale.Code,
		}
	}
	return Field{
		Name:         SelectorFieldName,
		Label:        "Language",
		Type:         "select",
		Virtual:      true,
		DefaultValue: defaultCode,
		Options:      options,
		Admin: Admin{
			Position: "sidebar",
		},
	}
}
