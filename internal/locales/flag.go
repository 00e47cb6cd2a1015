package locales

import (
	"strings"

	"golang.org/x/text/language"
)

const regionalIndicatorOffset = 0x1F1A5

// FlagGlyph returns the regional indicator pair for the region carried by
// code (for example "en-gb" yields the GB flag). Codes without an explicit
// region yield an empty string.
func FlagGlyph(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	region, confidence := tag.Region()
	if confidence != language.Exact || !region.IsCountry() {
		return ""
	}
	return regionGlyph(region.String())
}

func regionGlyph(region string) string {
	if len(region) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(region) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(regionalIndicatorOffset + r)
	}
	return b.String()
}
