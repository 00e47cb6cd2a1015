package i18n

import (
	"strings"

	"github.com/goliatone/go-better-i18n/internal/collections"
)

// Config carries locale settings supplied by the module configuration rather
// than by the host content config.
type Config struct {
	DefaultLocale string
	Locales       []string
}

func FromModuleConfig(defaultLocale string, locales []string) Config {
	return Config{
		DefaultLocale: defaultLocale,
		Locales:       locales,
	}
}

// Localization converts the module settings into a host localization block.
// It returns nil when no locale is configured.
func (c Config) Localization() *collections.Localization {
	codes := make([]any, 0, len(c.Locales))
	for _, code := range c.Locales {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			codes = append(codes, trimmed)
		}
	}
	if len(codes) == 0 {
		return nil
	}
	return &collections.Localization{
		Locales:       codes,
		DefaultLocale: strings.TrimSpace(c.DefaultLocale),
	}
}
