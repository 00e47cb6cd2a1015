package locales

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNoLocalesCode tags configuration errors raised when no locale is available.
const ErrNoLocalesCode = "I18N_NO_LOCALES"

// ErrNoLocales aborts a configuration build that resolved zero locales.
var ErrNoLocales = goerrors.New("no locales available for i18n", goerrors.CategoryValidation).
	WithTextCode(ErrNoLocalesCode)

// Locale is a configured locale. Code is the suffix used for locale keys.
type Locale struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

// Normalize canonicalizes host locale configuration into an ordered list of
// Locale values. Accepted inputs are []string, []Locale, lists of
// {code,label} maps, and []any mixing strings and maps as produced by config
// decoders. Codes are trimmed and entries without a code are skipped. Labels
// default to the code. Order is preserved; duplicates are not removed.
func Normalize(input any) []Locale {
	switch typed := input.(type) {
	case nil:
		return []Locale{}
	case []Locale:
		return collect(typed)
	case []string:
		return collect(typed)
	case []map[string]any:
		return collect(typed)
	case []map[string]string:
		return collect(typed)
	case []map[any]any:
		return collect(typed)
	case []any:
		return collect(typed)
	default:
		return []Locale{}
	}
}

func collect[T any](entries []T) []Locale {
	out := make([]Locale, 0, len(entries))
	for _, entry := range entries {
		if locale, ok := fromEntry(entry); ok {
			out = append(out, locale)
		}
	}
	return out
}

// Require normalizes input and fails with ErrNoLocales when no entry carries a
// usable code.
func Require(input any) ([]Locale, error) {
	normalized := Normalize(input)
	if len(normalized) == 0 {
		return nil, ErrNoLocales
	}
	return normalized, nil
}

// Codes returns the locale codes in order.
func Codes(list []Locale) []string {
	out := make([]string, len(list))
	for i, locale := range list {
		out[i] = locale.Code
	}
	return out
}

// CodeSet returns the locale codes as a lookup set.
func CodeSet(list []Locale) map[string]struct{} {
	out := make(map[string]struct{}, len(list))
	for _, locale := range list {
		out[locale.Code] = struct{}{}
	}
	return out
}

// Find returns the locale with the given code.
func Find(list []Locale, code string) (Locale, bool) {
	for _, locale := range list {
		if locale.Code == code {
			return locale, true
		}
	}
	return Locale{}, false
}

// Suffix returns the key suffix used for code.
func Suffix(code string) string {
	return "_" + code
}

// Key joins a base key with a locale code.
func Key(base, code string) string {
	return base + Suffix(code)
}

func fromEntry(entry any) (Locale, bool) {
	switch typed := entry.(type) {
	case string:
		return fromFields(typed, nil)
	case Locale:
		return fromFields(typed.Code, typed.Label)
	case map[string]any:
		return fromFields(typed["code"], typed["label"])
	case map[string]string:
		return fromFields(typed["code"], typed["label"])
	case map[any]any:
		return fromFields(typed["code"], typed["label"])
	case interface{ Get(string) (any, bool) }:
		code, _ := typed.Get("code")
		label, _ := typed.Get("label")
		return fromFields(code, label)
	default:
		return Locale{}, false
	}
}

func fromFields(code, label any) (Locale, bool) {
	if code == nil {
		return Locale{}, false
	}
	locale := Locale{Code: strings.TrimSpace(fmt.Sprint(code))}
	if locale.Code == "" {
		return Locale{}, false
	}
	if label != nil {
		locale.Label = strings.TrimSpace(fmt.Sprint(label))
	}
	if locale.Label == "" {
		locale.Label = locale.Code
	}
	return locale, true
}
