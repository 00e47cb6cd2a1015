package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

const (
	fieldCollection = "collection"
	fieldLocale     = "locale"
	fieldPath       = "path"
)

// WithFields returns logger carrying a copy of fields. Loggers without the
// FieldsLogger extension are returned as they are.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	withFields, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return withFields.WithFields(maps.Clone(fields))
}

// WithRecordContext tags logger with the collection, locale and source path
// of the record being processed. Blank values are left out.
func WithRecordContext(logger interfaces.Logger, collection, locale, path string) interfaces.Logger {
	fields := make(map[string]any, 3)
	for key, value := range map[string]string{
		fieldCollection: collection,
		fieldLocale:     locale,
		fieldPath:       path,
	} {
		if value = strings.TrimSpace(value); value != "" {
			fields[key] = value
		}
	}
	return WithFields(logger, fields)
}
