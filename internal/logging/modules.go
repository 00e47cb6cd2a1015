package logging

import (
	"context"

	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

// Logger names handed to the provider. Every entry also carries the name
// under the "module" field.
const (
	rootModule     = "i18n"
	schemaModule   = "i18n.schema"
	recordsModule  = "i18n.records"
	markdownModule = "i18n.markdown"
)

// ModuleLogger asks provider for the logger of module. A nil provider, or one
// that has nothing for module, yields the no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}
	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if named := provider.GetLogger(module); named != nil {
			logger = named
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

func SchemaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, schemaModule)
}

func RecordsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, recordsModule)
}

func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// NoOp discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Trace(string, ...any)                            {}
func (noopLogger) Debug(string, ...any)                            {}
func (noopLogger) Info(string, ...any)                             {}
func (noopLogger) Warn(string, ...any)                             {}
func (noopLogger) Error(string, ...any)                            {}
func (noopLogger) Fatal(string, ...any)                            {}
func (n noopLogger) WithFields(map[string]any) interfaces.Logger   { return n }
func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
