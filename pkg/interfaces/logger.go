package interfaces

import "context"

// Logger is the leveled logging contract shared by every package in the
// module. Its method set matches go-logger so a glog logger satisfies it as is.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out loggers by module name, e.g. "i18n.records".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry structured fields
// across calls.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
