package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-better-i18n/internal/logging"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

// DefaultCommandTimeout bounds one Execute call unless WithTimeout says otherwise.
const DefaultCommandTimeout = 30 * time.Second

// commandContext derives the execution context of a single command. A nil
// parent is treated as context.Background and a non-positive timeout leaves
// the deadline of the parent untouched.
func commandContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// EnsureLogger substitutes the no-op logger for nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
