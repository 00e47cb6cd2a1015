package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-better-i18n/internal/logging"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

// TelemetryStatus is the outcome class of one execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to the telemetry callback after every execution.
// Error holds the unwrapped error returned by the command function.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry observes command outcomes. It replaces the handler's own
// success/failure log lines when set.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs one line per execution: info on success, error
// otherwise, always with the elapsed milliseconds.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		elapsed := info.Duration.Milliseconds()
		if info.Status == TelemetryStatusSuccess {
			entry.Info("command.execute."+string(info.Status), "duration_ms", elapsed)
			return
		}
		entry.Error("command.execute."+string(info.Status), "duration_ms", elapsed, "error", info.Error)
	}
}
