package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors returned by Handler.Execute.
const (
	TextCodeValidation      = "I18N_COMMAND_VALIDATION_FAILED"
	TextCodeCanceled        = "I18N_COMMAND_CONTEXT_CANCELED"
	TextCodeDeadline        = "I18N_COMMAND_CONTEXT_TIMEOUT"
	TextCodeExecutionFailed = "I18N_COMMAND_EXECUTION_FAILED"
)

var contextFailures = []struct {
	target  error
	message string
	code    string
}{
	{target: context.Canceled, message: "command execution cancelled", code: TextCodeCanceled},
	{target: context.DeadlineExceeded, message: "command execution deadline exceeded", code: TextCodeDeadline},
}

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(TextCodeValidation)
}

// classify maps an execution result to its telemetry status and the error
// returned to the caller. Errors that already carry a go-errors category are
// returned as they are.
func classify(err error) (TelemetryStatus, error) {
	if err == nil {
		return TelemetryStatusSuccess, nil
	}
	for _, failure := range contextFailures {
		if !errors.Is(err, failure.target) {
			continue
		}
		if goerrors.IsWrapped(err) {
			return TelemetryStatusContextError, err
		}
		return TelemetryStatusContextError, goerrors.Wrap(err, goerrors.CategoryCommand, failure.message).
			WithTextCode(failure.code)
	}
	if goerrors.IsWrapped(err) {
		return TelemetryStatusFailed, err
	}
	return TelemetryStatusFailed, goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(TextCodeExecutionFailed)
}
