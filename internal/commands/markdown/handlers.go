package markdowncmd

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-better-i18n/internal/commands"
	"github.com/goliatone/go-better-i18n/internal/logging"
	"github.com/goliatone/go-better-i18n/internal/markdown"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const importOperation = "markdown.import_directory"

var (
	// ErrMarkdownFeatureDisabled is returned when the markdown feature flag is off.
	ErrMarkdownFeatureDisabled = errors.New("markdown command: feature disabled")
	// ErrCollectionMismatch is returned when a command targets a collection the importer is not bound to.
	ErrCollectionMismatch = errors.New("markdown command: collection does not match importer")
)

var _ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)

// DirectoryImporter is the importer contract the handler depends on.
type DirectoryImporter interface {
	ImportDirectory(ctx context.Context, dir string, opts markdown.ImportOptions) (*markdown.ImportResult, error)
	Collection() string
}

// ImportDirectoryHandler runs markdown directory imports through the shared
// command handler.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]

	mu   sync.Mutex
	last *markdown.ImportResult
}

func NewImportDirectoryHandler(importer DirectoryImporter, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)
	handler := &ImportDirectoryHandler{}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		if !gates.markdownEnabled() {
			return ErrMarkdownFeatureDisabled
		}
		if target := strings.TrimSpace(msg.Collection); target != "" && target != importer.Collection() {
			return ErrCollectionMismatch
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := importer.ImportDirectory(ctx, msg.Directory, markdown.ImportOptions{DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		handler.mu.Lock()
		handler.last = result
		handler.mu.Unlock()
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"file_count":    result.Files,
				"record_count":  len(result.Records),
				"skipped_count": len(result.Skipped),
				"error_count":   len(result.Errors),
				"dry_run":       msg.DryRun,
			}).Info("markdown.command.import_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory":  msg.Directory,
				"collection": importer.Collection(),
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	handler.inner = commands.NewHandler(exec, handlerOpts...)
	return handler
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LastResult returns the result of the most recent successful import.
func (h *ImportDirectoryHandler) LastResult() *markdown.ImportResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
