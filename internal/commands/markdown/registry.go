package markdowncmd

import (
	"errors"

	"github.com/goliatone/go-better-i18n/internal/commands"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

// ErrImporterRequired is returned by RegisterMarkdownCommands for a nil importer.
var ErrImporterRequired = errors.New("markdowncmd: importer is required")

// CommandRegistry receives every handler built by RegisterMarkdownCommands.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// FeatureGates are read on every execution, so toggling a gate takes effect
// without rebuilding the handlers. A nil gate counts as enabled.
type FeatureGates struct {
	MarkdownEnabled func() bool
}

func (g FeatureGates) markdownEnabled() bool {
	return g.MarkdownEnabled == nil || g.MarkdownEnabled()
}

type HandlerSet struct {
	Import *ImportDirectoryHandler
}

type Option func(*registration)

type registration struct {
	importOpts []commands.HandlerOption[ImportDirectoryCommand]
}

// WithImportHandlerOptions is applied after the defaults of the import handler.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportDirectoryCommand]) Option {
	return func(r *registration) {
		r.importOpts = append(r.importOpts, opts...)
	}
}

// RegisterMarkdownCommands builds the markdown handlers on top of importer.
// reg may be nil when the caller only needs the returned set.
func RegisterMarkdownCommands(reg CommandRegistry, importer DirectoryImporter, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if importer == nil {
		return nil, ErrImporterRequired
	}
	var r registration
	for _, opt := range opts {
		if opt != nil {
			opt(&r)
		}
	}

	set := &HandlerSet{
		Import: NewImportDirectoryHandler(importer, commands.CommandLogger(provider, "markdown"), gates, r.importOpts...),
	}
	if reg == nil {
		return set, nil
	}
	if err := reg.RegisterCommand(set.Import); err != nil {
		return nil, err
	}
	return set, nil
}
