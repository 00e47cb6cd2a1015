// Package betteri18n adds per-field localization to structured content
// definitions. Localizable fields are expanded into one physical field per
// locale behind a locale selector, and stored records are projected back to a
// single locale on read.
package betteri18n

import (
	"context"
	"errors"

	"github.com/goliatone/go-better-i18n/internal/collections"
	markdowncmd "github.com/goliatone/go-better-i18n/internal/commands/markdown"
	"github.com/goliatone/go-better-i18n/internal/di"
	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/fields"
	"github.com/goliatone/go-better-i18n/internal/i18n"
	"github.com/goliatone/go-better-i18n/internal/locales"
	"github.com/goliatone/go-better-i18n/internal/markdown"
	"github.com/goliatone/go-better-i18n/internal/projection"
	"github.com/goliatone/go-better-i18n/internal/records"
)

// SelectorFieldName is the storage slot of the locale selector.
const SelectorFieldName = fields.SelectorFieldName

// ErrNoLocales aborts a build that resolved no locale.
var ErrNoLocales = locales.ErrNoLocales

// ErrMarkdownDisabled is returned by ImportMarkdown when imports are not configured.
var ErrMarkdownDisabled = errors.New("betteri18n: markdown import is disabled")

type (
	Locale        = locales.Locale
	Field         = fields.Field
	Tab           = fields.Tab
	Custom        = fields.Custom
	Warning       = fields.Warning
	Document      = document.Document
	HostConfig    = collections.Config
	Localization  = collections.Localization
	Collection    = collections.Collection
	Global        = collections.Global
	AfterReadHook = collections.AfterReadHook
	AfterReadArgs = collections.AfterReadArgs
	Report        = i18n.Report

	Record              = records.Record
	RecordService       = records.Service
	ReadOptions         = records.ReadOptions
	CreateRecordRequest = records.CreateRecordRequest
	SaveLocaleRequest   = records.SaveLocaleRequest
	NotFoundError       = records.NotFoundError

	ImportResult = markdown.ImportResult
)

// Apply runs the localization build over host without any storage wiring.
func Apply(host HostConfig) (HostConfig, Report, error) {
	return i18n.NewBuilder().Apply(host)
}

// NormalizeLocales canonicalizes locale configuration.
func NormalizeLocales(input any) []Locale {
	return locales.Normalize(input)
}

// Project reduces a multi-locale record to locale.
func Project(doc Document, list []Locale, locale string) Document {
	return projection.Project(doc, list, locale)
}

// Merge writes a single-locale view into a copy of the stored record.
func Merge(stored, view Document, schema []Field, locale string) Document {
	return projection.Merge(stored, view, schema, locale)
}

// DecodeDocument parses JSON or YAML into an ordered document.
func DecodeDocument(data []byte) (Document, error) {
	return document.Decode(data)
}

// Module is the runtime facade over the localized schema, record storage and
// markdown imports.
type Module struct {
	container *di.Container
}

// New validates cfg, applies the localization build to host and wires storage.
func New(cfg Config, host HostConfig, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, host, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Collections returns the host config after locale expansion.
func (m *Module) Collections() HostConfig {
	return m.container.Collections()
}

func (m *Module) Report() Report {
	return m.container.Report()
}

func (m *Module) Locales() []Locale {
	return m.container.Report().Locales
}

// Records returns the record service.
func (m *Module) Records() RecordService {
	return m.container.RecordService()
}

// ImportMarkdown imports a per-locale markdown tree through the markdown
// command handler.
func (m *Module) ImportMarkdown(ctx context.Context, dir string, dryRun bool) (*ImportResult, error) {
	handlers := m.container.MarkdownCommands()
	if handlers == nil || handlers.Import == nil {
		return nil, ErrMarkdownDisabled
	}
	if err := handlers.Import.Execute(ctx, markdowncmd.ImportDirectoryCommand{
		Directory: dir,
		DryRun:    dryRun,
	}); err != nil {
		return nil, err
	}
	return handlers.Import.LastResult(), nil
}

// Close releases resources the module opened.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
