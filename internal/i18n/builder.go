package i18n

import (
	"context"
	"strings"

	"github.com/goliatone/go-better-i18n/internal/collections"
	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/fields"
	"github.com/goliatone/go-better-i18n/internal/locales"
	"github.com/goliatone/go-better-i18n/internal/logging"
	"github.com/goliatone/go-better-i18n/internal/projection"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

// Report summarises what Apply changed.
type Report struct {
	Locales       []locales.Locale
	DefaultLocale string
	Warnings      []fields.Warning
	// Localized lists the slugs of collections and globals that received locale fields.
	Localized []string
}

// Builder rewrites a host content config so localizable fields are stored
// once per locale and reads can be projected back to a single locale.
type Builder struct {
	enabled  bool
	fallback *collections.Localization
	logger   interfaces.Logger
}

type BuilderOption func(*Builder)

// WithEnabled toggles the builder. A disabled builder returns the host config untouched.
func WithEnabled(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.enabled = enabled
	}
}

// WithLogger sets the logger used to report field warnings.
func WithLogger(logger interfaces.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithConfig supplies locales used when the host config has no localization block.
func WithConfig(cfg Config) BuilderOption {
	return func(b *Builder) {
		b.fallback = cfg.Localization()
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		enabled: true,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Enabled reports whether Apply transforms configs.
func (b *Builder) Enabled() bool {
	return b.enabled
}

// Apply returns a copy of host with localizable fields expanded and the
// locale selector attached. Collections without localizable fields are left
// untouched. Localized collections gain an after-read hook that projects
// records onto the requested locale.
func (b *Builder) Apply(host collections.Config) (collections.Config, Report, error) {
	if !b.enabled {
		return host, Report{}, nil
	}

	localization := host.Localization
	if localization == nil {
		localization = b.fallback
	}
	if localization == nil {
		b.logger.Error("i18n.locales.missing")
		return host, Report{}, locales.ErrNoLocales
	}

	list, err := locales.Require(localization.Locales)
	if err != nil {
		b.logger.Error("i18n.locales.empty")
		return host, Report{}, err
	}

	defaultLocale := strings.TrimSpace(localization.DefaultLocale)
	if defaultLocale == "" {
		defaultLocale = list[0].Code
	}

	report := Report{
		Locales:       list,
		DefaultLocale: defaultLocale,
	}
	selector := fields.LocaleSelector(list, defaultLocale)

	out := collections.Config{
		Localization: &collections.Localization{
			Locales:       list,
			DefaultLocale: defaultLocale,
		},
	}

	if host.Collections != nil {
		out.Collections = make([]collections.Collection, len(host.Collections))
	}
	for i, collection := range host.Collections {
		validated, warnings := fields.Validate(collection.Fields, false)
		b.warn(collection.Slug, warnings)
		report.Warnings = append(report.Warnings, warnings...)

		if !fields.HasLocalizable(validated) {
			out.Collections[i] = collection
			continue
		}

		withSelector := append(append(make([]fields.Field, 0, len(validated)+1), validated...), selector)
		collection.Logical = validated
		collection.Fields = fields.Expand(withSelector, list)
		collection.Hooks = collection.Hooks.WithAfterRead(ProjectionHook(list))
		out.Collections[i] = collection
		report.Localized = append(report.Localized, collection.Slug)
	}

	if host.Globals != nil {
		out.Globals = make([]collections.Global, len(host.Globals))
	}
	for i, global := range host.Globals {
		validated, warnings := fields.Validate(global.Fields, false)
		b.warn(global.Slug, warnings)
		report.Warnings = append(report.Warnings, warnings...)

		if !fields.HasLocalizable(validated) {
			out.Globals[i] = global
			continue
		}

		expanded := fields.Expand(validated, list)
		global.Logical = validated
		global.Fields = append(expanded, selector)
		out.Globals[i] = global
		report.Localized = append(report.Localized, global.Slug)
	}

	b.logger.Debug("i18n.config.applied",
		"locales", locales.Codes(list),
		"default_locale", defaultLocale,
		"localized", len(report.Localized),
		"warnings", len(report.Warnings),
	)

	return out, report, nil
}

func (b *Builder) warn(slug string, warnings []fields.Warning) {
	for _, warning := range warnings {
		logging.WithFields(b.logger, map[string]any{
			"definition": slug,
			"field":      warning.Field,
			"path":       warning.Path,
		}).Warn("i18n.field.localizable_ignored", "message", warning.Message)
	}
}

// ProjectionHook returns the after-read hook that reduces a stored record to
// the requested locale. Reads without a locale are returned unmodified.
func ProjectionHook(list []locales.Locale) collections.AfterReadHook {
	return func(_ context.Context, args collections.AfterReadArgs) (document.Document, error) {
		if args.Locale == "" {
			return args.Doc, nil
		}
		return projection.Project(args.Doc, list, args.Locale), nil
	}
}
