package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/identity"
	"github.com/goliatone/go-better-i18n/internal/locales"
	"github.com/goliatone/go-better-i18n/internal/logging"
	"github.com/goliatone/go-better-i18n/internal/records"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

const (
	defaultBodyField = "body"
	slugKey          = "slug"
)

// Config binds an importer to a collection.
type Config struct {
	Collection string
	// BodyField receives the rendered HTML body. Defaults to "body".
	BodyField string
	Pattern   string
	Render    RenderOptions
}

// ImportOptions tunes a single import run.
type ImportOptions struct {
	// DryRun parses and groups files without writing records.
	DryRun bool
}

// FileError ties an import failure to its source file.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// ImportResult summarises an import run.
type ImportResult struct {
	Files int
	// Records lists the slugs written (or that would be written on a dry run).
	Records []string
	Skipped []string
	Errors  []FileError
}

// Importer loads markdown trees into localized records.
type Importer struct {
	loader  *Loader
	records records.Service
	locales []locales.Locale
	cfg     Config
	render  *Renderer
	logger  interfaces.Logger
}

type ImporterOption func(*Importer)

// WithLogger sets the importer logger.
func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithRenderer replaces the renderer built from Config.Render.
func WithRenderer(r *Renderer) ImporterOption {
	return func(i *Importer) {
		if r != nil {
			i.render = r
		}
	}
}

func NewImporter(filesystem fs.FS, svc records.Service, list []locales.Locale, cfg Config, opts ...ImporterOption) *Importer {
	if strings.TrimSpace(cfg.BodyField) == "" {
		cfg.BodyField = defaultBodyField
	}
	i := &Importer{
		loader:  NewLoader(filesystem, list, cfg.Pattern),
		records: svc,
		locales: list,
		cfg:     cfg,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.render == nil {
		i.render = NewRenderer(cfg.Render)
	}
	return i
}

// Collection returns the collection records are imported into.
func (i *Importer) Collection() string {
	return i.cfg.Collection
}

type localeView struct {
	file SourceFile
	view document.Document
}

// ImportDirectory imports every markdown file under dir. Per-file failures
// are collected in the result; the returned error covers discovery failures
// and cancellation only.
func (i *Importer) ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error) {
	loaded, err := i.loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Files:   len(loaded.Files),
		Skipped: loaded.Skipped,
	}
	for _, skipped := range loaded.Skipped {
		logging.WithRecordContext(i.logger, i.cfg.Collection, "", skipped).Warn("markdown.import.skipped_unknown_locale")
	}

	groups := map[string][]localeView{}
	for _, file := range loaded.Files {
		slugValue, view, err := i.buildView(file)
		if err != nil {
			result.Errors = append(result.Errors, FileError{Path: file.Path, Err: err})
			continue
		}
		groups[slugValue] = append(groups[slugValue], localeView{file: file, view: view})
	}

	slugs := make([]string, 0, len(groups))
	for slugValue := range groups {
		slugs = append(slugs, slugValue)
	}
	sort.Strings(slugs)

	order := map[string]int{}
	for idx, locale := range i.locales {
		order[locale.Code] = idx
	}

	for _, slugValue := range slugs {
		views := groups[slugValue]
		sort.SliceStable(views, func(a, b int) bool {
			return order[views[a].file.Locale] < order[views[b].file.Locale]
		})

		written := false
		for _, entry := range views {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			logger := logging.WithRecordContext(i.logger, i.cfg.Collection, entry.file.Locale, entry.file.Path)
			if opts.DryRun {
				logger.Info("markdown.import.dry_run", "slug", slugValue)
				written = true
				continue
			}
			if _, err := i.records.SaveLocale(ctx, records.SaveLocaleRequest{
				Collection: i.cfg.Collection,
				Slug:       slugValue,
				Locale:     entry.file.Locale,
				ID:         identity.RecordUUID(i.cfg.Collection, slugValue),
				View:       entry.view,
			}); err != nil {
				logger.Error("markdown.import.failed", "error", err)
				result.Errors = append(result.Errors, FileError{Path: entry.file.Path, Err: err})
				continue
			}
			logger.Debug("markdown.import.saved", "slug", slugValue)
			written = true
		}
		if written {
			result.Records = append(result.Records, slugValue)
		}
	}

	logging.WithFields(i.logger, map[string]any{"collection": i.cfg.Collection}).Info("markdown.import.completed",
		"files", result.Files,
		"records", len(result.Records),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors),
	)
	return result, nil
}

// buildView turns a source file into its slug and single-locale view.
func (i *Importer) buildView(file SourceFile) (string, document.Document, error) {
	view := file.Meta.Clone()

	raw := view.String(slugKey)
	view.Delete(slugKey)
	if strings.TrimSpace(raw) == "" {
		raw = slugFromPath(file.Path, file.Locale)
	}
	slugValue, err := slug.Normalize(raw)
	if err != nil || slugValue == "" {
		return "", document.Document{}, fmt.Errorf("invalid slug %q", raw)
	}

	if body := bytes.TrimSpace(file.Body); len(body) > 0 {
		rendered, err := i.render.Render(body)
		if err != nil {
			return "", document.Document{}, err
		}
		view.Set(i.cfg.BodyField, rendered)
	}
	return slugValue, view, nil
}

// slugFromPath derives a slug from the path below the locale directory,
// joining nested directories with dashes.
func slugFromPath(p, locale string) string {
	p = path.Clean(p)
	if idx := strings.Index(p, "/"+locale+"/"); idx >= 0 {
		p = p[idx+len(locale)+2:]
	} else {
		p = strings.TrimPrefix(p, locale+"/")
	}
	p = strings.TrimSuffix(p, path.Ext(p))
	return strings.ReplaceAll(p, "/", "-")
}
