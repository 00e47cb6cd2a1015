package di_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-better-i18n/internal/collections"
	markdowncmd "github.com/goliatone/go-better-i18n/internal/commands/markdown"
	"github.com/goliatone/go-better-i18n/internal/di"
	"github.com/goliatone/go-better-i18n/internal/fields"
	"github.com/goliatone/go-better-i18n/internal/locales"
	"github.com/goliatone/go-better-i18n/internal/records"
	"github.com/goliatone/go-better-i18n/internal/runtimeconfig"
)

func hostConfig() collections.Config {
	return collections.Config{
		Localization: &collections.Localization{Locales: []any{"en", map[string]any{"code": "fr", "label": "Français"}}},
		Collections: []collections.Collection{{
			Slug: "articles",
			Fields: []fields.Field{
				{Name: "title", Type: "text", Custom: fields.Custom{Localizable: true}},
				{Name: "body", Type: "richText", Custom: fields.Custom{Localizable: true}},
				{Name: "author", Type: "text"},
			},
		}},
	}
}

func TestNewContainerDefaultsToMemoryStorage(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), hostConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { container.Close() })

	if container.BunDB() != nil {
		t.Fatal("expected no database for memory storage")
	}
	if _, ok := container.RecordRepository().(*records.BunRepository); ok {
		t.Fatal("expected memory repository")
	}
	if container.MarkdownImporter() != nil || container.MarkdownCommands() != nil {
		t.Fatal("expected markdown to be disabled by default")
	}

	report := container.Report()
	if got := locales.Codes(report.Locales); len(got) != 2 || got[0] != "en" || got[1] != "fr" {
		t.Fatalf("unexpected locales %v", got)
	}
	def, ok := container.Registry().Get("articles")
	if !ok || !def.Localized() {
		t.Fatalf("expected localized articles definition, got %+v", def)
	}
	if len(container.Collections().Collections[0].Fields) != 6 {
		t.Fatalf("expected 5 expanded fields plus selector, got %d", len(container.Collections().Collections[0].Fields))
	}
}

func TestNewContainerRecordServiceProjectsLocales(t *testing.T) {
	ctx := context.Background()
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), hostConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	svc := container.RecordService()

	if _, err := svc.SaveLocale(ctx, records.SaveLocaleRequest{
		Collection: "articles",
		Slug:       "hello",
		Locale:     "fr",
		View:       mustDoc(t, `{"title":"Bonjour","author":"ada"}`),
	}); err != nil {
		t.Fatalf("save fr: %v", err)
	}

	fr, err := svc.GetBySlug(ctx, "articles", "hello", records.ReadOptions{Locale: "fr"})
	if err != nil {
		t.Fatalf("get fr: %v", err)
	}
	if fr.Data.String("title") != "Bonjour" || fr.Data.Has("title_fr") {
		t.Fatalf("unexpected projection %v", fr.Data.ToMap())
	}
}

func TestNewContainerSQLiteStorageWithCache(t *testing.T) {
	ctx := context.Background()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "sqlite"
	cfg.Storage.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	container, err := di.NewContainer(cfg, hostConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { container.Close() })

	if container.BunDB() == nil {
		t.Fatal("expected bun database")
	}
	if _, ok := container.RecordRepository().(*records.BunRepository); !ok {
		t.Fatalf("expected bun repository, got %T", container.RecordRepository())
	}

	svc := container.RecordService()
	created, err := svc.SaveLocale(ctx, records.SaveLocaleRequest{
		Collection: "articles",
		Slug:       "hello",
		Locale:     "en",
		View:       mustDoc(t, `{"title":"Hello"}`),
	})
	if err != nil {
		t.Fatalf("save en: %v", err)
	}
	stored, err := svc.Get(ctx, created.ID, records.ReadOptions{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Data.String("title_en") != "Hello" {
		t.Fatalf("unexpected stored data %v", stored.Data.ToMap())
	}

	if err := container.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if container.BunDB() != nil {
		t.Fatal("expected owned database to be released")
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestNewContainerWiresMarkdownCommands(t *testing.T) {
	ctx := context.Background()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.Collection = "articles"

	fsys := fstest.MapFS{
		"en/hello.md": {Data: []byte("---\ntitle: Hello\n---\nHi\n")},
		"fr/hello.md": {Data: []byte("---\ntitle: Bonjour\n---\nSalut\n")},
	}
	reg := &recordingRegistry{}
	container, err := di.NewContainer(cfg, hostConfig(), di.WithMarkdownFS(fsys), di.WithCommandRegistry(reg))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	set := container.MarkdownCommands()
	if set == nil || set.Import == nil {
		t.Fatal("expected markdown handlers")
	}
	if len(reg.handlers) != 1 {
		t.Fatalf("expected one registered handler, got %d", len(reg.handlers))
	}

	if err := set.Import.Execute(ctx, markdowncmd.ImportDirectoryCommand{Directory: "."}); err != nil {
		t.Fatalf("execute import: %v", err)
	}
	fr, err := container.RecordService().GetBySlug(ctx, "articles", "hello", records.ReadOptions{Locale: "fr"})
	if err != nil {
		t.Fatalf("get fr: %v", err)
	}
	if fr.Data.String("title") != "Bonjour" {
		t.Fatalf("unexpected fr view %v", fr.Data.ToMap())
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "mongo"
	if _, err := di.NewContainer(cfg, hostConfig()); !goerrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewContainerFailsWithoutLocales(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.I18N.Locales = nil
	host := hostConfig()
	host.Localization = nil

	_, err := di.NewContainer(cfg, host)
	var typed *goerrors.Error
	if !errors.As(err, &typed) || typed.TextCode != locales.ErrNoLocalesCode {
		t.Fatalf("expected no locales error, got %v", err)
	}
}

func TestNewContainerI18NDisabledPassesHostThrough(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.I18N.Enabled = false

	container, err := di.NewContainer(cfg, hostConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.Builder().Enabled() {
		t.Fatal("expected builder to be disabled")
	}
	if len(container.Collections().Collections[0].Fields) != 3 {
		t.Fatalf("expected untouched fields, got %v", container.Collections().Collections[0].Fields)
	}
}
