package di

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-better-i18n/internal/collections"
	markdowncmd "github.com/goliatone/go-better-i18n/internal/commands/markdown"
	"github.com/goliatone/go-better-i18n/internal/i18n"
	"github.com/goliatone/go-better-i18n/internal/logging"
	"github.com/goliatone/go-better-i18n/internal/logging/console"
	"github.com/goliatone/go-better-i18n/internal/logging/gologger"
	"github.com/goliatone/go-better-i18n/internal/markdown"
	"github.com/goliatone/go-better-i18n/internal/records"
	"github.com/goliatone/go-better-i18n/internal/runtimeconfig"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

const (
	defaultSQLiteDSN = "file:go_better_i18n?mode=memory&cache=shared"
	postgresDriver   = "postgres"
)

// Container wires module dependencies from runtime configuration and the host
// content config.
type Container struct {
	Config runtimeconfig.Config

	host collections.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	sqlDB         *sql.DB
	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	builder  *i18n.Builder
	built    collections.Config
	report   i18n.Report
	registry *collections.Registry

	recordRepo records.Repository
	recordSvc  records.Service

	markdownFS       fs.FS
	importer         *markdown.Importer
	commandRegistry  markdowncmd.CommandRegistry
	markdownCommands *markdowncmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithBunDB binds records to an existing bun database. The container never
// closes an injected database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithSQLDB binds records to a host database handle, wrapped with the dialect
// of the configured sqlite or postgres provider. The host registers the
// postgres driver.
func WithSQLDB(db *sql.DB) Option {
	return func(c *Container) {
		c.sqlDB = db
	}
}

// WithRecordRepository overrides storage selection entirely.
func WithRecordRepository(repo records.Repository) Option {
	return func(c *Container) {
		c.recordRepo = repo
	}
}

// WithMarkdownFS sets the filesystem markdown imports read from. Defaults to
// the configured content directory.
func WithMarkdownFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.markdownFS = fsys
	}
}

// WithCommandRegistry registers command handlers with reg as they are built.
func WithCommandRegistry(reg markdowncmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// NewContainer validates cfg, applies the i18n builder to host and wires the
// record and import services.
func NewContainer(cfg runtimeconfig.Config, host collections.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		host:     host,
		cacheTTL: cacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "i18n.di")

	c.configureCacheDefaults()
	if err := c.configureStorage(context.Background()); err != nil {
		return nil, err
	}
	if err := c.configureSchema(); err != nil {
		c.Close()
		return nil, err
	}

	c.recordSvc = records.NewService(c.recordRepo, c.registry,
		records.WithLocales(c.report.Locales),
		records.WithLogger(logging.RecordsLogger(c.loggerProvider)),
	)

	if err := c.configureMarkdown(); err != nil {
		c.Close()
		return nil, err
	}

	c.logger.Info("i18n.container.ready",
		"storage", runtimeconfig.NormalizeStorageProvider(cfg.Storage.Provider),
		"cache", c.cacheService != nil,
		"localized", len(c.report.Localized),
		"markdown", c.importer != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger", "go-logger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: console.ParseLevel(logCfg.Level),
		})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			c.logger.Warn("i18n.cache.disabled", "error", err)
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.recordRepo != nil {
		return nil
	}

	provider := runtimeconfig.NormalizeStorageProvider(c.Config.Storage.Provider)
	if c.bunDB == nil {
		switch provider {
		case "memory":
			c.recordRepo = records.NewMemoryRepository()
			return nil
		case "sqlite":
			db := c.sqlDB
			if db == nil {
				dsn := strings.TrimSpace(c.Config.Storage.DSN)
				if dsn == "" {
					dsn = defaultSQLiteDSN
				}
				opened, err := sql.Open("sqlite3", dsn)
				if err != nil {
					return fmt.Errorf("di: open sqlite: %w", err)
				}
				db = opened
				c.ownsDB = true
			}
			c.bunDB = bun.NewDB(db, sqlitedialect.New())
		case "postgres":
			db := c.sqlDB
			if db == nil {
				opened, err := sql.Open(postgresDriver, strings.TrimSpace(c.Config.Storage.DSN))
				if err != nil {
					return fmt.Errorf("di: open postgres: %w", err)
				}
				db = opened
				c.ownsDB = true
			}
			c.bunDB = bun.NewDB(db, pgdialect.New())
		default:
			return fmt.Errorf("di: unsupported storage provider %q", provider)
		}
	}

	if err := records.CreateSchema(ctx, c.bunDB); err != nil {
		c.Close()
		return fmt.Errorf("di: create record schema: %w", err)
	}

	if c.cacheService != nil {
		c.recordRepo = records.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.recordRepo = records.NewBunRepository(c.bunDB)
	}
	return nil
}

func (c *Container) configureSchema() error {
	c.builder = i18n.NewBuilder(
		i18n.WithEnabled(c.Config.Enabled && c.Config.I18N.Enabled),
		i18n.WithLogger(logging.SchemaLogger(c.loggerProvider)),
		i18n.WithConfig(i18n.FromModuleConfig(c.Config.DefaultLocale, c.Config.LocaleCodes())),
	)

	built, report, err := c.builder.Apply(c.host)
	if err != nil {
		return err
	}
	registry, err := collections.NewRegistry(built)
	if err != nil {
		return err
	}

	c.built = built
	c.report = report
	c.registry = registry
	return nil
}

func (c *Container) configureMarkdown() error {
	if !c.Config.Features.Markdown || !c.Config.Markdown.Enabled {
		return nil
	}

	mdCfg := c.Config.Markdown
	if c.markdownFS == nil {
		c.markdownFS = os.DirFS(mdCfg.ContentDir)
	}

	c.importer = markdown.NewImporter(c.markdownFS, c.recordSvc, c.report.Locales, markdown.Config{
		Collection: mdCfg.Collection,
		BodyField:  mdCfg.BodyField,
		Pattern:    mdCfg.Pattern,
		Render: markdown.RenderOptions{
			Extensions: mdCfg.Extensions,
			SafeMode:   mdCfg.SafeMode,
		},
	}, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))

	handlers, err := markdowncmd.RegisterMarkdownCommands(c.commandRegistry, c.importer, c.loggerProvider, markdowncmd.FeatureGates{
		MarkdownEnabled: func() bool { return c.Config.Features.Markdown },
	})
	if err != nil {
		return err
	}
	c.markdownCommands = handlers
	return nil
}

// Close releases the database the container opened itself.
func (c *Container) Close() error {
	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	c.ownsDB = false
	return err
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the module scoped logger for name.
func (c *Container) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, name)
}

func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

func (c *Container) Builder() *i18n.Builder {
	return c.builder
}

// Collections returns the host config after locale expansion.
func (c *Container) Collections() collections.Config {
	return c.built
}

func (c *Container) Report() i18n.Report {
	return c.report
}

func (c *Container) Registry() *collections.Registry {
	return c.registry
}

func (c *Container) RecordRepository() records.Repository {
	return c.recordRepo
}

func (c *Container) RecordService() records.Service {
	return c.recordSvc
}

// MarkdownImporter returns nil when markdown imports are disabled.
func (c *Container) MarkdownImporter() *markdown.Importer {
	return c.importer
}

// MarkdownCommands returns nil when markdown imports are disabled.
func (c *Container) MarkdownCommands() *markdowncmd.HandlerSet {
	return c.markdownCommands
}
