package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-better-i18n/internal/locales"
)

var ErrLoggingProviderRequired = errors.New("i18n config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("i18n config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("i18n config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("i18n config: logging format is invalid")

// ErrMarkdownFeatureRequired keeps markdown imports behind the feature flag.
var ErrMarkdownFeatureRequired = errors.New("i18n config: markdown feature must be enabled to configure markdown")

// ErrDefaultLocaleUnknown reports a default locale missing from the locale list.
var ErrDefaultLocaleUnknown = errors.New("i18n config: default locale is not a configured locale")

const invalidConfigTextCode = "I18N_CONFIG_INVALID"

// Config aggregates feature flags and adapter bindings for the i18n module.
type Config struct {
	Enabled       bool           `yaml:"enabled" json:"enabled"`
	DefaultLocale string         `yaml:"default_locale" json:"default_locale"`
	I18N          I18NConfig     `yaml:"i18n" json:"i18n"`
	Storage       StorageConfig  `yaml:"storage" json:"storage"`
	Cache         CacheConfig    `yaml:"cache" json:"cache"`
	Markdown      MarkdownConfig `yaml:"markdown" json:"markdown"`
	Logging       LoggingConfig  `yaml:"logging" json:"logging"`
	Features      Features       `yaml:"features" json:"features"`
}

// I18NConfig controls schema expansion. Locales holds bare codes or
// {code,label} pairs and is only used when the host config has no
// localization block of its own.
type I18NConfig struct {
	Enabled bool  `yaml:"enabled" json:"enabled"`
	Locales []any `yaml:"locales" json:"locales"`
}

// StorageConfig selects the record repository. Provider is one of memory,
// sqlite or postgres.
type StorageConfig struct {
	Provider string `yaml:"provider" json:"provider"`
	DSN      string `yaml:"dsn" json:"dsn"`
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" json:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl" json:"default_ttl"`
}

// MarkdownConfig captures filesystem behaviour for markdown imports.
type MarkdownConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	ContentDir string `yaml:"content_dir" json:"content_dir"`
	Pattern    string `yaml:"pattern" json:"pattern"`
	BodyField  string `yaml:"body_field" json:"body_field"`
	Collection string `yaml:"collection" json:"collection"`
	// Extensions names goldmark extensions; empty selects GFM.
	Extensions []string `yaml:"extensions" json:"extensions"`
	SafeMode   bool     `yaml:"safe_mode" json:"safe_mode"`
}

// Features toggles optional module functionality.
type Features struct {
	Markdown bool `yaml:"markdown" json:"markdown"`
	Logger   bool `yaml:"logger" json:"logger"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider" json:"provider"`
	Level     string   `yaml:"level" json:"level"`
	Format    string   `yaml:"format" json:"format"`
	AddSource bool     `yaml:"add_source" json:"add_source"`
	Focus     []string `yaml:"focus" json:"focus"`
}

// DefaultConfig returns an in-memory, English-only setup.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "en",
		I18N: I18NConfig{
			Enabled: true,
			Locales: []any{"en"},
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			BodyField:  "body",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Locales returns the normalized module locale list.
func (cfg Config) Locales() []locales.Locale {
	return locales.Normalize(cfg.I18N.Locales)
}

// LocaleCodes returns the configured locale codes in order.
func (cfg Config) LocaleCodes() []string {
	return locales.Codes(cfg.Locales())
}

// Validate performs field level checks with ozzo-validation, reported as a
// go-errors validation error, followed by cross-section consistency checks.
func (cfg Config) Validate() error {
	err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.Storage, validation.By(func(any) error {
			return cfg.Storage.validate()
		})),
		validation.Field(&cfg.Cache, validation.By(func(any) error {
			return validation.ValidateStruct(&cfg.Cache,
				validation.Field(&cfg.Cache.DefaultTTL, validation.Min(time.Duration(0))),
			)
		})),
		validation.Field(&cfg.Markdown, validation.By(func(any) error {
			if !cfg.Markdown.Enabled {
				return nil
			}
			return validation.ValidateStruct(&cfg.Markdown,
				validation.Field(&cfg.Markdown.ContentDir, validation.Required),
				validation.Field(&cfg.Markdown.BodyField, validation.Required),
				validation.Field(&cfg.Markdown.Collection, validation.Required),
			)
		})),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid i18n configuration").
			WithTextCode(invalidConfigTextCode)
	}

	if cfg.Markdown.Enabled && !cfg.Features.Markdown {
		return ErrMarkdownFeatureRequired
	}

	if cfg.I18N.Enabled {
		list := cfg.Locales()
		if def := strings.TrimSpace(cfg.DefaultLocale); def != "" && len(list) > 0 {
			if _, ok := locales.Find(list, def); !ok {
				return fmt.Errorf("%w: %s", ErrDefaultLocaleUnknown, def)
			}
		}
	}

	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func (s StorageConfig) validate() error {
	provider := NormalizeStorageProvider(s.Provider)
	return validation.ValidateStruct(&s,
		validation.Field(&s.Provider, validation.By(func(any) error {
			if !isSupportedStorage(provider) {
				return validation.NewError("i18n.storage.provider_unknown", "must be one of memory, sqlite, postgres")
			}
			return nil
		})),
		validation.Field(&s.DSN, validation.When(provider == "postgres", validation.Required)),
	)
}

// NormalizeStorageProvider lowercases the provider, treating empty and
// "bun" as their defaults.
func NormalizeStorageProvider(provider string) string {
	switch p := strings.ToLower(strings.TrimSpace(provider)); p {
	case "":
		return "memory"
	case "bun", "sqlite3":
		return "sqlite"
	case "pg", "postgresql":
		return "postgres"
	default:
		return p
	}
}

func isSupportedStorage(provider string) bool {
	switch provider {
	case "memory", "sqlite", "postgres":
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
