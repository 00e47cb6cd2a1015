package betteri18n

import "github.com/goliatone/go-better-i18n/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrMarkdownFeatureRequired = runtimeconfig.ErrMarkdownFeatureRequired
	ErrDefaultLocaleUnknown    = runtimeconfig.ErrDefaultLocaleUnknown
)

type (
	Config         = runtimeconfig.Config
	I18NConfig     = runtimeconfig.I18NConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
	ConfigFile     = runtimeconfig.File
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file holding module settings and the host
// collections.
func LoadConfig(path string) (ConfigFile, error) {
	return runtimeconfig.Load(path)
}

// ParseConfig decodes YAML module settings and host collections.
func ParseConfig(data []byte) (ConfigFile, error) {
	return runtimeconfig.Parse(data)
}
