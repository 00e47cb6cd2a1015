package di

import (
	"testing"

	"github.com/goliatone/go-better-i18n/internal/collections"
	"github.com/goliatone/go-better-i18n/internal/logging/console"
	"github.com/goliatone/go-better-i18n/internal/logging/gologger"
	"github.com/goliatone/go-better-i18n/internal/runtimeconfig"
)

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg, collections.Config{})
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}
	if logger := provider.GetLogger("i18n.test"); logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderFallsBackToConsole(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true

	container, err := NewContainer(cfg, collections.Config{})
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.loggerProvider.(*console.Provider); !ok {
		t.Fatalf("expected console provider, got %T", container.loggerProvider)
	}
}

func TestConfigureLoggerProviderDisabledLeavesNoProvider(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig(), collections.Config{})
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.loggerProvider != nil {
		t.Fatalf("expected no provider, got %T", container.loggerProvider)
	}
	if container.Logger("i18n.test") == nil {
		t.Fatal("expected no-op logger")
	}
}
