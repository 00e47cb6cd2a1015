package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-better-i18n/internal/logging"
	"github.com/goliatone/go-better-i18n/internal/logging/console"
)

func TestLoggerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		Clock:    func() time.Time { return now },
		MinLevel: console.LevelDebug,
	})

	ctx := logging.ContextWithFields(context.Background(), map[string]any{"request_id": "req-1"})
	logger := logging.WithFields(provider.GetLogger("i18n.schema"), map[string]any{"module": "i18n.schema"}).
		WithContext(ctx)

	logger.Warn("schema.field.flag_ignored", "field", "title", "error", errors.New("nested flag"))

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26Z WARN schema.field.flag_ignored error="nested flag" field=title logger=i18n.schema module=i18n.schema request_id=req-1`
	if got != want {
		t.Fatalf("unexpected entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: console.LevelInfo})

	logger := provider.GetLogger("i18n")
	logger.Debug("dropped")
	logger.Info("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "kept") {
		t.Fatalf("expected only the info entry, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
		"":        console.LevelInfo,
		"verbose": console.LevelInfo,
	}
	for input, want := range cases {
		if got := console.ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}
