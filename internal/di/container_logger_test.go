package di_test

import (
	"context"
	"maps"
	"sync"
	"testing"
	"testing/fstest"

	markdowncmd "github.com/goliatone/go-better-i18n/internal/commands/markdown"
	"github.com/goliatone/go-better-i18n/internal/di"
	"github.com/goliatone/go-better-i18n/internal/runtimeconfig"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

func TestContainerLogsThroughInjectedProvider(t *testing.T) {
	logs := &logSink{}
	if _, err := di.NewContainer(runtimeconfig.DefaultConfig(), hostConfig(), di.WithLoggerProvider(logs)); err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	ready := logs.first("i18n.container.ready")
	if ready == nil {
		t.Fatalf("expected i18n.container.ready, got %v", logs.messages())
	}
	if ready.fields["module"] != "i18n.di" || ready.fields["storage"] != "memory" {
		t.Fatalf("unexpected ready fields %v", ready.fields)
	}

	applied := logs.first("i18n.config.applied")
	if applied == nil || applied.fields["module"] != "i18n.schema" {
		t.Fatalf("expected schema build entry, got %v", logs.messages())
	}
}

func TestMarkdownImportLogsCompletion(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.I18N.Locales = []any{"en", "fr"}
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.Collection = "articles"

	logs := &logSink{}
	container, err := di.NewContainer(cfg, hostConfig(),
		di.WithLoggerProvider(logs),
		di.WithMarkdownFS(fstest.MapFS{
			"en/hello.md": {Data: []byte("---\ntitle: Hello\nauthor: ada\n---\nHi")},
		}),
	)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if err := container.MarkdownCommands().Import.Execute(context.Background(), markdowncmd.ImportDirectoryCommand{Directory: "."}); err != nil {
		t.Fatalf("import: %v", err)
	}

	done := logs.first("markdown.command.import_directory.completed")
	if done == nil {
		t.Fatalf("expected completion entry, got %v", logs.messages())
	}
	if done.fields["module"] != "i18n.commands.markdown" || done.fields["record_count"] != 1 {
		t.Fatalf("unexpected completion fields %v", done.fields)
	}
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]any
}

// logSink is a LoggerProvider that keeps every entry in memory.
type logSink struct {
	mu      sync.Mutex
	entries []logEntry
}

func (s *logSink) GetLogger(name string) interfaces.Logger {
	return sinkLogger{sink: s, fields: map[string]any{"logger": name}}
}

func (s *logSink) first(msg string) *logEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].msg == msg {
			return &s.entries[i]
		}
	}
	return nil
}

func (s *logSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.entries))
	for i, entry := range s.entries {
		out[i] = entry.level + " " + entry.msg
	}
	return out
}

type sinkLogger struct {
	sink   *logSink
	fields map[string]any
}

func (l sinkLogger) Trace(msg string, args ...any) { l.write("TRACE", msg, args) }
func (l sinkLogger) Debug(msg string, args ...any) { l.write("DEBUG", msg, args) }
func (l sinkLogger) Info(msg string, args ...any)  { l.write("INFO", msg, args) }
func (l sinkLogger) Warn(msg string, args ...any)  { l.write("WARN", msg, args) }
func (l sinkLogger) Error(msg string, args ...any) { l.write("ERROR", msg, args) }
func (l sinkLogger) Fatal(msg string, args ...any) { l.write("FATAL", msg, args) }

func (l sinkLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(l.fields)
	maps.Copy(merged, fields)
	return sinkLogger{sink: l.sink, fields: merged}
}

func (l sinkLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l sinkLogger) write(level, msg string, args []any) {
	fields := maps.Clone(l.fields)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok && key != "" {
			fields[key] = args[i+1]
		}
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = append(l.sink.entries, logEntry{level: level, msg: msg, fields: fields})
}
