package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-better-i18n/internal/logging"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

// Level is the severity of an entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "INFO"
}

// ParseLevel maps a level name to a Level. Unknown names resolve to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Options configures the console provider. Zero values write INFO and above
// to stderr.
type Options struct {
	Writer   io.Writer
	Clock    func() time.Time
	MinLevel Level
}

// Provider writes logfmt-style lines to a writer. Every logger it hands out
// shares one mutex so lines never interleave.
type Provider struct {
	out   io.Writer
	clock func() time.Time
	min   Level
	mu    sync.Mutex
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider constructs a console provider.
func NewProvider(opts Options) *Provider {
	p := &Provider{out: opts.Writer, clock: opts.Clock, min: opts.MinLevel}
	if p.out == nil {
		p.out = os.Stderr
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	return p
}

// GetLogger returns a logger tagged with name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &logger{provider: p, fields: map[string]any{"logger": name}}
}

type logger struct {
	provider *Provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*logger)(nil)
	_ interfaces.FieldsLogger = (*logger)(nil)
)

func (l *logger) Trace(msg string, args ...any) { l.write(LevelTrace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.write(LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.write(LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.write(LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.write(LevelError, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.write(LevelFatal, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	maps.Copy(merged, fields)
	return &logger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	return &logger{provider: l.provider, fields: l.fields, ctx: ctx}
}

func (l *logger) write(level Level, msg string, args []any) {
	if level < l.provider.min {
		return
	}

	fields := maps.Clone(l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 == len(args) {
			fields["extra"] = args[i]
			break
		}
		fields[key] = args[i+1]
	}

	var line strings.Builder
	line.WriteString(l.provider.clock().UTC().Format(time.RFC3339))
	line.WriteString(" ")
	line.WriteString(level.String())
	line.WriteString(" ")
	line.WriteString(msg)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		line.WriteString(" ")
		line.WriteString(key)
		line.WriteString("=")
		line.WriteString(render(fields[key]))
	}
	line.WriteString("\n")

	l.provider.mu.Lock()
	defer l.provider.mu.Unlock()
	_, _ = io.WriteString(l.provider.out, line.String())
}

func render(value any) string {
	var text string
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		text = v
	case time.Time:
		text = v.UTC().Format(time.RFC3339)
	case error:
		text = v.Error()
	default:
		text = fmt.Sprint(v)
	}
	if text == "" || strings.ContainsAny(text, " =\"\t\n") {
		return strconv.Quote(text)
	}
	return text
}
