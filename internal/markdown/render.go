package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// RenderOptions selects goldmark extensions and HTML output settings.
// Extensions take names such as "gfm", "table" or "footnote"; none means GFM.
type RenderOptions struct {
	Extensions []string
	HardWraps  bool
	// SafeMode drops raw HTML embedded in the source.
	SafeMode bool
}

var extensionsByName = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// Renderer turns markdown bodies into the HTML stored in the body field.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer(opts RenderOptions) *Renderer {
	var htmlOpts []renderer.Option
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}
	if !opts.SafeMode {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}

	extenders := []goldmark.Extender{extension.GFM}
	if len(opts.Extensions) > 0 {
		extenders = extenders[:0]
		for _, name := range opts.Extensions {
			if ext, ok := extensionsByName[strings.ToLower(strings.TrimSpace(name))]; ok {
				extenders = append(extenders, ext)
			}
		}
	}

	return &Renderer{md: goldmark.New(
		goldmark.WithExtensions(extenders...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(htmlOpts...),
	)}
}

// Render converts source to HTML with surrounding whitespace trimmed.
func (r *Renderer) Render(source []byte) (string, error) {
	var out bytes.Buffer
	if err := r.md.Convert(source, &out); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return strings.TrimSpace(out.String()), nil
}
