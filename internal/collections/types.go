package collections

import (
	"context"

	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/fields"
)

// Config is the host content configuration the i18n builder transforms.
type Config struct {
	Localization *Localization `json:"localization,omitempty" yaml:"localization,omitempty"`
	Collections  []Collection  `json:"collections,omitempty" yaml:"collections,omitempty"`
	Globals      []Global      `json:"globals,omitempty" yaml:"globals,omitempty"`
}

// Localization lists the host locales. Locales holds bare codes or
// {code,label} pairs.
type Localization struct {
	Locales       any    `json:"locales" yaml:"locales"`
	DefaultLocale string `json:"defaultLocale,omitempty" yaml:"defaultLocale,omitempty"`
}

// Labels holds the display names of a collection.
type Labels struct {
	Singular string `json:"singular,omitempty" yaml:"singular,omitempty"`
	Plural   string `json:"plural,omitempty" yaml:"plural,omitempty"`
}

// Collection is a repeatable content definition.
type Collection struct {
	Slug   string         `json:"slug" yaml:"slug"`
	Labels Labels         `json:"labels" yaml:"labels,omitempty"`
	Fields []fields.Field `json:"fields" yaml:"fields"`
	// Logical is the validated tree before locale expansion. It is set on
	// localized definitions only and drives localized writes.
	Logical []fields.Field `json:"-" yaml:"-"`
	Hooks   Hooks          `json:"-" yaml:"-"`
}

// Global is a singleton content definition.
type Global struct {
	Slug    string         `json:"slug" yaml:"slug"`
	Label   string         `json:"label,omitempty" yaml:"label,omitempty"`
	Fields  []fields.Field `json:"fields" yaml:"fields"`
	Logical []fields.Field `json:"-" yaml:"-"`
	Hooks   Hooks          `json:"-" yaml:"-"`
}

// Hooks lists lifecycle callbacks attached to a definition.
type Hooks struct {
	AfterRead []AfterReadHook
}

// AfterReadArgs is passed to every after-read hook. Locale is the requested
// locale; an empty value means no locale was requested.
type AfterReadArgs struct {
	Collection string
	Doc        document.Document
	Locale     string
}

// AfterReadHook transforms a record after it is loaded.
type AfterReadHook func(ctx context.Context, args AfterReadArgs) (document.Document, error)

// RunAfterRead applies hooks in order, feeding each hook the previous result.
func (h Hooks) RunAfterRead(ctx context.Context, args AfterReadArgs) (document.Document, error) {
	doc := args.Doc
	for _, hook := range h.AfterRead {
		if hook == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return document.Document{}, err
		}
		next, err := hook(ctx, AfterReadArgs{
			Collection: args.Collection,
			Doc:        doc,
			Locale:     args.Locale,
		})
		if err != nil {
			return document.Document{}, err
		}
		doc = next
	}
	return doc, nil
}

// WithAfterRead returns a copy of hooks with hook appended after the existing ones.
func (h Hooks) WithAfterRead(hook AfterReadHook) Hooks {
	out := make([]AfterReadHook, 0, len(h.AfterRead)+1)
	out = append(out, h.AfterRead...)
	out = append(out, hook)
	return Hooks{AfterRead: out}
}
