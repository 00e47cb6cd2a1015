package collections

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/fields"
)

// Definition is the registered view of a collection or global.
type Definition struct {
	Slug    string
	Global  bool
	Fields  []fields.Field
	Logical []fields.Field
	Hooks   Hooks
}

// Localized reports whether the definition went through locale expansion.
func (d Definition) Localized() bool {
	return d.Logical != nil
}

// Registry indexes definitions by normalized slug.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

// NewRegistry builds a registry from a (transformed) host configuration.
func NewRegistry(cfg Config) (*Registry, error) {
	r := &Registry{definitions: map[string]Definition{}}
	for _, collection := range cfg.Collections {
		if err := r.Register(Definition{
			Slug:    collection.Slug,
			Fields:  collection.Fields,
			Logical: collection.Logical,
			Hooks:   collection.Hooks,
		}); err != nil {
			return nil, err
		}
	}
	for _, global := range cfg.Globals {
		if err := r.Register(Definition{
			Slug:    global.Slug,
			Global:  true,
			Fields:  global.Fields,
			Logical: global.Logical,
			Hooks:   global.Hooks,
		}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a definition. Slugs must be unique once normalized.
func (r *Registry) Register(def Definition) error {
	key, err := NormalizeSlug(def.Slug)
	if err != nil {
		return err
	}
	def.Slug = key

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.definitions == nil {
		r.definitions = map[string]Definition{}
	}
	if _, exists := r.definitions[key]; exists {
		return fmt.Errorf("collections: duplicate definition %q", key)
	}
	r.definitions[key] = def
	return nil
}

// Get returns the definition registered under slug.
func (r *Registry) Get(slugValue string) (Definition, bool) {
	key, err := NormalizeSlug(slugValue)
	if err != nil {
		return Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[key]
	return def, ok
}

// Slugs lists registered slugs in lexical order.
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.definitions))
	for key := range r.definitions {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// RunAfterRead executes the after-read hooks of slug over doc.
func (r *Registry) RunAfterRead(ctx context.Context, slugValue string, doc document.Document, locale string) (document.Document, error) {
	def, ok := r.Get(slugValue)
	if !ok {
		return document.Document{}, &UnknownCollectionError{Slug: slugValue}
	}
	return def.Hooks.RunAfterRead(ctx, AfterReadArgs{
		Collection: def.Slug,
		Doc:        doc,
		Locale:     locale,
	})
}

// NormalizeSlug applies go-slug normalization to a definition slug.
func NormalizeSlug(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("collections: slug is required")
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", fmt.Errorf("collections: invalid slug %q", value)
	}
	return normalized, nil
}

// UnknownCollectionError is returned for slugs missing from the registry.
type UnknownCollectionError struct {
	Slug string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("collections: unknown collection %q", e.Slug)
}
