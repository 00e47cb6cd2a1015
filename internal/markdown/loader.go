package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/locales"
)

// SourceFile is a parsed markdown file from a locale directory.
type SourceFile struct {
	// Path is relative to the filesystem root, slash separated.
	Path     string
	Locale   string
	Meta     document.Document
	Body     []byte
	Checksum []byte
}

// Loader discovers markdown files under <root>/<locale>/.
type Loader struct {
	fs      fs.FS
	locales []locales.Locale
	pattern string
}

// NewLoader constructs a Loader. Pattern defaults to "*.md" and matches
// against file base names.
func NewLoader(filesystem fs.FS, list []locales.Locale, pattern string) *Loader {
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:      filesystem,
		locales: list,
		pattern: pattern,
	}
}

// LoadResult lists the parsed files and the entries that were skipped
// because they are not inside a configured locale directory.
type LoadResult struct {
	Files   []SourceFile
	Skipped []string
}

// LoadDirectory walks root. Top-level directories must be named after a
// configured locale code; anything else is reported in Skipped.
func (l *Loader) LoadDirectory(ctx context.Context, root string) (*LoadResult, error) {
	root = path.Clean(strings.TrimPrefix(root, "/"))
	if root == "" {
		root = "."
	}

	entries, err := fs.ReadDir(l.fs, root)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", root, err)
	}

	codes := locales.CodeSet(l.locales)
	result := &LoadResult{}
	for _, entry := range entries {
		entryPath := path.Join(root, entry.Name())
		if !entry.IsDir() {
			result.Skipped = append(result.Skipped, entryPath)
			continue
		}
		if _, ok := codes[entry.Name()]; !ok {
			result.Skipped = append(result.Skipped, entryPath)
			continue
		}
		files, err := l.loadLocale(ctx, entryPath, entry.Name())
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, files...)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})
	return result, nil
}

func (l *Loader) loadLocale(ctx context.Context, dir, locale string) ([]SourceFile, error) {
	var files []SourceFile
	err := fs.WalkDir(l.fs, dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		if match, err := path.Match(l.pattern, path.Base(p)); err != nil || !match {
			return nil
		}

		file, err := l.LoadFile(p, locale)
		if err != nil {
			return err
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// LoadFile reads and parses a single markdown file.
func (l *Loader) LoadFile(p, locale string) (SourceFile, error) {
	data, err := fs.ReadFile(l.fs, p)
	if err != nil {
		return SourceFile{}, fmt.Errorf("markdown loader read %s: %w", p, err)
	}
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return SourceFile{}, fmt.Errorf("markdown loader %s: %w", p, err)
	}
	sum := sha256.Sum256(data)
	return SourceFile{
		Path:     p,
		Locale:   locale,
		Meta:     meta,
		Body:     body,
		Checksum: sum[:],
	}, nil
}
