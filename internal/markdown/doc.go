// Package markdown imports per-locale markdown trees into localized records.
// Files live under <root>/<locale>/, frontmatter becomes the single-locale
// view and the rendered body is stored in a configurable field. Files that
// share a slug across locale directories end up in one multi-locale record.
package markdown
