package di_test

import (
	"testing"

	"github.com/goliatone/go-better-i18n/internal/document"
)

func mustDoc(t *testing.T, raw string) document.Document {
	t.Helper()
	doc, err := document.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return doc
}
