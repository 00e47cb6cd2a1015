package testsupport

import (
	"os"

	"github.com/goliatone/go-better-i18n/internal/document"
)

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadDocument decodes a JSON or YAML fixture keeping its key order.
func LoadDocument(path string) (document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Document{}, err
	}
	return document.Decode(data)
}
