package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"

	"github.com/goliatone/go-better-i18n/internal/document"
)

var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", unmarshalOrdered),
	frontmatter.NewFormat("---yaml", "---", unmarshalOrdered),
	frontmatter.NewFormat(";;;", ";;;", unmarshalOrdered),
	frontmatter.NewFormat("---json", "---", unmarshalOrdered),
}

// ParseFrontMatter splits source into its metadata, in declaration order,
// and the markdown body without delimiters. Sources without frontmatter
// yield an empty document.
func ParseFrontMatter(source []byte) (document.Document, []byte, error) {
	var meta document.Document
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, frontMatterFormats...)
	if err != nil {
		return document.Document{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Len() == 0 {
		meta = document.New()
	}
	return meta, body, nil
}

func unmarshalOrdered(data []byte, v any) error {
	target, ok := v.(*document.Document)
	if !ok {
		return yaml.UnmarshalWithOptions(data, v, yaml.UseOrderedMap())
	}
	decoded, err := document.Decode(data)
	if err != nil {
		return err
	}
	*target = decoded
	return nil
}
