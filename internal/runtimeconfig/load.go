package runtimeconfig

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/goliatone/go-better-i18n/internal/collections"
)

// File is the on-disk layout: module settings next to the host content
// definitions they apply to.
type File struct {
	Config       `yaml:",inline"`
	Localization *collections.Localization `yaml:"localization,omitempty"`
	Collections  []collections.Collection  `yaml:"collections,omitempty"`
	Globals      []collections.Global      `yaml:"globals,omitempty"`
}

// Host returns the content definitions declared in the file.
func (f File) Host() collections.Config {
	return collections.Config{
		Localization: f.Localization,
		Collections:  f.Collections,
		Globals:      f.Globals,
	}
}

// Parse decodes YAML (or JSON) on top of DefaultConfig and validates the result.
func Parse(data []byte) (File, error) {
	file := File{Config: DefaultConfig()}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("i18n config: decode: %w", err)
	}
	if err := file.Config.Validate(); err != nil {
		return File{}, err
	}
	return file, nil
}

// Load reads and parses the config file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("i18n config: read %s: %w", path, err)
	}
	return Parse(data)
}
