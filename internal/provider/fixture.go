package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/integration-selector/internal/selector"
)

// Fixture is the on-disk description of every list a selector can show.
//
//	options:  static dialog options, also the fallback for dynamic sources
//	dynamic:  options served through a Static fetcher
//	users:    seeded into the directory
//	channels: seeded into the directory
type Fixture struct {
	Options  []selector.DialogOption `yaml:"options"`
	Dynamic  []selector.DialogOption `yaml:"dynamic"`
	Users    []selector.UserProfile  `yaml:"users"`
	Channels []selector.Channel      `yaml:"channels"`
}

// LoadFixture reads and parses a fixture file. Files ending in .json or
// .jsonc may carry comments and trailing commas.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	return ParseFixture(data)
}

// ParseFixture parses YAML (or plain JSON) fixture data. Options without a value are
// rejected since they could never be selected.
func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	for i, opt := range f.Options {
		if opt.Value == "" {
			return Fixture{}, fmt.Errorf("parse fixture: option %d (%q) has no value", i, opt.Text)
		}
	}
	for i, opt := range f.Dynamic {
		if opt.Value == "" {
			return Fixture{}, fmt.Errorf("parse fixture: dynamic option %d (%q) has no value", i, opt.Text)
		}
	}
	return f, nil
}
