package template

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadTOML parses a custom template from TOML data.
func LoadTOML(data []byte) (Template, error) {
	var tpl Template
	if err := toml.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("template: parse TOML: %w", err)
	}
	return normalize(tpl)
}

// SaveTOML serializes a template to TOML.
func SaveTOML(tpl Template) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tpl); err != nil {
		return nil, fmt.Errorf("template: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadYAML parses a custom template from YAML data.
func LoadYAML(data []byte) (Template, error) {
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("template: parse YAML: %w", err)
	}
	return normalize(tpl)
}

// LoadFile reads a template file, dispatching on extension: .toml, .yaml,
// or .yml.
func LoadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("template: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(data)
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return Template{}, fmt.Errorf("template: unsupported file extension %q", filepath.Ext(path))
	}
}

// normalize validates required fields of a user-supplied template.
func normalize(tpl Template) (Template, error) {
	if tpl.Name == "" {
		return Template{}, fmt.Errorf("template: missing required field 'name'")
	}
	if len(tpl.Widgets) == 0 {
		return Template{}, fmt.Errorf("template: %q declares no widgets", tpl.Name)
	}
	for i, slot := range tpl.Widgets {
		if slot.Type == "" {
			return Template{}, fmt.Errorf("template: %q widget %d has no type", tpl.Name, i)
		}
	}
	return tpl, nil
}
