// ABOUTME: Theme manifest parsing and palette validation
// ABOUTME: YAML manifest with name, author, and a non-empty hex color palette

package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Manifest describes a theme bundle's metadata.
type Manifest struct {
	Name   string            `yaml:"name"`
	Author string            `yaml:"author"`
	Colors map[string]string `yaml:"colors"`
}

// ParseManifest reads a manifest from YAML bytes and validates it.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate checks the fields this core cares about: a name and a
// non-empty palette of parseable hex colors. The palette's internal
// schema beyond that is the theme's business.
func (m *Manifest) validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest missing name")
	}
	if len(m.Colors) == 0 {
		return fmt.Errorf("manifest %q declares no colors", m.Name)
	}
	for key, value := range m.Colors {
		if _, err := colorful.Hex(value); err != nil {
			return fmt.Errorf("manifest %q color %s: %w", m.Name, key, err)
		}
	}
	return nil
}
