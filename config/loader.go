package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML override file on top of the defaults. Keys missing
// from the file keep their default values.
func LoadFile(path string) (Movement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Movement{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return Parse(data)
}

// Parse is LoadFile for an in-memory document.
func Parse(data []byte) (Movement, error) {
	m := Default()
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Movement{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Movement{}, fmt.Errorf("config: %w", err)
	}
	return m, nil
}
