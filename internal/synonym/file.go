package synonym

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FromFile loads a dictionary from a YAML file mapping tokens to synonym
// lists. The file fully replaces the built-in entries.
func FromFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonym file: %w", err)
	}

	var entries map[string][]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse synonym file: %w", err)
	}
	return New(entries), nil
}
