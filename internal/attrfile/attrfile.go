// Package attrfile loads and saves bulk attribute payloads as YAML.
//
// A payload is the map shape bind.Entity.SetupAttrs takes: scalar values
// for attribute and text slots, nested maps for element maps and nested
// sub-entities, sequences for list slots. Nested maps loaded from a file
// always carry merge semantics; replace semantics (bind.Reset) are an API
// decision, not something a data file can request.
package attrfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads a YAML attribute payload from path.
func LoadFromFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attrs file: %w", err)
	}
	return Load(data)
}

// Load parses a YAML attribute payload. The top level must be a mapping.
func Load(data []byte) (map[string]any, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	normalize(values)
	return values, nil
}

// Save serializes an attribute payload (typically a FetchAttrs result) as
// YAML.
func Save(values map[string]any) ([]byte, error) {
	out, err := yaml.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize attrs: %w", err)
	}
	return out, nil
}

// normalize rewrites decoded sequence elements so nested mappings are
// map[string]any throughout, the shape SetupAttrs expects.
func normalize(values map[string]any) {
	for k, v := range values {
		values[k] = normalizeValue(v)
	}
}

func normalizeValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		normalize(v)
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeValue(item)
		}
		return v
	default:
		return v
	}
}
