package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadData reads a record from a JSON or YAML file, chosen by extension.
// JSON numbers are kept as json.Number so integers stay integers.
func ReadData(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return ParseData(data, strings.ToLower(filepath.Ext(path)) == ".json")
}

// ParseData decodes a record. Anything but JSON is decoded as YAML.
func ParseData(data []byte, isJSON bool) (map[string]any, error) {
	out := map[string]any{}
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("failed to parse json data: %w", err)
		}
		return out, nil
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse yaml data: %w", err)
	}
	return out, nil
}
