package shared

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MarshalJSON encodes data as JSON, indented with two spaces when pretty is set.
func MarshalJSON(data any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// WriteJSONFile writes data as pretty-printed JSON to path, creating the containing directory if absent.
//
// Errors wrap [ErrPersist].
func WriteJSONFile(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory for %s: %v", ErrPersist, path, err)
	}

	b, err := MarshalJSON(data, true)
	if err != nil {
		return fmt.Errorf("%w: could not serialize data of type %T: %v", ErrPersist, data, err)
	}
	b = append(b, '\n')

	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("%w: could not write serialized data to file with path %s: %v", ErrPersist, path, err)
	}

	return nil
}

// ReadJSONFile decodes the JSON file at path into v.
func ReadJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("couldn't open file at path %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	return nil
}
