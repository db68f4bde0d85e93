package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarshalPositioned serializes a layout to pretty-printed JSON bytes.
func MarshalPositioned(p Positioned) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// UnmarshalPositioned deserializes JSON bytes into a Positioned layout.
func UnmarshalPositioned(data []byte) (Positioned, error) {
	var p Positioned
	if err := json.Unmarshal(data, &p); err != nil {
		return Positioned{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return p, nil
}

// WritePositionedFile writes a layout to a JSON file.
func WritePositionedFile(p Positioned, path string) error {
	data, err := MarshalPositioned(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPositionedFile reads a layout from a JSON file.
func ReadPositionedFile(path string) (Positioned, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Positioned{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalPositioned(data)
}
