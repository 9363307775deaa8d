package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Encode serializes a bundle to indented JSON.
// Bundles without meshes are rejected.
func Encode(b *Bundle) ([]byte, error) {
	if b == nil || len(b.Meshes) == 0 {
		return nil, ErrEmptyBundle
	}
	data, err := json.MarshalIndent(b, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize bundle: %w", err)
	}
	return data, nil
}

// Decode parses a bundle and rejects blank input, non-object input, and
// bundles without meshes.
func Decode(data []byte) (*Bundle, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(trimmed) == 0 {
		return nil, ErrEmptyInput
	}
	if trimmed[0] != '{' {
		return nil, ErrNotJSON
	}

	var b Bundle
	if err := json.Unmarshal(trimmed, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if len(b.Meshes) == 0 {
		return nil, ErrEmptyBundle
	}
	return &b, nil
}
