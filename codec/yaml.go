// Package codec provides core.Codec implementations for serializing
// values into object store bytes.
package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MartinHowarth/s3os/core"
)

// YAML encodes values as YAML documents. It supports scalars,
// sequences, and string-keyed mappings, recursively; mappings decode as
// map[string]any and sequences as []any.
type YAML struct{}

// Encode marshals v into a YAML document.
func (YAML) Encode(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

// Decode unmarshals a YAML document into a native value.
func (YAML) Decode(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return v, nil
}

// Compile-time interface check.
var _ core.Codec = YAML{}
