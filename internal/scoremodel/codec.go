package scoremodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads one model from JSON and validates it. Unknown fields are
// rejected so a typo in a table name cannot silently fall back to zero.
func Decode(r io.Reader) (*Model, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var m Model
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(b []byte) (*Model, error) {
	return Decode(bytes.NewReader(b))
}

// Encode renders a model as indented JSON.
func Encode(m *Model) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
