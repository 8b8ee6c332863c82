package sceneio

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReadJSON decodes a JSON scene document. Unknown fields are rejected.
func ReadJSON(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode scene json: %w", err)
	}
	return &d, nil
}

// WriteJSON encodes a scene document as indented JSON.
func WriteJSON(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode scene json: %w", err)
	}
	return nil
}
