package shader

import (
	"encoding/json"
	"fmt"
)

const (
	fieldVertex   = "vertex_shader"
	fieldFragment = "fragment_shader"
	fieldMode     = "mode"
	fieldGeometry = "geometry"
)

// DecodeStructured parses text as the JSON shader object. It fails with
// ErrParseFailure when text is not JSON and with ErrSchemaMismatch when the
// JSON is not an object carrying string vertex_shader and fragment_shader
// fields. mode and geometry pass through unvalidated. Shader content is not
// checked here.
func DecodeStructured(text string) (Pair, error) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return Pair{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return Pair{}, fmt.Errorf("%w: top-level value is %T, want object", ErrSchemaMismatch, doc)
	}

	vertex, ok := obj[fieldVertex].(string)
	if !ok {
		return Pair{}, fmt.Errorf("%w: %s missing or not a string", ErrSchemaMismatch, fieldVertex)
	}
	fragment, ok := obj[fieldFragment].(string)
	if !ok {
		return Pair{}, fmt.Errorf("%w: %s missing or not a string", ErrSchemaMismatch, fieldFragment)
	}

	pair := Pair{Vertex: vertex, Fragment: fragment}
	if mode, ok := obj[fieldMode].(string); ok {
		pair.Mode = Mode(mode)
	}
	if geometry, ok := obj[fieldGeometry].(string); ok {
		pair.Geometry = Geometry(geometry)
	}
	return pair, nil
}
