// Package shader turns free-form LLM replies into a validated vertex/fragment
// GLSL pair.
//
// The pipeline is sanitize -> structured JSON decode -> free-text fallback ->
// validation. Every stage is a pure function; nothing here holds state between
// calls, so a single Extractor can be shared across goroutines.
package shader

import "strings"

// EntryPointMarker must appear in both shader bodies for a pair to be accepted.
const EntryPointMarker = "void main"

// Mode is the rendering mode the model picked for the effect.
type Mode string

const (
	Mode2D Mode = "2d"
	Mode3D Mode = "3d"
)

// Geometry is the mesh the effect is meant to be drawn on.
type Geometry string

const (
	GeometryPlane  Geometry = "plane"
	GeometryBox    Geometry = "box"
	GeometrySphere Geometry = "sphere"
)

// Known reports whether m is one of the documented modes.
func (m Mode) Known() bool {
	return m == Mode2D || m == Mode3D
}

// Known reports whether g is one of the documented geometries.
func (g Geometry) Known() bool {
	switch g {
	case GeometryPlane, GeometryBox, GeometrySphere:
		return true
	}
	return false
}

// Pair is a vertex/fragment shader combination. Mode and Geometry are empty
// when the model did not provide them.
type Pair struct {
	Vertex   string
	Fragment string
	Mode     Mode
	Geometry Geometry
}

// Valid reports whether both shader bodies carry the entry-point marker.
func (p Pair) Valid() bool {
	return Validate(p.Vertex, p.Fragment)
}

// Method names the pipeline path that produced a Result.
type Method string

const (
	MethodStructured Method = "structured"
	MethodFallback   Method = "fallback"
)

// Result is a successful extraction.
type Result struct {
	Pair    Pair
	Display string
	Method  Method
}

// Validate is a cheap syntactic gate, not a GLSL parser: it only checks that
// both sources contain "void main" (case-sensitive).
func Validate(vertex, fragment string) bool {
	return strings.Contains(vertex, EntryPointMarker) && strings.Contains(fragment, EntryPointMarker)
}

// FormatDisplay renders a pair as one labeled, human-readable listing.
func FormatDisplay(p Pair) string {
	var b strings.Builder
	b.Grow(len(p.Vertex) + len(p.Fragment) + 40)
	b.WriteString("// VERTEX SHADER\n")
	b.WriteString(p.Vertex)
	b.WriteString("\n\n// FRAGMENT SHADER\n")
	b.WriteString(p.Fragment)
	return b.String()
}
