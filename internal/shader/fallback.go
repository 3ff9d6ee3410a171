package shader

import (
	"fmt"
	"regexp"
	"strings"
)

// Section scans over free text. (?is): case-insensitive, dot matches newline.
// Each pattern has exactly one capture group: the body after its heading, up to
// the other heading or end of text.
var (
	vertexSectionRe   = regexp.MustCompile(`(?is)vertex.*?shader:?(.*?)(?:fragment.*?shader|\z)`)
	fragmentSectionRe = regexp.MustCompile(`(?is)fragment.*?shader:?(.*?)(?:vertex.*?shader|\z)`)

	// A fenced block inside a section, e.g. "```glsl\n...\n```". The closing
	// fence may be gone when Sanitize already stripped it from the end of text.
	codeBlockRe = regexp.MustCompile("(?s)```(?:\\w+)?[ \t]*\\n(.*?)(?:\\n?```|\\z)")
)

// FindVertexSection returns the trimmed body following a "vertex ... shader"
// heading.
func FindVertexSection(text string) (string, bool) {
	return findSection(vertexSectionRe, text)
}

// FindFragmentSection returns the trimmed body following a "fragment ...
// shader" heading.
func FindFragmentSection(text string) (string, bool) {
	return findSection(fragmentSectionRe, text)
}

func findSection(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) != 2 {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// unwrapCodeBlock returns the body of the first fenced block in section. The
// section is kept whole when it has no block or when that block lacks the entry
// point, e.g. a fenced usage note after unfenced code.
func unwrapCodeBlock(section string) string {
	m := codeBlockRe.FindStringSubmatch(section)
	if len(m) != 2 {
		return section
	}
	body := strings.TrimSpace(m[1])
	if !strings.Contains(body, EntryPointMarker) {
		return section
	}
	return body
}

// ExtractFromFreeText recovers a pair from headed plain text. A section whose
// first fenced code block holds the entry point is unwrapped to that block. Mode and Geometry are never set on
// this path.
func ExtractFromFreeText(text string) (Pair, error) {
	vertex, ok := FindVertexSection(text)
	if !ok {
		return Pair{}, fmt.Errorf("%w: no vertex shader section", ErrExtractFailure)
	}
	fragment, ok := FindFragmentSection(text)
	if !ok {
		return Pair{}, fmt.Errorf("%w: no fragment shader section", ErrExtractFailure)
	}
	vertex, fragment = unwrapCodeBlock(vertex), unwrapCodeBlock(fragment)
	if !Validate(vertex, fragment) {
		return Pair{}, fmt.Errorf("%w: %w", ErrExtractFailure, ErrContentInvalid)
	}
	return Pair{Vertex: vertex, Fragment: fragment}, nil
}
