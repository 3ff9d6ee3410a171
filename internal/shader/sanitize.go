package shader

import "strings"

const (
	fence     = "```"
	jsonFence = "```json"
)

// Sanitize strips markdown code fences and surrounding whitespace from raw
// model output. A leading "```json" (or bare "```") and a trailing "```" are
// removed, then the result is trimmed again. Stripping repeats until nothing
// changes, which keeps Sanitize idempotent for nested or stacked fences.
// Empty input yields "".
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := stripFences(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripFences(s string) string {
	if strings.HasPrefix(s, jsonFence) {
		s = strings.TrimPrefix(s, jsonFence)
	} else {
		s = strings.TrimPrefix(s, fence)
	}
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}
