package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "\n\n  ```json  \n{\"a\":1}\n```  \n", `{"a":1}`},
		{"no fences", "  plain text \n", "plain text"},
		{"other language tag keeps tag", "```glsl\nvoid main(){}\n```", "glsl\nvoid main(){}"},
		{"uppercase json tag is not the json marker", "```JSON\n{}\n```", "JSON\n{}"},
		{"trailing fence only", "{}\n```", "{}"},
		{"stacked fences", "```\n```json\n{}\n```\n```", "{}"},
		{"empty", "", ""},
		{"only fences", "```json```", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func FuzzSanitizeIdempotent(f *testing.F) {
	seeds := []string{
		"",
		"```json\n{\"a\":1}\n```",
		"``` ```json x```",
		"```json```json```",
		" \t```\n\n```\n",
		"VERTEX SHADER\nvoid main(){}",
		"``````",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := Sanitize(s)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("Sanitize not idempotent for %q: %q then %q", s, once, twice)
		}
	})
}
