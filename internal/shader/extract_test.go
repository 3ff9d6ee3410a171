package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStructured(t *testing.T) {
	t.Run("parse failure", func(t *testing.T) {
		_, err := DecodeStructured("VERTEX SHADER\nvoid main(){}")
		assert.ErrorIs(t, err, ErrParseFailure)
		assert.NotErrorIs(t, err, ErrSchemaMismatch)
	})
	t.Run("trailing text is a parse failure", func(t *testing.T) {
		_, err := DecodeStructured(`{"vertex_shader":"void main(){}","fragment_shader":"void main(){}"} thanks!`)
		assert.ErrorIs(t, err, ErrParseFailure)
	})
	t.Run("non-string field", func(t *testing.T) {
		_, err := DecodeStructured(`{"vertex_shader":1,"fragment_shader":"void main(){}"}`)
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})
	t.Run("missing fragment", func(t *testing.T) {
		_, err := DecodeStructured(`{"vertex_shader":"void main(){}"}`)
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})
	t.Run("does not validate content", func(t *testing.T) {
		p, err := DecodeStructured(`{"vertex_shader":"","fragment_shader":""}`)
		require.NoError(t, err)
		assert.False(t, p.Valid())
	})
}

func TestSectionScans(t *testing.T) {
	text := "Sure! Here is the effect.\n\n**Vertex Shader:**\n" + testVertex + "\n\n**Fragment Shader:**\n" + testFragment + "\n"

	v, ok := FindVertexSection(text)
	require.True(t, ok)
	assert.Equal(t, "**\n"+testVertex+"\n\n**", v)

	f, ok := FindFragmentSection(text)
	require.True(t, ok)
	assert.Equal(t, "**\n"+testFragment, f)

	_, ok = FindFragmentSection("vertex shader only: void main(){}")
	assert.False(t, ok)
}

func TestSectionScansFragmentFirst(t *testing.T) {
	text := "fragment shader\nvoid main(){ gl_FragColor = vec4(1.0); }\nvertex shader\nvoid main(){ gl_Position = vec4(0.0); }"

	p, err := ExtractFromFreeText(text)
	require.NoError(t, err)
	assert.Equal(t, "void main(){ gl_Position = vec4(0.0); }", p.Vertex)
	assert.Equal(t, "void main(){ gl_FragColor = vec4(1.0); }", p.Fragment)
}

func TestExtractFromFreeTextMissingVertex(t *testing.T) {
	_, err := ExtractFromFreeText("fragment shader\nvoid main(){}")
	assert.ErrorIs(t, err, ErrExtractFailure)
	assert.EqualError(t, err, "Could not parse shader format: no vertex shader section")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		vertex, fragment string
		want             bool
	}{
		{"void main(){}", "void main(){}", true},
		{"void main(){}", "", false},
		{"", "void main(){}", false},
		{"VOID MAIN(){}", "void main(){}", false},
		{"void  main(){}", "void main(){}", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Validate(tt.vertex, tt.fragment), "%q / %q", tt.vertex, tt.fragment)
	}
}

func TestFormatDisplay(t *testing.T) {
	got := FormatDisplay(Pair{Vertex: "void main(){}", Fragment: "void main(){ }"})
	assert.Equal(t, "// VERTEX SHADER\nvoid main(){}\n\n// FRAGMENT SHADER\nvoid main(){ }", got)
}

func TestExtractFromFreeTextUnwrapsCodeBlocks(t *testing.T) {
	text := Sanitize("## Vertex Shader\n```glsl\nvoid main(){ gl_Position = vec4(0.0); }\n```\n\n## Fragment Shader\n```glsl\nvoid main(){ gl_FragColor = vec4(1.0); }\n```\n")

	p, err := ExtractFromFreeText(text)
	require.NoError(t, err)
	assert.Equal(t, "void main(){ gl_Position = vec4(0.0); }", p.Vertex)
	assert.Equal(t, "void main(){ gl_FragColor = vec4(1.0); }", p.Fragment)
}

func TestExtractFromFreeTextKeepsSectionWhenBlockLacksEntryPoint(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantVertex   string
		wantFragment string
	}{
		{
			name:         "fenced note after unfenced code",
			text:         "VERTEX SHADER\nvoid main(){ gl_Position = vec4(0.0); }\n```glsl\n// usage: attach to a plane\n```\nFRAGMENT SHADER\nvoid main(){ gl_FragColor = vec4(1.0); }",
			wantVertex:   "void main(){ gl_Position = vec4(0.0); }\n```glsl\n// usage: attach to a plane\n```",
			wantFragment: "void main(){ gl_FragColor = vec4(1.0); }",
		},
		{
			name:         "entry point in second block",
			text:         "VERTEX SHADER\nvoid main(){ gl_Position = vec4(0.0); }\nFRAGMENT SHADER\n```glsl\nuniform float time;\n```\n```glsl\nvoid main(){ gl_FragColor = vec4(time); }\n```",
			wantVertex:   "void main(){ gl_Position = vec4(0.0); }",
			wantFragment: "```glsl\nuniform float time;\n```\n```glsl\nvoid main(){ gl_FragColor = vec4(time); }\n```",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ExtractFromFreeText(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantVertex, p.Vertex)
			assert.Equal(t, tt.wantFragment, p.Fragment)

			res, err := Process(tt.text)
			require.NoError(t, err)
			assert.Equal(t, MethodFallback, res.Method)
		})
	}
}
