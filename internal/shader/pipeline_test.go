package shader

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testVertex   = "varying vec2 vUv;\nvoid main() {\n  vUv = uv;\n  gl_Position = projectionMatrix * modelViewMatrix * vec4(position, 1.0);\n}"
	testFragment = "uniform float time;\nvarying vec2 vUv;\nvoid main() {\n  gl_FragColor = vec4(vUv, 0.5 + 0.5 * sin(time), 1.0);\n}"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestProcessStructuredPassesShaderTextThrough(t *testing.T) {
	// Leading/trailing whitespace inside the JSON strings must survive untouched.
	vertex := "  " + testVertex + "\n"
	fragment := "\n" + testFragment + "  "
	raw := mustJSON(t, map[string]string{
		"vertex_shader":   vertex,
		"fragment_shader": fragment,
		"mode":            "3d",
		"geometry":        "sphere",
	})

	res, err := Process(raw)
	require.NoError(t, err)

	want := Pair{Vertex: vertex, Fragment: fragment, Mode: Mode3D, Geometry: GeometrySphere}
	if diff := cmp.Diff(want, res.Pair); diff != "" {
		t.Fatalf("pair mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, MethodStructured, res.Method)
	assert.Equal(t, FormatDisplay(want), res.Display)
}

func TestProcessStructuredInsideCodeFence(t *testing.T) {
	raw := "```json\n" + mustJSON(t, map[string]string{
		"vertex_shader":   testVertex,
		"fragment_shader": testFragment,
	}) + "\n```\n"

	res, err := Process(raw)
	require.NoError(t, err)
	assert.Equal(t, testVertex, res.Pair.Vertex)
	assert.Equal(t, testFragment, res.Pair.Fragment)
	assert.Empty(t, res.Pair.Mode)
	assert.Empty(t, res.Pair.Geometry)
}

func TestProcessStructuredPassesUnknownModeThrough(t *testing.T) {
	raw := mustJSON(t, map[string]any{
		"vertex_shader":   testVertex,
		"fragment_shader": testFragment,
		"mode":            "4d",
		"geometry":        42,
	})

	res, err := Process(raw)
	require.NoError(t, err)
	assert.Equal(t, Mode("4d"), res.Pair.Mode)
	assert.False(t, res.Pair.Mode.Known())
	assert.Empty(t, res.Pair.Geometry, "non-string geometry is ignored")
}

func TestProcessSchemaMismatchSkipsFallback(t *testing.T) {
	calls := 0
	ex := NewExtractor(WithFallback(func(text string) (Pair, error) {
		calls++
		return ExtractFromFreeText(text)
	}))

	raw := mustJSON(t, map[string]string{"vertex_shader": testVertex})
	_, err := ex.Process(raw)
	require.Error(t, err)

	ee, ok := AsExtractionError(err)
	require.True(t, ok)
	assert.Equal(t, KindSchemaMismatch, ee.Kind)
	assert.Equal(t, MsgSchemaMismatch, ee.Message)
	assert.Equal(t, raw, ee.Diagnostic)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Zero(t, calls, "fallback must not run for well-formed JSON")
}

func TestProcessSchemaMismatchWhenTopLevelIsNotObject(t *testing.T) {
	calls := 0
	ex := NewExtractor(WithFallback(func(string) (Pair, error) {
		calls++
		return Pair{}, ErrExtractFailure
	}))

	for _, raw := range []string{`[1,2,3]`, `"vertex shader: void main"`, `42`, `null`} {
		_, err := ex.Process(raw)
		ee, ok := AsExtractionError(err)
		require.True(t, ok, raw)
		assert.Equal(t, KindSchemaMismatch, ee.Kind, raw)
	}
	assert.Zero(t, calls)
}

func TestProcessStructuredMissingEntryPointIsTerminal(t *testing.T) {
	calls := 0
	ex := NewExtractor(WithFallback(func(string) (Pair, error) {
		calls++
		return Pair{Vertex: testVertex, Fragment: testFragment}, nil
	}))

	raw := mustJSON(t, map[string]string{
		"vertex_shader":   testVertex,
		"fragment_shader": "precision mediump float;",
	})
	_, err := ex.Process(raw)

	ee, ok := AsExtractionError(err)
	require.True(t, ok)
	assert.Equal(t, KindContentInvalid, ee.Kind)
	assert.Equal(t, MsgContentInvalid, ee.Message)
	assert.Equal(t, raw, ee.Diagnostic)
	assert.Zero(t, calls)
}

func TestProcessFreeText(t *testing.T) {
	res, err := Process("VERTEX SHADER\nvoid main(){}\nFRAGMENT SHADER\nvoid main(){}")
	require.NoError(t, err)
	assert.Equal(t, "void main(){}", res.Pair.Vertex)
	assert.Equal(t, "void main(){}", res.Pair.Fragment)
	assert.Equal(t, MethodFallback, res.Method)
}

func TestProcessFreeTextMissingFragmentHeading(t *testing.T) {
	raw := "VERTEX SHADER\nvoid main(){}\n"
	_, err := Process(raw)

	ee, ok := AsExtractionError(err)
	require.True(t, ok)
	assert.Equal(t, KindExtractFailure, ee.Kind)
	assert.Equal(t, MsgExtractFailure, ee.Message)
	assert.Equal(t, "VERTEX SHADER\nvoid main(){}", ee.Diagnostic)
	assert.ErrorIs(t, err, ErrExtractFailure)
}

func TestProcessFreeTextInvalidContent(t *testing.T) {
	_, err := Process("Vertex shader:\nint x;\nFragment shader:\nvoid main(){}")

	ee, ok := AsExtractionError(err)
	require.True(t, ok)
	assert.Equal(t, MsgExtractFailure, ee.Message)
	assert.ErrorIs(t, err, ErrContentInvalid)
}

func TestProcessCustomFallbackStillValidated(t *testing.T) {
	ex := NewExtractor(WithFallback(func(string) (Pair, error) {
		return Pair{Vertex: "x", Fragment: "y"}, nil
	}))
	_, err := ex.Process("not json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentInvalid)
}

func TestProcessEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   \n\t", "```json\n```"} {
		res, err := Process(raw)
		assert.Zero(t, res, raw)
		ee, ok := AsExtractionError(err)
		require.True(t, ok, raw)
		assert.Equal(t, MsgExtractFailure, ee.Message)
		assert.Empty(t, ee.Diagnostic)
	}
}

func TestProcessDisplayOrder(t *testing.T) {
	inputs := []string{
		mustJSON(t, map[string]string{"vertex_shader": testVertex, "fragment_shader": testFragment}),
		"Here you go!\n\n### Vertex Shader\n" + testVertex + "\n\n### Fragment Shader\n" + testFragment + "\n",
	}
	for _, raw := range inputs {
		res, err := Process(raw)
		require.NoError(t, err)

		vLabel := strings.Index(res.Display, "// VERTEX SHADER")
		vBody := strings.Index(res.Display, res.Pair.Vertex)
		fLabel := strings.Index(res.Display, "// FRAGMENT SHADER")
		fBody := strings.LastIndex(res.Display, res.Pair.Fragment)
		require.True(t, vLabel >= 0 && vBody >= 0 && fLabel >= 0 && fBody >= 0, res.Display)
		assert.Less(t, vLabel, vBody)
		assert.Less(t, vBody, fLabel)
		assert.Less(t, fLabel, fBody)
	}
}

func TestProcessFallbackDropsModeAndGeometry(t *testing.T) {
	raw := "mode: 3d\ngeometry: box\nVertex Shader\n" + testVertex + "\nFragment Shader\n" + testFragment
	res, err := Process(raw)
	require.NoError(t, err)
	assert.Empty(t, res.Pair.Mode)
	assert.Empty(t, res.Pair.Geometry)
}

func TestProcessConcurrentUse(t *testing.T) {
	ex := NewExtractor()
	inputs := []string{
		mustJSON(t, map[string]string{"vertex_shader": testVertex, "fragment_shader": testFragment}),
		"VERTEX SHADER\nvoid main(){}\nFRAGMENT SHADER\nvoid main(){}",
		`{"fragment_shader": "void main(){}"}`,
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(raw string) {
			defer wg.Done()
			_, _ = ex.Process(raw)
		}(inputs[i%len(inputs)])
	}
	wg.Wait()
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	ee := NetworkError(cause)

	assert.Equal(t, KindNetwork, ee.Kind)
	assert.Equal(t, "Network or API error: dial tcp: connection refused", ee.Message)
	assert.Empty(t, ee.Diagnostic)
	assert.ErrorIs(t, ee, cause)

	var wrapped error = ee
	got, ok := AsExtractionError(wrapped)
	require.True(t, ok)
	assert.Same(t, ee, got)
}
