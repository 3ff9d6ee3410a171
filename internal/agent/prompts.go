package agent

import (
	"fmt"
	"strings"

	"aiupstart.com/shadergen/internal/config"
)

// T_B_T stands in for a triple backtick, which cannot appear in a raw string.
const jsonPromptTemplate = `
You are an expert graphics programmer who writes GLSL ES shaders for three.js ShaderMaterial.

Write a vertex shader and a fragment shader that render the following visual effect:
"%s"

Rules:
- Target WebGL 1 GLSL (GLSL ES 1.00). Do not add a #version line.
- three.js injects position, uv, normal, projectionMatrix, modelViewMatrix and precision; do not redeclare them.
- You may use these uniforms: uniform float time; uniform vec2 resolution; uniform vec2 mouse;
- Pass data between stages with varyings (for example varying vec2 vUv;).
- Both shaders must define void main().
- Pick "mode": "2d" for flat full-screen effects, "3d" for effects on a lit object.
- Pick "geometry": one of "plane", "box", "sphere".

Respond with ONLY a JSON object, no markdown and no commentary, in exactly this shape:
{"vertex_shader": "<GLSL source>", "fragment_shader": "<GLSL source>", "mode": "2d", "geometry": "plane"}

Escape newlines inside the JSON strings as \n. Do not wrap the JSON in T_B_T fences.
`

const sectionsPromptTemplate = `
You are an expert graphics programmer who writes GLSL ES shaders for three.js ShaderMaterial.

Write a vertex shader and a fragment shader that render the following visual effect:
"%s"

Rules:
- Target WebGL 1 GLSL (GLSL ES 1.00). Do not add a #version line.
- three.js injects position, uv, normal, projectionMatrix, modelViewMatrix and precision; do not redeclare them.
- You may use these uniforms: uniform float time; uniform vec2 resolution; uniform vec2 mouse;
- Both shaders must define void main().

Format your answer as plain text with exactly two headed sections and nothing else:

VERTEX SHADER
<vertex shader source>

FRAGMENT SHADER
<fragment shader source>
`

// BuildPrompt renders the template for style around description.
func BuildPrompt(style, description string) (string, error) {
	var tpl string
	switch style {
	case config.PromptStyleJSON, "":
		tpl = jsonPromptTemplate
	case config.PromptStyleSections:
		tpl = sectionsPromptTemplate
	default:
		return "", fmt.Errorf("unknown prompt style %q", style)
	}
	// Quotes would end the quoted description early.
	description = strings.ReplaceAll(strings.TrimSpace(description), `"`, `'`)
	return fmt.Sprintf(strings.ReplaceAll(tpl, "T_B_T", "```"), description), nil
}
