// internal/model/model.go
package model

import "aiupstart.com/shadergen/internal/shader"

type MessageType string

const (
	TypeChat   MessageType = "chat"
	TypeShader MessageType = "shader"
	TypeError  MessageType = "error"
)

// Message is what agents exchange over their channels.
type Message struct {
	Sender      string
	Content     string
	MessageType MessageType
	Shader      *shader.Result          // if shader
	Error       *shader.ExtractionError // if error
}

// GenerateRequest is the body of POST /api/shaders.
type GenerateRequest struct {
	Description string `json:"description"`
}

// GenerateResponse is the success body.
type GenerateResponse struct {
	VertexShader   string `json:"vertex_shader"`
	FragmentShader string `json:"fragment_shader"`
	Mode           string `json:"mode,omitempty"`
	Geometry       string `json:"geometry,omitempty"`
	RawCode        string `json:"raw_code"`
}

// ErrorResponse is the failure body. RawCode carries what the model produced,
// or is empty when the model was never reached.
type ErrorResponse struct {
	Error   string `json:"error"`
	RawCode string `json:"raw_code"`
}

// NewGenerateResponse flattens a pipeline result into its wire shape.
func NewGenerateResponse(res shader.Result) GenerateResponse {
	return GenerateResponse{
		VertexShader:   res.Pair.Vertex,
		FragmentShader: res.Pair.Fragment,
		Mode:           string(res.Pair.Mode),
		Geometry:       string(res.Pair.Geometry),
		RawCode:        res.Display,
	}
}

// NewErrorResponse flattens an extraction failure into its wire shape.
func NewErrorResponse(err *shader.ExtractionError) ErrorResponse {
	return ErrorResponse{Error: err.Message, RawCode: err.Diagnostic}
}
