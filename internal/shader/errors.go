package shader

import (
	"errors"
	"fmt"
)

// Stage-level sentinels. Match them with errors.Is.
var (
	// ErrParseFailure means the text is not JSON at all; it routes to the
	// free-text fallback and never reaches callers of Process.
	ErrParseFailure = errors.New("response is not valid JSON")
	// ErrSchemaMismatch means the text is JSON but lacks the shader fields.
	ErrSchemaMismatch = errors.New("JSON does not match shader schema")
	// ErrContentInvalid means a shader body is missing the entry point.
	ErrContentInvalid = errors.New("shader missing entry point")
	// ErrExtractFailure means the free-text scan could not recover a pair.
	ErrExtractFailure = errors.New("Could not parse shader format")
)

// Kind classifies an ExtractionError.
type Kind string

const (
	KindNetwork        Kind = "network"
	KindSchemaMismatch Kind = "schema_mismatch"
	KindContentInvalid Kind = "content_invalid"
	KindExtractFailure Kind = "extract_failure"
)

// User-facing messages, one per terminal failure path.
const (
	MsgContentInvalid = "Generated shaders missing void main function"
	MsgSchemaMismatch = "Invalid JSON format - missing required shader fields"
	MsgExtractFailure = "Failed to parse LLM response as JSON"
	msgNetworkPrefix  = "Network or API error: "
)

// ExtractionError is the failure half of the pipeline result. Diagnostic holds
// the sanitized model output so callers can show what the model produced; it
// is empty for network failures.
type ExtractionError struct {
	Kind       Kind
	Message    string
	Diagnostic string
	Err        error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// NetworkError wraps a failed or empty generation call.
func NetworkError(err error) *ExtractionError {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &ExtractionError{
		Kind:    KindNetwork,
		Message: msgNetworkPrefix + msg,
		Err:     err,
	}
}

// AsExtractionError unwraps err into an *ExtractionError if it holds one.
func AsExtractionError(err error) (*ExtractionError, bool) {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}
