package shader

import (
	"errors"
	"fmt"
)

// FreeTextExtractor recovers a pair from text that is not JSON.
type FreeTextExtractor func(text string) (Pair, error)

// Extractor runs the extraction pipeline. The zero value is not usable; build
// one with NewExtractor. An Extractor holds no mutable state.
type Extractor struct {
	fallback FreeTextExtractor
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithFallback replaces the free-text extractor used when the reply is not JSON.
func WithFallback(fn FreeTextExtractor) Option {
	return func(e *Extractor) {
		if fn != nil {
			e.fallback = fn
		}
	}
}

// NewExtractor returns an Extractor using ExtractFromFreeText unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{fallback: ExtractFromFreeText}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = NewExtractor()

// Process runs the default pipeline over raw model output.
func Process(raw string) (Result, error) {
	return defaultExtractor.Process(raw)
}

// Process turns raw model output into a Result, or returns an
// *ExtractionError. Exactly one of the two is meaningful.
//
// A reply that decodes as JSON never falls through to free-text extraction:
// schema mismatches and content failures on that path are terminal.
func (e *Extractor) Process(raw string) (Result, error) {
	sanitized := Sanitize(raw)

	pair, err := DecodeStructured(sanitized)
	switch {
	case err == nil:
		if !pair.Valid() {
			return Result{}, &ExtractionError{
				Kind:       KindContentInvalid,
				Message:    MsgContentInvalid,
				Diagnostic: sanitized,
				Err:        ErrContentInvalid,
			}
		}
		return newResult(pair, MethodStructured), nil
	case errors.Is(err, ErrSchemaMismatch):
		return Result{}, &ExtractionError{
			Kind:       KindSchemaMismatch,
			Message:    MsgSchemaMismatch,
			Diagnostic: sanitized,
			Err:        err,
		}
	}

	pair, err = e.fallback(sanitized)
	if err == nil && !pair.Valid() {
		// Custom extractors must still honor the entry-point invariant.
		err = fmt.Errorf("%w: %w", ErrExtractFailure, ErrContentInvalid)
	}
	if err != nil {
		return Result{}, &ExtractionError{
			Kind:       KindExtractFailure,
			Message:    MsgExtractFailure,
			Diagnostic: sanitized,
			Err:        err,
		}
	}
	return newResult(pair, MethodFallback), nil
}

func newResult(p Pair, m Method) Result {
	return Result{Pair: p, Display: FormatDisplay(p), Method: m}
}
