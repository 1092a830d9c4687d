package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTemporary        = errors.New("temporary failure")

	// Fatal pipeline errors: the invocation aborts before any model call.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrExtractionFailed  = errors.New("text extraction failed")
	ErrInvalidEncoding   = errors.New("invalid text encoding")

	// Stage errors: the orchestrator decides per stage whether these end
	// the pipeline or degrade to a null result member.
	ErrModelCall           = errors.New("model call failed")
	ErrClassificationParse = errors.New("classification parse failed")
	ErrSchemaMismatch      = errors.New("extraction schema mismatch")
	ErrUnknownDocumentType = errors.New("no extractor for document type")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
