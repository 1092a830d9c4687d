// Package extractor routes raw document bytes to a format-specific text
// extractor by declared MIME type. Routing is by exact or prefix match
// only: there is no content sniffing, and an unrecognized MIME type is a
// hard error before any further work happens.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/achartier/docintel/internal/core/domain"
)

// Format is one format-specific extractor. Implementations must be safe
// for concurrent use; anything stateful (the OCR engine) is created per
// call, never shared.
type Format interface {
	Extract(ctx context.Context, data []byte) (domain.ProcessedDocument, error)
}

const (
	mimePDF        = "application/pdf"
	mimeDOCX       = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeLegacyWord = "application/msword"
	mimeImage      = "image/"
	mimeText       = "text/"
)

type Dispatcher struct {
	pdf   Format
	docx  Format
	image Format
	text  Format
}

func NewDispatcher(pdf, docx, image, text Format) *Dispatcher {
	return &Dispatcher{pdf: pdf, docx: docx, image: image, text: text}
}

func (d *Dispatcher) Extract(ctx context.Context, data []byte, mimeType string) (domain.ProcessedDocument, error) {
	mt := canonicalMIME(mimeType)
	switch {
	case mt == mimePDF:
		return d.pdf.Extract(ctx, data)
	case mt == mimeDOCX || mt == mimeLegacyWord:
		return d.docx.Extract(ctx, data)
	case strings.HasPrefix(mt, mimeImage):
		return d.image.Extract(ctx, data)
	case strings.HasPrefix(mt, mimeText):
		return d.text.Extract(ctx, data)
	default:
		return domain.ProcessedDocument{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, mimeType)
	}
}

// canonicalMIME lowercases and drops parameters ("text/plain; charset=utf-8").
func canonicalMIME(mimeType string) string {
	mt, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// CountWords is the shared word-count rule for all formats: the length of
// the whitespace-split text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
