package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/infrastructure/extractor"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract parses page text and page count from a PDF byte buffer. The
// underlying parser panics on malformed cross-reference tables, so the
// whole parse is fenced and a panic surfaces as ErrExtractionFailed.
func (e *Extractor) Extract(_ context.Context, data []byte) (doc domain.ProcessedDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.WrapError(domain.ErrExtractionFailed, "parse pdf", fmt.Errorf("parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.ProcessedDocument{}, domain.WrapError(domain.ErrExtractionFailed, "parse pdf", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return domain.ProcessedDocument{}, domain.WrapError(domain.ErrExtractionFailed, "extract pdf text", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return domain.ProcessedDocument{}, domain.WrapError(domain.ErrExtractionFailed, "read pdf text", err)
	}

	text := buf.String()
	metadata := map[string]any{"pages": reader.NumPage()}
	if info := reader.Trailer().Key("Info"); !info.IsNull() {
		if title := info.Key("Title"); !title.IsNull() {
			metadata["title"] = title.Text()
		}
		if author := info.Key("Author"); !author.IsNull() {
			metadata["author"] = author.Text()
		}
	}

	return domain.ProcessedDocument{
		Text:      text,
		WordCount: extractor.CountWords(text),
		PageCount: reader.NumPage(),
		Format:    domain.FormatPDF,
		Metadata:  metadata,
	}, nil
}
