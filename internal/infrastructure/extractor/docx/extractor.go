// Package docx extracts raw text from Word documents. A .docx file is a
// zip archive; the text runs live in word/document.xml as <w:t> elements
// grouped into <w:p> paragraphs. Formatting is discarded.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/infrastructure/extractor"
)

const documentEntry = "word/document.xml"

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, data []byte) (domain.ProcessedDocument, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.ProcessedDocument{}, domain.WrapError(domain.ErrExtractionFailed, "open docx archive", err)
	}

	var entry *zip.File
	for _, f := range archive.File {
		if f.Name == documentEntry {
			entry = f
			break
		}
	}
	if entry == nil {
		return domain.ProcessedDocument{}, domain.WrapError(
			domain.ErrExtractionFailed, "open docx archive", errors.New("missing word/document.xml"))
	}

	rc, err := entry.Open()
	if err != nil {
		return domain.ProcessedDocument{}, domain.WrapError(domain.ErrExtractionFailed, "open document.xml", err)
	}
	defer rc.Close()

	text, err := extractRuns(rc)
	if err != nil {
		return domain.ProcessedDocument{}, domain.WrapError(domain.ErrExtractionFailed, "parse document.xml", err)
	}

	return domain.ProcessedDocument{
		Text:      text,
		WordCount: extractor.CountWords(text),
		Format:    domain.FormatDOCX,
	}, nil
}

// extractRuns walks the XML token stream collecting <w:t> character data,
// emitting a newline per closed paragraph and per explicit line break.
func extractRuns(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	var inText bool

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br", "cr":
				sb.WriteString("\n")
			case "tab":
				sb.WriteString("\t")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
