package plaintext

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/infrastructure/extractor"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, data []byte) (domain.ProcessedDocument, error) {
	if !utf8.Valid(data) {
		return domain.ProcessedDocument{}, domain.WrapError(
			domain.ErrInvalidEncoding, "decode plain text", errors.New("input is not valid UTF-8"))
	}
	text := strings.TrimSpace(string(data))
	return domain.ProcessedDocument{
		Text:      text,
		WordCount: extractor.CountWords(text),
		Format:    domain.FormatText,
	}, nil
}
