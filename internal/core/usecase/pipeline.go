package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/core/ports"
)

// IntelligentExtractionUseCase routes a raw document through format
// extraction, normalization, classification, type-specific field
// extraction and, for contracts, summarization.
//
// Stage policy: format extraction failures are fatal. A classification
// failure ends the pipeline but still returns a result with null
// stages. Extraction and summarization failures degrade the result
// instead of failing it.
type IntelligentExtractionUseCase struct {
	formats    ports.FormatExtractor
	classifier *ClassifyDocumentUseCase
	extractor  *ExtractFieldsUseCase
	summarizer *SummarizeUseCase
	logger     *slog.Logger
}

func NewIntelligentExtractionUseCase(
	formats ports.FormatExtractor,
	classifier *ClassifyDocumentUseCase,
	extractor *ExtractFieldsUseCase,
	summarizer *SummarizeUseCase,
	logger *slog.Logger,
) *IntelligentExtractionUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntelligentExtractionUseCase{
		formats:    formats,
		classifier: classifier,
		extractor:  extractor,
		summarizer: summarizer,
		logger:     logger,
	}
}

const (
	stageFormatExtraction = "format_extraction"
	stageClassification   = "classification"
	stageFieldExtraction  = "field_extraction"
	stageSummarization    = "summarization"
)

func (uc *IntelligentExtractionUseCase) IntelligentExtraction(ctx context.Context, data []byte, mimeType string) (domain.DocumentResult, error) {
	var result domain.DocumentResult

	processed, err := uc.formats.Extract(ctx, data, mimeType)
	if err != nil {
		return result, fmt.Errorf("%s: %w", stageFormatExtraction, err)
	}

	text := domain.NormalizeText(processed.Text)
	if text == "" {
		return result, domain.WrapError(domain.ErrInvalidInput, stageFormatExtraction, errors.New("document contains no text"))
	}

	uc.logger.Info("document_extracted",
		"format", processed.Format,
		"words", processed.WordCount,
		"pages", processed.PageCount,
	)

	classification, err := uc.classifier.Classify(ctx, text)
	if err != nil {
		uc.logger.Warn("classification_failed", "error", err)
		result.FailedStages = append(result.FailedStages, domain.StageFailure{
			Stage:  stageClassification,
			Reason: err.Error(),
		})
		return result, nil
	}
	result.Classification = &classification

	extraction, err := uc.extractor.Extract(ctx, classification.DocumentType, text)
	switch {
	case err == nil:
		result.Extraction = &extraction
	case domain.IsKind(err, domain.ErrUnknownDocumentType):
		// No field contract for this type. The classification alone is
		// a valid outcome.
		uc.logger.Info("extraction_skipped", "document_type", classification.DocumentType)
	default:
		uc.logger.Warn("field_extraction_failed", "document_type", classification.DocumentType, "error", err)
		result.FailedStages = append(result.FailedStages, domain.StageFailure{
			Stage:  stageFieldExtraction,
			Reason: err.Error(),
		})
	}
	if ctx.Err() != nil {
		return result, nil
	}

	if classification.DocumentType == domain.TypeContract {
		summary, err := uc.summarizer.Summarize(ctx, text)
		if err != nil {
			uc.logger.Warn("summarization_failed", "error", err)
			result.FailedStages = append(result.FailedStages, domain.StageFailure{
				Stage:  stageSummarization,
				Reason: err.Error(),
			})
		} else {
			result.Summary = &summary
		}
	}

	return result, nil
}
