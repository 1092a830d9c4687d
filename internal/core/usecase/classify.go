package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/core/ports"
)

// classifyInputLimit bounds how much text the classifier sees. The
// document type is almost always decidable from the opening text and
// bounding the input keeps the call cheap.
const classifyInputLimit = 4000

// classifyTemperature is kept near zero so repeated runs on the same
// document agree on the type.
const classifyTemperature = 0.1

type ClassifyDocumentUseCase struct {
	gateway ports.ModelGateway
	logger  *slog.Logger
}

func NewClassifyDocumentUseCase(gateway ports.ModelGateway, logger *slog.Logger) *ClassifyDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassifyDocumentUseCase{gateway: gateway, logger: logger}
}

func (uc *ClassifyDocumentUseCase) Classify(ctx context.Context, text string) (domain.Classification, error) {
	completion, err := uc.gateway.Complete(ctx, classifySystemPrompt, truncate(text, classifyInputLimit), ports.CompleteOpts{
		UseCache:    true,
		MaxTokens:   512,
		Temperature: classifyTemperature,
	})
	if err != nil {
		return domain.Classification{}, err
	}

	var payload struct {
		DocumentType string         `json:"document_type"`
		Confidence   float64        `json:"confidence"`
		KeyFields    map[string]any `json:"key_fields"`
	}
	cleaned := stripMarkdownFences(completion.Text)
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return domain.Classification{}, domain.WrapError(domain.ErrClassificationParse, "classify_document", err)
	}

	docType, err := domain.ParseDocumentType(payload.DocumentType)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("classify_document: %w", err)
	}

	uc.logger.Info("document_classified",
		"document_type", docType,
		"confidence", payload.Confidence,
		"cached", completion.Cached,
	)

	return domain.Classification{
		DocumentType: docType,
		Confidence:   clampConfidence(payload.Confidence),
		KeyFields:    payload.KeyFields,
	}, nil
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
