package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/core/ports"
)

// ProcessDocumentUseCase drives one stored document through the
// intelligence pipeline and persists the outcome. A pipeline error
// marks the document failed; a degraded result still counts as ready.
type ProcessDocumentUseCase struct {
	repo     ports.DocumentRepository
	storage  ports.ObjectStorage
	pipeline *IntelligentExtractionUseCase
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	pipeline *IntelligentExtractionUseCase,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:     repo,
		storage:  storage,
		pipeline: pipeline,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.runPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveResult(ctx, documentID, &result); err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save pipeline result: %w", err)
	}

	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) runPipeline(ctx context.Context, documentID string) (domain.DocumentResult, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return domain.DocumentResult{}, fmt.Errorf("fetch document by id: %w", err)
	}

	reader, err := uc.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return domain.DocumentResult{}, fmt.Errorf("open stored document: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return domain.DocumentResult{}, fmt.Errorf("read stored document: %w", err)
	}

	return uc.pipeline.IntelligentExtraction(ctx, data, doc.MimeType)
}
