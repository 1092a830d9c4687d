package ports

import (
	"context"
	"io"
	"time"

	"github.com/achartier/docintel/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for document metadata and results.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// ResultExporter renders processed documents into a downloadable workbook.
type ResultExporter interface {
	ExportXLSX(ctx context.Context, from, to *time.Time) ([]byte, error)
}
