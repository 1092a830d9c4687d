package ports

import (
	"context"
	"io"
	"time"

	"github.com/achartier/docintel/internal/core/domain"
)

// DocumentRepository persists document state and assembled results.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveResult(ctx context.Context, id string, result *domain.DocumentResult) error
	ListProcessed(ctx context.Context, from, to *time.Time) ([]domain.Document, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// FormatExtractor converts raw bytes plus a declared MIME type into text.
// An unsupported MIME type is a hard error, never a best-effort guess.
type FormatExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) (domain.ProcessedDocument, error)
}

// Chunker splits normalized text into bounded segments along paragraph
// boundaries.
type Chunker interface {
	Split(text string) []string
}

// CompleteOpts tunes one gateway call.
type CompleteOpts struct {
	UseCache    bool
	MaxTokens   int
	Temperature float64
}

// Completion is one gateway response. TokensUsed is zero on cache hits:
// a served entry costs nothing.
type Completion struct {
	Text       string
	TokensUsed int
	Cached     bool
}

// ModelGateway is the single choke point for language-model calls: request
// construction, response caching and token accounting all live behind it.
type ModelGateway interface {
	Complete(ctx context.Context, systemPrompt, userText string, opts CompleteOpts) (Completion, error)
}
