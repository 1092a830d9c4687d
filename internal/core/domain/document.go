package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// DocumentFormat identifies which format extractor produced the text.
type DocumentFormat string

const (
	FormatPDF      DocumentFormat = "pdf"
	FormatDOCX     DocumentFormat = "docx"
	FormatImageOCR DocumentFormat = "image-ocr"
	FormatText     DocumentFormat = "text"
)

// Document is the persisted envelope around one uploaded file and,
// once the pipeline has run, its assembled result.
type Document struct {
	ID          string          `json:"id"`
	Filename    string          `json:"filename"`
	MimeType    string          `json:"mime_type"`
	StoragePath string          `json:"storage_path"`
	Status      DocumentStatus  `json:"status"`
	Error       string          `json:"error,omitempty"`
	Result      *DocumentResult `json:"result,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProcessedDocument is the output of format extraction, before
// normalization. It is a value: created once per extraction call,
// consumed by the pipeline, never persisted.
type ProcessedDocument struct {
	Text      string         `json:"text"`
	WordCount int            `json:"word_count"`
	PageCount int            `json:"page_count,omitempty"`
	Format    DocumentFormat `json:"format"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
