package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/achartier/docintel/internal/core/domain"
)

type ingestRepoFake struct {
	created *domain.Document
	err     error
}

func (f *ingestRepoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.err != nil {
		return f.err
	}
	copyDoc := *doc
	f.created = &copyDoc
	return nil
}

func (f *ingestRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	return nil, errors.New("not implemented")
}
func (f *ingestRepoFake) UpdateStatus(context.Context, string, domain.DocumentStatus, string) error {
	return errors.New("not implemented")
}
func (f *ingestRepoFake) SaveResult(context.Context, string, *domain.DocumentResult) error {
	return errors.New("not implemented")
}
func (f *ingestRepoFake) ListProcessed(context.Context, *time.Time, *time.Time) ([]domain.Document, error) {
	return nil, errors.New("not implemented")
}

type ingestStorageFake struct {
	savedKey  string
	savedBody string
	err       error
}

func (f *ingestStorageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *ingestStorageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

type ingestQueueFake struct {
	documentID string
	err        error
}

func (f *ingestQueueFake) PublishDocumentIngested(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.documentID = documentID
	return nil
}

func (f *ingestQueueFake) SubscribeDocumentIngested(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

func TestIngestUploadSuccess(t *testing.T) {
	repo := &ingestRepoFake{}
	storage := &ingestStorageFake{}
	queue := &ingestQueueFake{}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	doc, err := uc.Upload(context.Background(), "facture mars.pdf", "application/pdf", bytes.NewBufferString("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.ID == "" {
		t.Fatalf("expected document id")
	}
	if doc.Status != domain.StatusUploaded {
		t.Fatalf("status = %s", doc.Status)
	}
	if storage.savedBody != "%PDF-1.4" {
		t.Fatalf("stored body = %q", storage.savedBody)
	}
	if !strings.HasSuffix(storage.savedKey, "_facture_mars.pdf") {
		t.Fatalf("storage key = %q", storage.savedKey)
	}
	if repo.created == nil || repo.created.ID != doc.ID {
		t.Fatalf("document metadata not persisted")
	}
	if queue.documentID != doc.ID {
		t.Fatalf("ingestion event not published")
	}
}

func TestIngestUploadStorageFailure(t *testing.T) {
	repo := &ingestRepoFake{}
	storage := &ingestStorageFake{err: errors.New("disk full")}
	queue := &ingestQueueFake{}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	_, err := uc.Upload(context.Background(), "a.txt", "text/plain", bytes.NewBufferString("x"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if repo.created != nil {
		t.Fatalf("metadata must not be written when storage fails")
	}
	if queue.documentID != "" {
		t.Fatalf("event must not be published when storage fails")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"contrat cadre (v2).docx": "contrat_cadre__v2_.docx",
		"../../etc/passwd":        "passwd",
		"":                        "document.bin",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
