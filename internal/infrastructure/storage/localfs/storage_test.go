package localfs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/achartier/docintel/internal/core/domain"
)

func TestSaveThenOpenRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := s.Save(context.Background(), "doc-1_invoice.pdf", strings.NewReader("%PDF-1.4")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	reader, err := s.Open(context.Background(), "doc-1_invoice.pdf")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Fatalf("content = %q", data)
	}
}

func TestOpenMissingKeyReturnsNotFound(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = s.Open(context.Background(), "absent.bin")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, key := range []string{"../escape", "a/b", "", ".hidden"} {
		if err := s.Save(context.Background(), key, strings.NewReader("x")); err == nil {
			t.Fatalf("Save(%q) should fail", key)
		}
	}
}
