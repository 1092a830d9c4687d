package plaintext

import (
	"context"
	"testing"

	"github.com/achartier/docintel/internal/core/domain"
)

func TestExtractDecodesUTF8(t *testing.T) {
	doc, err := New().Extract(context.Background(), []byte("  Devis n° 7 — montant 1 200 €\n"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if doc.Format != domain.FormatText {
		t.Fatalf("format = %s", doc.Format)
	}
	if doc.Text != "Devis n° 7 — montant 1 200 €" {
		t.Fatalf("text = %q", doc.Text)
	}
	if doc.WordCount != 6 {
		t.Fatalf("word count = %d", doc.WordCount)
	}
}

func TestExtractRejectsInvalidEncoding(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte{0xC3, 0x28, 0xFF})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}
