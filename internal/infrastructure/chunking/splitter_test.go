package chunking

import (
	"strings"
	"testing"
)

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter(100)
	if chunks := s.Split(""); chunks != nil {
		t.Fatalf("expected nil for empty text, got %v", chunks)
	}
	if chunks := s.Split("   \n\n  "); chunks != nil {
		t.Fatalf("expected nil for blank text, got %v", chunks)
	}
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(100)
	chunks := s.Split("p1\n\np2")
	if len(chunks) != 1 || chunks[0] != "p1\n\np2" {
		t.Fatalf("unexpected chunks: %v", chunks)
	}
}

func TestSplitRespectsParagraphBoundaries(t *testing.T) {
	p1 := strings.Repeat("a", 40)
	p2 := strings.Repeat("b", 40)
	p3 := strings.Repeat("c", 40)
	text := p1 + "\n\n" + p2 + "\n\n" + p3

	s := NewSplitter(90)
	chunks := s.Split(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != p1+"\n\n"+p2 {
		t.Fatalf("first chunk should hold two whole paragraphs, got %q", chunks[0])
	}
	if chunks[1] != p3 {
		t.Fatalf("second chunk = %q", chunks[1])
	}
	for _, c := range chunks {
		if len(c) > 90 {
			t.Fatalf("chunk exceeds max size: %d", len(c))
		}
		if c == "" {
			t.Fatalf("empty chunk produced")
		}
	}
	if strings.Join(chunks, "\n\n") != text {
		t.Fatalf("joined chunks do not reconstruct input")
	}
}

func TestSplitHardSplitsOversizedParagraph(t *testing.T) {
	huge := strings.Repeat("x", 250)
	s := NewSplitter(100)
	chunks := s.Split(huge)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if strings.Join(chunks, "") != huge {
		t.Fatalf("hard-split pieces do not concatenate to the input")
	}
	if len(chunks[0]) != 100 || len(chunks[1]) != 100 || len(chunks[2]) != 50 {
		t.Fatalf("unexpected piece sizes: %d %d %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func TestSplitLongDocumentYieldsExpectedChunkCount(t *testing.T) {
	para := strings.Repeat("w", 1000)
	parts := make([]string, 20)
	for i := range parts {
		parts[i] = para
	}
	text := strings.Join(parts, "\n\n")

	s := NewSplitter(8000)
	chunks := s.Split(text)
	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks for 20k chars at max 8000, got %d", len(chunks))
	}
	if strings.Join(chunks, "\n\n") != text {
		t.Fatalf("joined chunks do not reconstruct input")
	}
}
