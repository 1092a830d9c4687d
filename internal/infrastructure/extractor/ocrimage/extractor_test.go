package ocrimage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/achartier/docintel/internal/core/domain"
)

type fakeRunner struct {
	outputs [][]byte
	errs    []error
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, append([]string{name}, args...))
	var out []byte
	if idx < len(f.outputs) {
		out = f.outputs[idx]
	}
	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	return out, nil, err
}

func TestExtractRunsTesseractWithDualLanguage(t *testing.T) {
	runner := &fakeRunner{outputs: [][]byte{[]byte("Facture n° 42\nTotal: 10,00 €\n")}}
	e := New(Config{}, nil)
	e.runner = runner

	doc, err := e.Extract(context.Background(), []byte{0xFF, 0xD8})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if doc.Format != domain.FormatImageOCR {
		t.Fatalf("format = %s", doc.Format)
	}
	if doc.WordCount != 6 {
		t.Fatalf("word count = %d", doc.WordCount)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 tesseract call, got %d", len(runner.calls))
	}
	joined := strings.Join(runner.calls[0], " ")
	if !strings.Contains(joined, "-l fra+eng") {
		t.Fatalf("missing dual-language flag: %s", joined)
	}
}

func TestExtractSurfacesTSVConfidence(t *testing.T) {
	tsv := "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
		"5\t1\t1\t1\t1\t1\t0\t0\t10\t10\t90\tHello\n" +
		"5\t1\t1\t1\t1\t2\t0\t0\t10\t10\t70\tWorld\n" +
		"2\t1\t1\t0\t0\t0\t0\t0\t10\t10\t-1\t\n"
	runner := &fakeRunner{outputs: [][]byte{[]byte("Hello World"), []byte(tsv)}}
	e := New(Config{EnableTSVConfidence: true}, nil)
	e.runner = runner

	doc, err := e.Extract(context.Background(), []byte{0x00})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	conf, ok := doc.Metadata["ocr_confidence"].(float64)
	if !ok {
		t.Fatalf("missing ocr_confidence in metadata: %+v", doc.Metadata)
	}
	if conf < 0.79 || conf > 0.81 {
		t.Fatalf("mean confidence = %f, want 0.80", conf)
	}
}

func TestExtractWrapsEngineFailure(t *testing.T) {
	runner := &fakeRunner{errs: []error{errors.New("tesseract: exit status 1")}}
	e := New(Config{}, nil)
	e.runner = runner

	_, err := e.Extract(context.Background(), []byte{0x00})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}
