package extractor

import (
	"context"
	"testing"

	"github.com/achartier/docintel/internal/core/domain"
)

type formatFake struct {
	format domain.DocumentFormat
	calls  int
}

func (f *formatFake) Extract(context.Context, []byte) (domain.ProcessedDocument, error) {
	f.calls++
	return domain.ProcessedDocument{Format: f.format}, nil
}

func newTestDispatcher() (*Dispatcher, map[string]*formatFake) {
	fakes := map[string]*formatFake{
		"pdf":   {format: domain.FormatPDF},
		"docx":  {format: domain.FormatDOCX},
		"image": {format: domain.FormatImageOCR},
		"text":  {format: domain.FormatText},
	}
	return NewDispatcher(fakes["pdf"], fakes["docx"], fakes["image"], fakes["text"]), fakes
}

func TestDispatchByMIMEType(t *testing.T) {
	cases := []struct {
		mime string
		want string
	}{
		{"application/pdf", "pdf"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "docx"},
		{"application/msword", "docx"},
		{"image/png", "image"},
		{"image/jpeg", "image"},
		{"text/plain", "text"},
		{"text/plain; charset=utf-8", "text"},
		{"TEXT/CSV", "text"},
	}
	for _, tc := range cases {
		d, fakes := newTestDispatcher()
		if _, err := d.Extract(context.Background(), []byte("x"), tc.mime); err != nil {
			t.Fatalf("Extract(%q) error = %v", tc.mime, err)
		}
		if fakes[tc.want].calls != 1 {
			t.Fatalf("Extract(%q) did not route to %s", tc.mime, tc.want)
		}
	}
}

func TestDispatchRejectsUnsupportedMIME(t *testing.T) {
	d, fakes := newTestDispatcher()
	for _, mime := range []string{"application/zip", "application/json", "video/mp4", ""} {
		_, err := d.Extract(context.Background(), []byte("x"), mime)
		if err == nil {
			t.Fatalf("Extract(%q) should fail", mime)
		}
		if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
			t.Fatalf("Extract(%q) error = %v, want ErrUnsupportedFormat", mime, err)
		}
	}
	for name, f := range fakes {
		if f.calls != 0 {
			t.Fatalf("unsupported MIME reached the %s extractor", name)
		}
	}
}

func TestCountWords(t *testing.T) {
	if n := CountWords("  one\ttwo\nthree  "); n != 3 {
		t.Fatalf("CountWords = %d, want 3", n)
	}
	if n := CountWords(""); n != 0 {
		t.Fatalf("CountWords(empty) = %d", n)
	}
}
