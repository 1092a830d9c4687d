// Package ocrimage extracts text from scanned images through a tesseract
// subprocess. Each Extract call writes its own temp file and spawns its
// own process: one OCR engine instance is owned by exactly one in-flight
// call, so concurrent extractions never share engine state.
package ocrimage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/infrastructure/extractor"
)

type Config struct {
	Tesseract string // binary name or absolute path; default "tesseract"
	Language  string // default "fra+eng": documents are Latin-script, French or English
	PSM       int    // page segmentation mode; 0 = tesseract default
	OEM       int    // engine mode; 0 = tesseract default

	// EnableTSVConfidence runs a second tesseract pass in TSV mode to
	// compute mean word confidence for the metadata.
	EnableTSVConfidence bool
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "fra+eng"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, data []byte) (domain.ProcessedDocument, error) {
	path, cleanup, err := writeTempImage(data)
	if err != nil {
		return domain.ProcessedDocument{}, domain.WrapError(domain.ErrExtractionFailed, "stage image for ocr", err)
	}
	defer cleanup()

	text, err := e.runTesseract(ctx, path)
	if err != nil {
		return domain.ProcessedDocument{}, domain.WrapError(domain.ErrExtractionFailed, "run ocr", err)
	}

	metadata := map[string]any{"language": e.cfg.Language}
	if e.cfg.EnableTSVConfidence {
		if conf, err := e.tsvConfidence(ctx, path); err == nil {
			metadata["ocr_confidence"] = conf
		} else {
			e.logger.Warn("ocr.confidence_pass_failed", "error", err)
		}
	}

	text = strings.TrimSpace(text)
	return domain.ProcessedDocument{
		Text:      text,
		WordCount: extractor.CountWords(text),
		Format:    domain.FormatImageOCR,
		Metadata:  metadata,
	}, nil
}

func (e *Extractor) runTesseract(ctx context.Context, path string) (string, error) {
	args := e.baseArgs(path)
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		e.logger.Error("ocr.tesseract_failed", "stderr", strings.TrimSpace(string(errb)), "error", err)
		return "", err
	}
	return string(out), nil
}

// tsvConfidence reruns tesseract in TSV mode and averages per-word
// confidence into 0..1.
func (e *Extractor) tsvConfidence(ctx context.Context, path string) (float64, error) {
	args := append(e.baseArgs(path), "tsv")
	out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return 0, err
	}
	return meanWordConfidence(string(out)), nil
}

func (e *Extractor) baseArgs(path string) []string {
	args := []string{path, "stdout", "-l", e.cfg.Language}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", itoa(e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", itoa(e.cfg.OEM))
	}
	return args
}

func writeTempImage(data []byte) (string, func(), error) {
	dir, err := os.MkdirTemp("", "docintel-ocr-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	path := filepath.Join(dir, uuid.NewString()+".img")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
