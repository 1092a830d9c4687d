package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/achartier/docintel/internal/core/ports"
)

type fixedChunker struct {
	size int
}

func (c fixedChunker) Split(text string) []string {
	var chunks []string
	for len(text) > c.size {
		chunks = append(chunks, text[:c.size])
		text = text[c.size:]
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

type summarizeGatewayFake struct {
	mu          sync.Mutex
	chunkCalls  int
	reduceCalls int
	shortCalls  int
	failChunks  map[int]bool
	uncachedOK  bool
	reduceSeen  string
}

func (f *summarizeGatewayFake) Complete(_ context.Context, systemPrompt, userText string, opts ports.CompleteOpts) (ports.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch systemPrompt {
	case chunkSummarySystemPrompt:
		idx := f.chunkCalls
		f.chunkCalls++
		if !opts.UseCache {
			f.uncachedOK = true
		}
		if f.failChunks[idx] {
			return ports.Completion{}, errors.New("chunk backend error")
		}
		return ports.Completion{Text: "partial " + userText[:8]}, nil
	case reduceSummarySystemPrompt:
		f.reduceCalls++
		f.reduceSeen = userText
		return ports.Completion{Text: `{"summary":"merged","parties":["A"],"duration":null,"amounts":[],"riskClauses":[]}`}, nil
	default:
		f.shortCalls++
		return ports.Completion{Text: `{"summary":"short","parties":[],"duration":null,"amounts":[],"riskClauses":[]}`}, nil
	}
}

func TestSummarizeShortDocumentSingleCall(t *testing.T) {
	gateway := &summarizeGatewayFake{}
	uc := NewSummarizeUseCase(gateway, fixedChunker{size: 8000}, nil)

	summary, err := uc.Summarize(context.Background(), "a short contract")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary.Summary != "short" {
		t.Fatalf("summary = %q", summary.Summary)
	}
	if gateway.shortCalls != 1 || gateway.chunkCalls != 0 || gateway.reduceCalls != 0 {
		t.Fatalf("calls = %d/%d/%d, want single short call",
			gateway.shortCalls, gateway.chunkCalls, gateway.reduceCalls)
	}
}

func TestSummarizeLongDocumentMapReduceCallCount(t *testing.T) {
	gateway := &summarizeGatewayFake{}
	uc := NewSummarizeUseCase(gateway, fixedChunker{size: 8000}, nil)

	text := strings.Repeat("x", 20000)
	summary, err := uc.Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary.Summary != "merged" {
		t.Fatalf("summary = %q", summary.Summary)
	}
	if gateway.chunkCalls < 3 {
		t.Fatalf("chunk calls = %d, want >= 3", gateway.chunkCalls)
	}
	if gateway.reduceCalls != 1 {
		t.Fatalf("reduce calls = %d, want exactly 1", gateway.reduceCalls)
	}
	if gateway.shortCalls != 0 {
		t.Fatalf("short-path call made on the long path")
	}
	if !gateway.uncachedOK {
		t.Fatalf("per-chunk calls must bypass the cache")
	}
}

func TestSummarizeSkipsFailedChunks(t *testing.T) {
	gateway := &summarizeGatewayFake{failChunks: map[int]bool{1: true}}
	uc := NewSummarizeUseCase(gateway, fixedChunker{size: 8000}, nil)
	uc.chunkConcurrency = 1

	text := strings.Repeat("y", 20000)
	if _, err := uc.Summarize(context.Background(), text); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if gateway.reduceCalls != 1 {
		t.Fatalf("reduce calls = %d", gateway.reduceCalls)
	}
	if parts := strings.Split(gateway.reduceSeen, "\n\n"); len(parts) != gateway.chunkCalls-1 {
		t.Fatalf("reduction received %d partials, want %d", len(parts), gateway.chunkCalls-1)
	}
}

func TestSummarizeFailsWhenEveryChunkFails(t *testing.T) {
	gateway := &summarizeGatewayFake{failChunks: map[int]bool{0: true, 1: true, 2: true}}
	uc := NewSummarizeUseCase(gateway, fixedChunker{size: 8000}, nil)
	uc.chunkConcurrency = 1

	text := strings.Repeat("z", 20000)
	if _, err := uc.Summarize(context.Background(), text); err == nil {
		t.Fatalf("expected error when no chunk summary survives")
	}
	if gateway.reduceCalls != 0 {
		t.Fatalf("reduction must not run without partials")
	}
}
