package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/core/ports"
)

// summarizeLongThreshold is the text length above which summarization
// switches to the map-reduce path.
const summarizeLongThreshold = 8000

const defaultChunkConcurrency = 4

// SummarizeUseCase produces a structured summary. Short documents go
// through a single completion; long documents are chunked, each chunk
// summarized independently, and the partial summaries reduced by one
// final completion. A failed chunk is dropped from the reduction
// instead of failing the whole summary.
type SummarizeUseCase struct {
	gateway          ports.ModelGateway
	chunker          ports.Chunker
	chunkConcurrency int
	logger           *slog.Logger
}

func NewSummarizeUseCase(gateway ports.ModelGateway, chunker ports.Chunker, logger *slog.Logger) *SummarizeUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummarizeUseCase{
		gateway:          gateway,
		chunker:          chunker,
		chunkConcurrency: defaultChunkConcurrency,
		logger:           logger,
	}
}

func (uc *SummarizeUseCase) Summarize(ctx context.Context, text string) (domain.Summary, error) {
	if len(text) <= summarizeLongThreshold {
		return uc.summarizeOnce(ctx, summarizeSystemPrompt, text, true)
	}
	return uc.summarizeMapReduce(ctx, text)
}

func (uc *SummarizeUseCase) summarizeOnce(ctx context.Context, systemPrompt, text string, useCache bool) (domain.Summary, error) {
	completion, err := uc.gateway.Complete(ctx, systemPrompt, text, ports.CompleteOpts{
		UseCache:    useCache,
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		return domain.Summary{}, err
	}

	// The response contract uses camelCase keys; the persisted domain
	// shape does not, so decode through an intermediate.
	var payload struct {
		Summary     string   `json:"summary"`
		Parties     []string `json:"parties"`
		Duration    *string  `json:"duration"`
		Amounts     []string `json:"amounts"`
		RiskClauses []string `json:"riskClauses"`
	}
	if err := json.Unmarshal([]byte(stripMarkdownFences(completion.Text)), &payload); err != nil {
		return domain.Summary{}, fmt.Errorf("parse summary json: %w", err)
	}
	return domain.Summary{
		Summary:     payload.Summary,
		Parties:     payload.Parties,
		Duration:    payload.Duration,
		Amounts:     payload.Amounts,
		RiskClauses: payload.RiskClauses,
	}, nil
}

func (uc *SummarizeUseCase) summarizeMapReduce(ctx context.Context, text string) (domain.Summary, error) {
	chunks := uc.chunker.Split(text)
	if len(chunks) == 0 {
		return domain.Summary{}, domain.WrapError(domain.ErrInvalidInput, "summarize", errors.New("chunking produced zero chunks"))
	}

	partials := make([]string, len(chunks))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(uc.chunkConcurrency)

	for i, chunk := range chunks {
		group.Go(func() error {
			// Chunk boundaries are document-specific, so caching these
			// calls would only dilute the cache.
			completion, err := uc.gateway.Complete(groupCtx, chunkSummarySystemPrompt, chunk, ports.CompleteOpts{
				UseCache:    false,
				MaxTokens:   512,
				Temperature: 0.3,
			})
			if err != nil {
				uc.logger.Warn("chunk_summary_failed", "chunk", i, "error", err)
				return nil
			}
			partials[i] = completion.Text
			return nil
		})
	}
	// Goroutines only return nil; Wait is the join barrier before the
	// reduction call.
	_ = group.Wait()
	if err := ctx.Err(); err != nil {
		return domain.Summary{}, err
	}

	kept := make([]string, 0, len(partials))
	for _, partial := range partials {
		if strings.TrimSpace(partial) != "" {
			kept = append(kept, partial)
		}
	}
	if len(kept) == 0 {
		return domain.Summary{}, fmt.Errorf("summarize: all %d chunk summaries failed", len(chunks))
	}
	if len(kept) < len(chunks) {
		uc.logger.Warn("partial_chunk_summaries", "kept", len(kept), "total", len(chunks))
	}

	return uc.summarizeOnce(ctx, reduceSummarySystemPrompt, strings.Join(kept, "\n\n"), true)
}
