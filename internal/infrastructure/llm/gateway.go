// Package llm provides the single entry point for model completions.
// Every prompt in the pipeline goes through the Gateway, which layers
// response caching, rate limiting and retry/breaker protection over a
// completion provider.
package llm

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/core/ports"
	"github.com/achartier/docintel/internal/infrastructure/resilience"
)

// Request is what the Gateway hands to a completion provider.
type Request struct {
	SystemPrompt string
	UserText     string
	MaxTokens    int
	Temperature  float64
}

// Provider performs a single model completion without caching or retries.
type Provider interface {
	Complete(ctx context.Context, req Request) (ports.Completion, error)
}

// Metrics receives gateway counters. A nil Metrics disables recording.
type Metrics interface {
	RecordModelCall(operation, outcome string, tokens int)
	RecordCacheHit(operation string)
}

type Config struct {
	CacheTTL          time.Duration
	CacheMaxSize      int
	RequestsPerSecond float64
	Burst             int
}

func DefaultConfig() Config {
	return Config{
		CacheTTL:          time.Hour,
		CacheMaxSize:      1000,
		RequestsPerSecond: 2,
		Burst:             4,
	}
}

type Gateway struct {
	provider   Provider
	cache      *responseCache
	limiter    *rate.Limiter
	executor   *resilience.Executor
	classifier resilience.ErrorClassifier
	metrics    Metrics
	logger     *slog.Logger
}

func NewGateway(
	provider Provider,
	cfg Config,
	executor *resilience.Executor,
	classifier resilience.ErrorClassifier,
	metrics Metrics,
	logger *slog.Logger,
) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultConfig().RequestsPerSecond
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = DefaultConfig().Burst
	}
	return &Gateway{
		provider:   provider,
		cache:      newResponseCache(cfg.CacheTTL, cfg.CacheMaxSize),
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		executor:   executor,
		classifier: classifier,
		metrics:    metrics,
		logger:     logger,
	}
}

const completeOperation = "model_complete"

func (g *Gateway) Complete(ctx context.Context, systemPrompt, userText string, opts ports.CompleteOpts) (ports.Completion, error) {
	key := cacheKey(systemPrompt, userText)

	if opts.UseCache {
		if text, ok := g.cache.get(key); ok {
			if g.metrics != nil {
				g.metrics.RecordCacheHit(completeOperation)
			}
			g.logger.Debug("model_cache_hit", "key", key[:12])
			return ports.Completion{Text: text, Cached: true}, nil
		}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return ports.Completion{}, domain.WrapError(domain.ErrModelCall, completeOperation, err)
	}

	req := Request{
		SystemPrompt: systemPrompt,
		UserText:     userText,
		MaxTokens:    opts.MaxTokens,
		Temperature:  opts.Temperature,
	}

	start := time.Now()
	var completion ports.Completion
	err := g.executor.Execute(ctx, completeOperation, func(ctx context.Context) error {
		var callErr error
		completion, callErr = g.provider.Complete(ctx, req)
		return callErr
	}, g.classifier)
	if err != nil {
		if g.metrics != nil {
			g.metrics.RecordModelCall(completeOperation, "error", 0)
		}
		g.logger.Error("model_call_failed",
			"elapsed_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return ports.Completion{}, domain.WrapError(domain.ErrModelCall, completeOperation, err)
	}

	if g.metrics != nil {
		g.metrics.RecordModelCall(completeOperation, "ok", completion.TokensUsed)
	}
	g.logger.Debug("model_call_ok",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"tokens", completion.TokensUsed,
	)

	if opts.UseCache {
		g.cache.put(key, completion.Text)
	}
	return completion, nil
}
