// Package bootstrap wires configuration, infrastructure and use cases
// into a runnable application graph shared by the API and the worker.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/achartier/docintel/internal/config"
	"github.com/achartier/docintel/internal/core/ports"
	"github.com/achartier/docintel/internal/core/usecase"
	"github.com/achartier/docintel/internal/infrastructure/chunking"
	"github.com/achartier/docintel/internal/infrastructure/export/excel"
	"github.com/achartier/docintel/internal/infrastructure/extractor"
	"github.com/achartier/docintel/internal/infrastructure/extractor/docx"
	"github.com/achartier/docintel/internal/infrastructure/extractor/ocrimage"
	"github.com/achartier/docintel/internal/infrastructure/extractor/pdf"
	"github.com/achartier/docintel/internal/infrastructure/extractor/plaintext"
	"github.com/achartier/docintel/internal/infrastructure/llm"
	"github.com/achartier/docintel/internal/infrastructure/llm/openai"
	"github.com/achartier/docintel/internal/infrastructure/queue/nats"
	"github.com/achartier/docintel/internal/infrastructure/repository/postgres"
	"github.com/achartier/docintel/internal/infrastructure/resilience"
	"github.com/achartier/docintel/internal/infrastructure/storage/localfs"
	"github.com/achartier/docintel/internal/observability/logging"
	"github.com/achartier/docintel/internal/observability/metrics"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	Reader    ports.DocumentReader
	Exporter  ports.ResultExporter

	HTTPMetrics   *metrics.HTTPServerMetrics
	WorkerMetrics *metrics.WorkerMetrics

	closeFn func()
}

// New builds the full application graph. The service name labels logs
// and metrics so the API and the worker stay distinguishable when both
// feed the same collectors.
func New(ctx context.Context, cfg config.Config, service string) (*App, error) {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
		Logger:             logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	workerMetrics := metrics.NewWorkerMetrics(service)

	provider := openai.New(openai.Config{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
	})
	gateway := llm.NewGateway(
		provider,
		llm.Config{
			CacheTTL:          cfg.ModelCacheTTL.Std(),
			CacheMaxSize:      cfg.ModelCacheMaxSize,
			RequestsPerSecond: cfg.ModelRPS,
			Burst:             cfg.ModelBurst,
		},
		resilience.NewExecutor(modelResilienceConfig()),
		openai.ClassifyError,
		workerMetrics,
		logger,
	)

	formats := extractor.NewDispatcher(
		pdf.New(),
		docx.New(),
		ocrimage.New(ocrimage.Config{
			Tesseract: cfg.OCRBinary,
			Language:  cfg.OCRLanguages,
		}, logger),
		plaintext.New(),
	)
	chunker := chunking.NewSplitter(cfg.MaxChunkSize)

	classifyUC := usecase.NewClassifyDocumentUseCase(gateway, logger)
	extractUC := usecase.NewExtractFieldsUseCase(gateway, logger)
	summarizeUC := usecase.NewSummarizeUseCase(gateway, chunker, logger)
	pipeline := usecase.NewIntelligentExtractionUseCase(formats, classifyUC, extractUC, summarizeUC, logger)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, storage, pipeline)
	exporter := excel.NewService(repo, logger)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue: queue,
		Repo:  repo,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		Reader:    repo,
		Exporter:  exporter,

		HTTPMetrics:   metrics.NewHTTPServerMetrics(service),
		WorkerMetrics: workerMetrics,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

// modelResilienceConfig stretches the default retry schedule: model
// providers rate limit in seconds, not milliseconds, so short backoffs
// just burn attempts.
func modelResilienceConfig() resilience.Config {
	cfg := resilience.DefaultConfig()
	cfg.RetryInitialBackoff = 500 * time.Millisecond
	cfg.RetryMaxBackoff = 5 * time.Second
	return cfg
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
