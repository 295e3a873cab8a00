package config

import (
	"errors"
	"fmt"
	"net/http"

	"pdf-summarizer/internal/domain"
	"pdf-summarizer/internal/infra/huggingface"
	"pdf-summarizer/internal/infra/openai"
	"pdf-summarizer/internal/infra/supabase"
	"pdf-summarizer/internal/infra/vertex"
	"pdf-summarizer/internal/metrics"
	"pdf-summarizer/internal/resilience"
	"pdf-summarizer/internal/service"
	"pdf-summarizer/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container holds all application dependencies
type Container struct {
	Config         *AppConfig
	Logger         *logger.AppLogger
	Registry       *prometheus.Registry
	Metrics        *metrics.Metrics
	Models         *service.ModelProvider
	SummaryService domain.SummaryService
	// AuthService is nil when Supabase is not configured.
	AuthService domain.AuthService
}

// NewContainer reads the environment and wires the application.
func NewContainer() (*Container, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}
	return NewContainerWithConfig(cfg, logger.NewLogger(cfg.GetLogLevel()))
}

// NewContainerWithConfig wires the application around an existing config and logger.
func NewContainerWithConfig(cfg *AppConfig, appLogger *logger.AppLogger) (*Container, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	factory, err := NewGeneratorFactory(cfg)
	if err != nil {
		return nil, err
	}
	guarded := &resilience.BreakerFactory{
		Inner:  factory,
		Config: resilience.DefaultBreakerConfig(),
		Logger: appLogger,
	}
	models := service.NewModelProvider(cfg.GetSummarizerBackend(), guarded, appLogger)

	summaryService, err := service.NewSummaryService(
		service.NewPDFExtractor(appLogger, cfg.GetPageTimeout()),
		models,
		DefaultPresets(),
		service.SummaryOptions{
			DefaultPreset:    cfg.GetDefaultPreset(),
			InferenceTimeout: cfg.GetInferenceTimeout(),
			MaxConcurrent:    cfg.GetMaxConcurrentInference(),
			UploadDir:        cfg.GetUploadPath(),
		},
		appMetrics,
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary service: %w", err)
	}

	authService, err := newAuthService(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	appLogger.Info("Container initialized",
		"backend", cfg.GetSummarizerBackend(),
		"default_preset", summaryService.DefaultPreset(),
		"auth_required", cfg.IsAuthRequired(),
	)

	return &Container{
		Config:         cfg,
		Logger:         appLogger,
		Registry:       registry,
		Metrics:        appMetrics,
		Models:         models,
		SummaryService: summaryService,
		AuthService:    authService,
	}, nil
}

// NewGeneratorFactory returns the factory for the configured backend.
func NewGeneratorFactory(cfg domain.Config) (domain.GeneratorFactory, error) {
	switch cfg.GetSummarizerBackend() {
	case BackendHuggingFace:
		return &huggingface.Factory{
			BaseURL:       cfg.GetHuggingFaceURL(),
			Token:         cfg.GetHuggingFaceToken(),
			ModelOverride: cfg.GetHuggingFaceModel(),
			HTTPClient:    &http.Client{Timeout: cfg.GetInferenceTimeout()},
		}, nil
	case BackendVertex:
		return &vertex.Factory{
			ProjectID: cfg.GetGCPProjectID(),
			Location:  cfg.GetGCPLocation(),
			Model:     cfg.GetVertexModel(),
		}, nil
	case BackendOpenAI:
		return &openai.Factory{
			APIKey: cfg.GetOpenAIKey(),
			Model:  cfg.GetOpenAIModel(),
		}, nil
	}
	return nil, fmt.Errorf("unsupported summarizer backend %q", cfg.GetSummarizerBackend())
}

func newAuthService(cfg domain.Config, appLogger domain.Logger) (domain.AuthService, error) {
	if cfg.GetSupabaseURL() == "" || cfg.GetSupabaseKey() == "" {
		if cfg.IsAuthRequired() {
			return nil, errors.New("auth is required but Supabase is not configured")
		}
		return nil, nil
	}

	client := supabase.NewClient(cfg.GetSupabaseURL(), cfg.GetSupabaseKey(), appLogger)
	if err := client.Initialize(); err != nil {
		if cfg.IsAuthRequired() {
			return nil, fmt.Errorf("failed to initialize Supabase: %w", err)
		}
		appLogger.Warn("Supabase unavailable, continuing without auth", "error", err)
		return nil, nil
	}
	return service.NewAuthService(client, appLogger), nil
}

// Close releases model handles and flushes the logger.
func (c *Container) Close() error {
	err := c.Models.Close()
	_ = c.Logger.Sync()
	return err
}
