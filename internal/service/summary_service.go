package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"

	"golang.org/x/sync/semaphore"
)

const (
	defaultInferenceTimeout = 120 * time.Second

	OutcomeSuccess          = "success"
	OutcomeInsufficientText = "insufficient_text"
	OutcomeGenerationFailed = "generation_failed"
)

// MetricsRecorder receives pipeline measurements.
type MetricsRecorder interface {
	RecordOutcome(preset, outcome string)
	RecordExtractionFailure()
	ObserveInputChars(preset string, chars int)
	ObserveInference(backend string, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordOutcome(string, string)           {}
func (noopMetrics) RecordExtractionFailure()               {}
func (noopMetrics) ObserveInputChars(string, int)          {}
func (noopMetrics) ObserveInference(string, time.Duration) {}

// SummaryOptions tunes the pipeline around the generator call.
type SummaryOptions struct {
	DefaultPreset    string
	InferenceTimeout time.Duration
	MaxConcurrent    int64
	UploadDir        string
}

type summaryService struct {
	extractor domain.TextExtractor
	models    domain.ModelSource
	presets   map[string]domain.Preset
	order     []string
	opts      SummaryOptions
	gate      *semaphore.Weighted
	metrics   MetricsRecorder
	logger    domain.Logger
}

// NewSummaryService wires the extract, build input, generate pipeline.
func NewSummaryService(
	extractor domain.TextExtractor,
	models domain.ModelSource,
	presets []domain.Preset,
	opts SummaryOptions,
	metrics MetricsRecorder,
	logger domain.Logger,
) (*summaryService, error) {
	if len(presets) == 0 {
		return nil, errors.New("at least one preset is required")
	}

	byName := make(map[string]domain.Preset, len(presets))
	order := make([]string, 0, len(presets))
	for _, preset := range presets {
		if err := preset.Validate(); err != nil {
			return nil, fmt.Errorf("invalid preset %q: %w", preset.Name, err)
		}
		if _, dup := byName[preset.Name]; dup {
			return nil, fmt.Errorf("duplicate preset %q", preset.Name)
		}
		byName[preset.Name] = preset
		order = append(order, preset.Name)
	}

	if opts.DefaultPreset == "" {
		opts.DefaultPreset = order[0]
	}
	if _, ok := byName[opts.DefaultPreset]; !ok {
		return nil, fmt.Errorf("%w: default %q", domain.ErrUnknownPreset, opts.DefaultPreset)
	}
	if opts.InferenceTimeout <= 0 {
		opts.InferenceTimeout = defaultInferenceTimeout
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &summaryService{
		extractor: extractor,
		models:    models,
		presets:   byName,
		order:     order,
		opts:      opts,
		gate:      semaphore.NewWeighted(opts.MaxConcurrent),
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Presets lists the configured presets in declaration order.
func (s *summaryService) Presets() []domain.Preset {
	presets := make([]domain.Preset, 0, len(s.order))
	for _, name := range s.order {
		presets = append(presets, s.presets[name])
	}
	return presets
}

// DefaultPreset names the preset used when a request names none.
func (s *summaryService) DefaultPreset() string {
	return s.opts.DefaultPreset
}

func (s *summaryService) preset(name string) (domain.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.opts.DefaultPreset
	}
	preset, ok := s.presets[name]
	if !ok {
		return domain.Preset{}, fmt.Errorf("%w: %q", domain.ErrUnknownPreset, name)
	}
	return preset, nil
}

// SummarizeUpload spools r to a temporary file, runs the pipeline on it and
// removes the file on every exit path.
func (s *summaryService) SummarizeUpload(ctx context.Context, filename string, r io.Reader, presetName string) (*domain.SummaryResult, error) {
	if _, err := s.preset(presetName); err != nil {
		return nil, err
	}

	doc, err := NewTempDocument(s.opts.UploadDir, filename, r)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := doc.Release(); err != nil {
			s.logger.Warn("Failed to remove temp upload", "path", doc.Path, "error", err)
		}
	}()

	return s.Summarize(ctx, doc.DocumentHandle, presetName)
}

// Summarize runs extract, threshold gate, build input and generate, in that order.
// Extraction failures degrade to empty text; nothing panics out of here.
func (s *summaryService) Summarize(ctx context.Context, doc domain.DocumentHandle, presetName string) (result *domain.SummaryResult, err error) {
	preset, err := s.preset(presetName)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			panicErr := fmt.Errorf("panic: %v", r)
			s.logger.Error("Summary pipeline panicked", panicErr, "preset", preset.Name, "file", doc.Filename)
			s.metrics.RecordOutcome(preset.Name, OutcomeGenerationFailed)
			result = nil
			err = domain.NewGenerationError("pipeline", domain.GenerationInference, panicErr)
		}
	}()

	text, extractErr := s.extractor.Extract(ctx, doc)
	if extractErr != nil {
		s.logger.Warn("Text extraction failed, treating document as empty", "file", doc.Filename, "error", extractErr)
		s.metrics.RecordExtractionFailure()
		text = ""
	}

	length := CharCount(text)
	if length <= preset.MinTextChars {
		s.logger.Info("Not enough text to summarize", "file", doc.Filename, "chars", length, "threshold", preset.MinTextChars)
		s.metrics.RecordOutcome(preset.Name, OutcomeInsufficientText)
		return nil, &domain.InsufficientTextError{Length: length, Threshold: preset.MinTextChars}
	}

	input := BuildInput(text, preset.Prefix, preset.MaxInputChars)
	inputChars := CharCount(input)
	s.metrics.ObserveInputChars(preset.Name, inputChars)

	summary, model, err := s.generate(ctx, preset, input)
	if err != nil {
		s.logger.Error("Summary generation failed", err, "preset", preset.Name, "file", doc.Filename)
		s.metrics.RecordOutcome(preset.Name, OutcomeGenerationFailed)
		return nil, err
	}

	s.metrics.RecordOutcome(preset.Name, OutcomeSuccess)
	s.logger.Info("Summary generated", "preset", preset.Name, "file", doc.Filename, "source_chars", length, "input_chars", inputChars, "summary_chars", CharCount(summary))

	return &domain.SummaryResult{
		Summary:     summary,
		Preset:      preset.Name,
		Model:       model,
		SourceChars: length,
		InputChars:  inputChars,
	}, nil
}

func (s *summaryService) generate(ctx context.Context, preset domain.Preset, input string) (string, string, error) {
	generator, err := s.models.Get(ctx, preset.Model)
	if err != nil {
		return "", "", err
	}
	backend := generator.Name()
	model := preset.Model
	if named, ok := generator.(interface{ Model() string }); ok {
		model = named.Model()
	}

	if err := s.gate.Acquire(ctx, 1); err != nil {
		return "", model, classifyContextErr(backend, err)
	}
	defer s.gate.Release(1)

	inferCtx, cancel := context.WithTimeout(ctx, s.opts.InferenceTimeout)
	defer cancel()

	start := time.Now()
	summary, err := generator.Summarize(inferCtx, input, preset.Options)
	s.metrics.ObserveInference(backend, time.Since(start))
	if err != nil {
		if errors.Is(inferCtx.Err(), context.DeadlineExceeded) && !domain.IsGenerationKind(err, domain.GenerationTimeout) {
			return "", model, domain.NewGenerationError(backend, domain.GenerationTimeout, err)
		}
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) {
			return "", model, genErr
		}
		return "", model, domain.NewGenerationError(backend, domain.GenerationInference, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", model, domain.NewGenerationError(backend, domain.GenerationEmpty, errors.New("model returned an empty summary"))
	}
	return summary, model, nil
}

func classifyContextErr(backend string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewGenerationError(backend, domain.GenerationTimeout, err)
	}
	return domain.NewGenerationError(backend, domain.GenerationUnavailable, err)
}
