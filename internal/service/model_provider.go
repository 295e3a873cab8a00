package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"pdf-summarizer/internal/domain"
)

// ModelProvider lazily builds generators and caches them for the process
// lifetime. Each resolved model is initialized at most once; a failed
// initialization is not cached and is tried again on the next request.
type ModelProvider struct {
	factory domain.GeneratorFactory
	backend string
	logger  domain.Logger

	mu    sync.Mutex
	slots map[string]*modelSlot
}

type modelSlot struct {
	mu        sync.Mutex
	generator domain.Generator
}

// NewModelProvider creates a provider around a backend factory
func NewModelProvider(backend string, factory domain.GeneratorFactory, logger domain.Logger) *ModelProvider {
	return &ModelProvider{
		factory: factory,
		backend: backend,
		logger:  logger,
		slots:   make(map[string]*modelSlot),
	}
}

// Get returns the cached generator for presetModel, building it on first use.
func (p *ModelProvider) Get(ctx context.Context, presetModel string) (domain.Generator, error) {
	model := p.factory.ResolveModel(presetModel)

	p.mu.Lock()
	slot, ok := p.slots[model]
	if !ok {
		slot = &modelSlot{}
		p.slots[model] = slot
	}
	p.mu.Unlock()

	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.generator != nil {
		return slot.generator, nil
	}

	start := time.Now()
	generator, err := p.factory.NewGenerator(ctx, model)
	if err == nil && generator == nil {
		err = errors.New("factory returned no generator")
	}
	if err != nil {
		p.logger.Error("Model initialization failed", err, "backend", p.backend, "model", model)
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) {
			return nil, genErr
		}
		return nil, domain.NewGenerationError(p.backend, domain.GenerationUnavailable, fmt.Errorf("load model %s: %w", model, err))
	}

	slot.generator = generator
	p.logger.Info("Model loaded", "backend", p.backend, "model", model, "duration_ms", time.Since(start).Milliseconds())
	return generator, nil
}

// Loaded reports whether the generator for presetModel is already cached.
func (p *ModelProvider) Loaded(presetModel string) bool {
	model := p.factory.ResolveModel(presetModel)

	p.mu.Lock()
	slot, ok := p.slots[model]
	p.mu.Unlock()
	if !ok {
		return false
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.generator != nil
}

// Close releases generators holding client connections. Only called at shutdown.
func (p *ModelProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for model, slot := range p.slots {
		slot.mu.Lock()
		if closer, ok := slot.generator.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", model, err))
			}
		}
		slot.mu.Unlock()
	}
	return errors.Join(errs...)
}
