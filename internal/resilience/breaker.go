// Package resilience guards generator backends with a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"io"
	"time"

	"pdf-summarizer/internal/domain"

	"github.com/sony/gobreaker"
)

// BreakerConfig holds the configuration for a generator circuit breaker.
type BreakerConfig struct {
	// MaxRequests is the maximum number of requests allowed in half-open state
	MaxRequests uint32

	// Interval is the cyclic period of the closed state to clear counts
	Interval time.Duration

	// Timeout is how long to wait in open state before trying again
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit
	FailureThreshold float64

	// MinRequests is the minimum number of requests before the ratio counts
	MinRequests uint32
}

// DefaultBreakerConfig suits slow inference backends.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// BreakerGenerator fails fast with an unavailable GenerationError while the
// circuit is open. It never retries.
type BreakerGenerator struct {
	inner   domain.Generator
	model   string
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerGenerator wraps inner with a breaker named after the backend and model.
func NewBreakerGenerator(inner domain.Generator, model string, cfg BreakerConfig, logger domain.Logger) *BreakerGenerator {
	settings := gobreaker.Settings{
		Name:        inner.Name() + ":" + model,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		IsSuccessful: countsAsHealthy,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "circuit", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerGenerator{
		inner:   inner,
		model:   model,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// countsAsHealthy keeps caller cancellations and empty outputs from
// tripping the circuit.
func countsAsHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	return domain.IsGenerationKind(err, domain.GenerationEmpty)
}

func (b *BreakerGenerator) Summarize(ctx context.Context, input string, opts domain.GenerationOptions) (string, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.Summarize(ctx, input, opts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", domain.NewGenerationError(b.inner.Name(), domain.GenerationUnavailable, err)
		}
		return "", err
	}
	return result.(string), nil
}

func (b *BreakerGenerator) Name() string { return b.inner.Name() }

// Model reports the backend model, falling back to the resolved name.
func (b *BreakerGenerator) Model() string {
	if named, ok := b.inner.(interface{ Model() string }); ok {
		return named.Model()
	}
	return b.model
}

// State returns the current breaker state.
func (b *BreakerGenerator) State() gobreaker.State {
	return b.breaker.State()
}

func (b *BreakerGenerator) Close() error {
	if closer, ok := b.inner.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// BreakerFactory wraps every generator a factory builds in its own breaker.
type BreakerFactory struct {
	Inner  domain.GeneratorFactory
	Config BreakerConfig
	Logger domain.Logger
}

func (f *BreakerFactory) ResolveModel(presetModel string) string {
	return f.Inner.ResolveModel(presetModel)
}

func (f *BreakerFactory) NewGenerator(ctx context.Context, model string) (domain.Generator, error) {
	inner, err := f.Inner.NewGenerator(ctx, model)
	if err != nil {
		return nil, err
	}
	return NewBreakerGenerator(inner, model, f.Config, f.Logger), nil
}

var _ domain.GeneratorFactory = (*BreakerFactory)(nil)
