package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"pdf-summarizer/internal/domain"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})         {}

type scriptedGenerator struct {
	err    error
	calls  int
	closed bool
}

func (g *scriptedGenerator) Summarize(ctx context.Context, input string, opts domain.GenerationOptions) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return "summary of " + input, nil
}

func (g *scriptedGenerator) Name() string  { return "scripted" }
func (g *scriptedGenerator) Model() string { return "scripted-v1" }
func (g *scriptedGenerator) Close() error {
	g.closed = true
	return nil
}

func testConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

func TestBreakerGenerator_PassesThrough(t *testing.T) {
	inner := &scriptedGenerator{}
	g := NewBreakerGenerator(inner, "m", testConfig(), nopLogger{})

	summary, err := g.Summarize(context.Background(), "doc", domain.GenerationOptions{MaxLength: 10})

	require.NoError(t, err)
	assert.Equal(t, "summary of doc", summary)
	assert.Equal(t, "scripted", g.Name())
	assert.Equal(t, "scripted-v1", g.Model())
	assert.Equal(t, gobreaker.StateClosed, g.State())
}

func TestBreakerGenerator_OpensAndFailsFast(t *testing.T) {
	inner := &scriptedGenerator{err: domain.NewGenerationError("scripted", domain.GenerationInference, errors.New("boom"))}
	g := NewBreakerGenerator(inner, "m", testConfig(), nopLogger{})

	for i := 0; i < 3; i++ {
		_, err := g.Summarize(context.Background(), "doc", domain.GenerationOptions{MaxLength: 10})
		assert.True(t, domain.IsGenerationKind(err, domain.GenerationInference))
	}
	require.Equal(t, gobreaker.StateOpen, g.State())

	_, err := g.Summarize(context.Background(), "doc", domain.GenerationOptions{MaxLength: 10})
	assert.True(t, domain.IsGenerationKind(err, domain.GenerationUnavailable), "got %v", err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, inner.calls, "open circuit must not reach the backend")
}

func TestBreakerGenerator_IgnoresCallerCancellationAndEmptyOutput(t *testing.T) {
	inner := &scriptedGenerator{}
	g := NewBreakerGenerator(inner, "m", testConfig(), nopLogger{})

	inner.err = context.Canceled
	for i := 0; i < 3; i++ {
		_, _ = g.Summarize(context.Background(), "doc", domain.GenerationOptions{MaxLength: 10})
	}
	inner.err = domain.NewGenerationError("scripted", domain.GenerationEmpty, errors.New("blank"))
	for i := 0; i < 3; i++ {
		_, _ = g.Summarize(context.Background(), "doc", domain.GenerationOptions{MaxLength: 10})
	}

	assert.Equal(t, gobreaker.StateClosed, g.State())
}

type stubFactory struct {
	err error
}

func (f *stubFactory) ResolveModel(presetModel string) string { return "resolved-" + presetModel }

func (f *stubFactory) NewGenerator(ctx context.Context, model string) (domain.Generator, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &scriptedGenerator{}, nil
}

func TestBreakerFactory(t *testing.T) {
	f := &BreakerFactory{Inner: &stubFactory{}, Config: testConfig(), Logger: nopLogger{}}
	assert.Equal(t, "resolved-t5", f.ResolveModel("t5"))

	g, err := f.NewGenerator(context.Background(), "resolved-t5")
	require.NoError(t, err)
	wrapped, ok := g.(*BreakerGenerator)
	require.True(t, ok)
	require.NoError(t, wrapped.Close())
	assert.True(t, wrapped.inner.(*scriptedGenerator).closed)

	failing := &BreakerFactory{Inner: &stubFactory{err: errors.New("no creds")}, Config: testConfig(), Logger: nopLogger{}}
	_, err = failing.NewGenerator(context.Background(), "x")
	assert.Error(t, err)
}
