package openai

import (
	"context"
	"errors"

	"pdf-summarizer/internal/domain"

	"github.com/openai/openai-go/v3/option"
)

// Factory builds the single OpenAI generator used by every preset.
type Factory struct {
	APIKey  string
	Model   string
	Options []option.RequestOption
}

func (f *Factory) ResolveModel(string) string {
	if f.Model == "" {
		return DefaultModel
	}
	return f.Model
}

func (f *Factory) NewGenerator(ctx context.Context, model string) (domain.Generator, error) {
	if f.APIKey == "" {
		return nil, domain.NewGenerationError(BackendName, domain.GenerationUnavailable, errors.New("OPENAI_API_KEY must be set"))
	}
	opts := append([]option.RequestOption{option.WithAPIKey(f.APIKey)}, f.Options...)
	return NewGenerator(model, opts...), nil
}

var _ domain.GeneratorFactory = (*Factory)(nil)
