package huggingface

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"pdf-summarizer/internal/domain"
)

// Factory builds one Client per model. ModelOverride pins every preset to
// the same hosted model.
type Factory struct {
	BaseURL       string
	Token         string
	ModelOverride string
	HTTPClient    *http.Client
}

func (f *Factory) ResolveModel(presetModel string) string {
	if f.ModelOverride != "" {
		return f.ModelOverride
	}
	return presetModel
}

func (f *Factory) NewGenerator(ctx context.Context, model string) (domain.Generator, error) {
	if model == "" {
		return nil, errors.New("model is required")
	}
	if f.BaseURL != "" {
		if _, err := url.ParseRequestURI(f.BaseURL); err != nil {
			return nil, domain.NewGenerationError(BackendName, domain.GenerationUnavailable, err)
		}
	}
	return NewClient(f.HTTPClient, f.BaseURL, model, f.Token), nil
}

var _ domain.GeneratorFactory = (*Factory)(nil)
