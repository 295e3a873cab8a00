package vertex

import (
	"context"
	"errors"
	"fmt"

	"pdf-summarizer/internal/domain"

	"cloud.google.com/go/vertexai/genai"
)

// Factory opens a genai client on first use. Every preset resolves to the
// configured Gemini model, so the process holds a single client.
type Factory struct {
	ProjectID string
	Location  string
	Model     string
}

func (f *Factory) ResolveModel(string) string {
	if f.Model == "" {
		return DefaultModel
	}
	return f.Model
}

func (f *Factory) NewGenerator(ctx context.Context, model string) (domain.Generator, error) {
	if f.ProjectID == "" || f.Location == "" {
		return nil, domain.NewGenerationError(BackendName, domain.GenerationUnavailable,
			errors.New("GCP_PROJECT_ID and GCP_LOCATION must be set"))
	}

	client, err := genai.NewClient(ctx, f.ProjectID, f.Location)
	if err != nil {
		return nil, domain.NewGenerationError(BackendName, domain.GenerationUnavailable,
			fmt.Errorf("failed to create genai client: %w", err))
	}
	return NewGenerator(client, model), nil
}

var _ domain.GeneratorFactory = (*Factory)(nil)
