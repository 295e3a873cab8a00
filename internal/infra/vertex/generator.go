// Package vertex summarizes with Gemini models on Vertex AI.
package vertex

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pdf-summarizer/internal/domain"
	"pdf-summarizer/internal/infra/prompt"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	BackendName  = "vertex"
	DefaultModel = "gemini-2.0-flash-001"
)

type generateFunc func(ctx context.Context, model *genai.GenerativeModel, parts ...genai.Part) (*genai.GenerateContentResponse, error)

// Generator is a Gemini model handle. The genai client is shared by every
// call and closed once at shutdown.
type Generator struct {
	client   *genai.Client
	model    string
	newModel func(name string) *genai.GenerativeModel
	generate generateFunc
}

// NewGenerator wraps an initialized genai client.
func NewGenerator(client *genai.Client, model string) *Generator {
	return &Generator{
		client:   client,
		model:    model,
		newModel: client.GenerativeModel,
		generate: func(ctx context.Context, m *genai.GenerativeModel, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
			return m.GenerateContent(ctx, parts...)
		},
	}
}

func (g *Generator) Name() string  { return BackendName }
func (g *Generator) Model() string { return g.model }

func (g *Generator) Summarize(ctx context.Context, input string, opts domain.GenerationOptions) (string, error) {
	model := g.newModel(g.model)
	configure(model, opts)

	resp, err := g.generate(ctx, model, genai.Text(input))
	if err != nil {
		return "", domain.NewGenerationError(BackendName, classify(ctx, err), err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", domain.NewGenerationError(BackendName, domain.GenerationEmpty, errors.New("empty response from model"))
	}

	candidate := resp.Candidates[0]
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", domain.NewGenerationError(BackendName, domain.GenerationEmpty,
			fmt.Errorf("no text in response (finish reason %s)", candidate.FinishReason))
	}
	return summary, nil
}

// Close releases the underlying client connection.
func (g *Generator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// configure maps decoding options onto the model. Gemini has no minimum
// length or beam search, so those live in the system instruction.
func configure(model *genai.GenerativeModel, opts domain.GenerationOptions) {
	model.SetMaxOutputTokens(int32(opts.MaxLength))
	model.SetCandidateCount(1)
	if opts.Deterministic() {
		model.SetTemperature(0)
		model.SetTopK(1)
	}
	model.SystemInstruction = &genai.Content{
		Role:  "system",
		Parts: []genai.Part{genai.Text(prompt.Instruction(opts))},
	}
}

func classify(ctx context.Context, err error) domain.GenerationErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.GenerationTimeout
	}
	switch status.Code(err) {
	case codes.DeadlineExceeded:
		return domain.GenerationTimeout
	case codes.Unavailable, codes.ResourceExhausted, codes.NotFound, codes.PermissionDenied, codes.Unauthenticated:
		return domain.GenerationUnavailable
	}
	return domain.GenerationInference
}
