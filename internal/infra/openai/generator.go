// Package openai summarizes with the OpenAI Responses API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pdf-summarizer/internal/domain"
	"pdf-summarizer/internal/infra/prompt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

const (
	BackendName  = "openai"
	DefaultModel = "gpt-4o-mini"

	// The API rejects smaller output budgets.
	minOutputTokens int64 = 16
)

// Generator calls one OpenAI model.
type Generator struct {
	client openai.Client
	model  string
}

// NewGenerator builds a generator. Retries are disabled; failures surface
// to the caller as they happen.
func NewGenerator(model string, opts ...option.RequestOption) *Generator {
	opts = append([]option.RequestOption{option.WithMaxRetries(0)}, opts...)
	return &Generator{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (g *Generator) Name() string  { return BackendName }
func (g *Generator) Model() string { return g.model }

func (g *Generator) Summarize(ctx context.Context, input string, opts domain.GenerationOptions) (string, error) {
	maxOutputTokens := int64(opts.MaxLength)
	if maxOutputTokens < minOutputTokens {
		maxOutputTokens = minOutputTokens
	}

	params := responses.ResponseNewParams{
		Model:           shared.ResponsesModel(g.model),
		MaxOutputTokens: openai.Int(maxOutputTokens),
		Instructions:    openai.String(prompt.Instruction(opts)),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(input),
		},
	}
	if opts.Deterministic() {
		params.Temperature = openai.Float(0)
	}

	resp, err := g.client.Responses.New(ctx, params)
	if err != nil {
		return "", domain.NewGenerationError(BackendName, classify(ctx, err), fmt.Errorf("do request: %w", err))
	}

	if resp.Status == "incomplete" {
		return "", domain.NewGenerationError(BackendName, domain.GenerationInference,
			fmt.Errorf("response is incomplete (reason = %s, maxOutputTokens = %d)", resp.IncompleteDetails.Reason, maxOutputTokens))
	}

	summary := strings.TrimSpace(resp.OutputText())
	if summary == "" {
		return "", domain.NewGenerationError(BackendName, domain.GenerationEmpty,
			fmt.Errorf("output text is missing (status = %s)", resp.Status))
	}
	return summary, nil
}

func classify(ctx context.Context, err error) domain.GenerationErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.GenerationTimeout
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests,
			apiErr.StatusCode == http.StatusUnauthorized,
			apiErr.StatusCode == http.StatusNotFound,
			apiErr.StatusCode >= 500:
			return domain.GenerationUnavailable
		}
		return domain.GenerationInference
	}
	return domain.GenerationUnavailable
}
