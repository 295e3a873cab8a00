// Package huggingface talks to a Hugging Face Inference compatible
// summarization endpoint.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"
)

const (
	// BackendName identifies this backend in logs, metrics and errors.
	BackendName = "huggingface"

	DefaultBaseURL = "https://api-inference.huggingface.co/models"

	maxErrorBody = 4 << 10
)

type parameters struct {
	MaxLength     int      `json:"max_length"`
	MinLength     int      `json:"min_length"`
	LengthPenalty *float64 `json:"length_penalty,omitempty"`
	NumBeams      *int     `json:"num_beams,omitempty"`
	EarlyStopping *bool    `json:"early_stopping,omitempty"`
	DoSample      bool     `json:"do_sample"`
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
	Options    struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

type summary struct {
	SummaryText string `json:"summary_text"`
}

// Client is a Generator bound to one hosted model.
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	token      string
}

// NewClient creates a client for model under baseURL.
func NewClient(httpClient *http.Client, baseURL, model, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(baseURL, "/") + "/" + model,
		model:      model,
		token:      token,
	}
}

func (c *Client) Name() string  { return BackendName }
func (c *Client) Model() string { return c.model }

// Summarize sends one summarization request; the decoding parameters are
// passed through unchanged.
func (c *Client) Summarize(ctx context.Context, input string, opts domain.GenerationOptions) (string, error) {
	body := request{
		Inputs: input,
		Parameters: parameters{
			MaxLength:     opts.MaxLength,
			MinLength:     opts.MinLength,
			LengthPenalty: opts.LengthPenalty,
			NumBeams:      opts.NumBeams,
			EarlyStopping: opts.EarlyStopping,
			DoSample:      !opts.Deterministic(),
		},
	}
	body.Options.WaitForModel = true

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", domain.NewGenerationError(BackendName, domain.GenerationInference, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", domain.NewGenerationError(BackendName, domain.GenerationInference, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewGenerationError(BackendName, classifyTransport(ctx, err), fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		kind := domain.GenerationInference
		switch resp.StatusCode {
		case http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusNotFound:
			kind = domain.GenerationUnavailable
		case http.StatusGatewayTimeout:
			kind = domain.GenerationTimeout
		}
		return "", domain.NewGenerationError(BackendName, kind,
			fmt.Errorf("inference API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	var result []summary
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", domain.NewGenerationError(BackendName, domain.GenerationInference, fmt.Errorf("failed to decode response: %w", err))
	}
	if len(result) == 0 || strings.TrimSpace(result[0].SummaryText) == "" {
		return "", domain.NewGenerationError(BackendName, domain.GenerationEmpty, errors.New("no summary returned"))
	}
	return result[0].SummaryText, nil
}

func classifyTransport(ctx context.Context, err error) domain.GenerationErrorKind {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return domain.GenerationTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.GenerationTimeout
	}
	return domain.GenerationUnavailable
}
