package domain

import (
	"context"
	"io"
)

// GenerationOptions is the decoding configuration handed to a Generator.
// Optional knobs are pointers; nil leaves the backend default in place.
type GenerationOptions struct {
	MaxLength     int      `json:"max_length"`
	MinLength     int      `json:"min_length"`
	LengthPenalty *float64 `json:"length_penalty,omitempty"`
	NumBeams      *int     `json:"num_beams,omitempty"`
	EarlyStopping *bool    `json:"early_stopping,omitempty"`
	DoSample      *bool    `json:"do_sample,omitempty"`
}

// Deterministic reports whether decoding is free of sampling.
// An unset DoSample counts as deterministic.
func (o GenerationOptions) Deterministic() bool {
	return o.DoSample == nil || !*o.DoSample
}

// Beams returns the beam width, 1 meaning greedy or sampled single-path decoding.
func (o GenerationOptions) Beams() int {
	if o.NumBeams == nil || *o.NumBeams < 1 {
		return 1
	}
	return *o.NumBeams
}

// Validate checks the bounds the backends rely on.
func (o GenerationOptions) Validate() error {
	if o.MaxLength <= 0 {
		return &ValidationError{Field: "max_length", Message: "must be positive"}
	}
	if o.MinLength < 0 {
		return &ValidationError{Field: "min_length", Message: "must not be negative"}
	}
	if o.MinLength > o.MaxLength {
		return &ValidationError{Field: "min_length", Message: "must not exceed max_length"}
	}
	if o.NumBeams != nil && *o.NumBeams < 1 {
		return &ValidationError{Field: "num_beams", Message: "must be at least 1"}
	}
	if o.LengthPenalty != nil && *o.LengthPenalty <= 0 {
		return &ValidationError{Field: "length_penalty", Message: "must be positive"}
	}
	return nil
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Preset bundles everything that differs between summarizer variants.
type Preset struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Model         string            `json:"model"`
	Prefix        string            `json:"prefix"`
	MaxInputChars int               `json:"max_input_chars"`
	MinTextChars  int               `json:"min_text_chars"`
	Options       GenerationOptions `json:"options"`
}

// Validate checks that the preset can drive the pipeline.
func (p Preset) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if p.Model == "" {
		return &ValidationError{Field: "model", Message: "is required"}
	}
	if p.MaxInputChars <= 0 {
		return &ValidationError{Field: "max_input_chars", Message: "must be positive"}
	}
	if p.MinTextChars < 0 {
		return &ValidationError{Field: "min_text_chars", Message: "must not be negative"}
	}
	return p.Options.Validate()
}

// DocumentHandle points at a PDF on local disk.
type DocumentHandle struct {
	Path     string
	Filename string
	Size     int64
}

// SummaryResult is the outcome of one successful pipeline run.
type SummaryResult struct {
	Summary     string `json:"summary"`
	Preset      string `json:"preset"`
	Model       string `json:"model"`
	SourceChars int    `json:"-"`
	InputChars  int    `json:"-"`
}

// TextExtractor turns a document into normalized text.
type TextExtractor interface {
	Extract(ctx context.Context, doc DocumentHandle) (string, error)
}

// Generator produces exactly one summary for a bounded model input.
type Generator interface {
	Summarize(ctx context.Context, input string, opts GenerationOptions) (string, error)
	Name() string
}

// GeneratorFactory builds generators for a backend.
// ResolveModel maps a preset's model to the model the backend actually serves,
// so presets sharing a resolved model share one handle.
type GeneratorFactory interface {
	ResolveModel(presetModel string) string
	NewGenerator(ctx context.Context, model string) (Generator, error)
}

// ModelSource hands out the cached generator for a preset model.
type ModelSource interface {
	Get(ctx context.Context, presetModel string) (Generator, error)
}

// SummaryService runs the extract, build input, generate pipeline.
type SummaryService interface {
	Summarize(ctx context.Context, doc DocumentHandle, preset string) (*SummaryResult, error)
	SummarizeUpload(ctx context.Context, filename string, r io.Reader, preset string) (*SummaryResult, error)
	Presets() []Preset
	DefaultPreset() string
}
