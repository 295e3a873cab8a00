package config

import (
	"fmt"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"

	"github.com/caarlos0/env/v11"
)

// Supported summarizer backends.
const (
	BackendHuggingFace = "huggingface"
	BackendVertex      = "vertex"
	BackendOpenAI      = "openai"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	// Cloud Run (and many PaaS) provide the listening port via PORT.
	// SERVER_PORT stays for local/dev compatibility.
	Port        string `env:"PORT"`
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	UploadPath  string `env:"UPLOAD_PATH"`
	MaxFileSize int64  `env:"MAX_FILE_SIZE" envDefault:"52428800"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	SummarizerBackend string        `env:"SUMMARIZER_BACKEND" envDefault:"huggingface"`
	DefaultPreset     string        `env:"SUMMARIZER_PRESET" envDefault:"distilbart"`
	InferenceTimeout  time.Duration `env:"SUMMARIZER_TIMEOUT" envDefault:"120s"`
	MaxConcurrent     int64         `env:"SUMMARIZER_MAX_CONCURRENT" envDefault:"1"`
	PageTimeout       time.Duration `env:"PDF_PAGE_TIMEOUT" envDefault:"90s"`

	HuggingFaceURL   string `env:"HF_API_URL"`
	HuggingFaceToken string `env:"HF_API_TOKEN"`
	HuggingFaceModel string `env:"HF_MODEL"`

	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCPLocation  string `env:"GCP_LOCATION" envDefault:"us-central1"`
	VertexModel  string `env:"VERTEX_MODEL"`

	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL"`

	SupabaseURL        string   `env:"SUPABASE_URL"`
	SupabaseKey        string   `env:"SUPABASE_ANON_KEY"`
	AuthRequired       bool     `env:"AUTH_REQUIRED" envDefault:"false"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// NewConfig reads the configuration from the environment.
func NewConfig() (*AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *AppConfig) Validate() error {
	switch c.SummarizerBackend {
	case BackendHuggingFace, BackendVertex, BackendOpenAI:
	default:
		return &domain.ValidationError{Field: "SUMMARIZER_BACKEND", Message: fmt.Sprintf("unsupported backend %q", c.SummarizerBackend)}
	}
	if c.MaxFileSize <= 0 {
		return &domain.ValidationError{Field: "MAX_FILE_SIZE", Message: "must be positive"}
	}
	if c.InferenceTimeout <= 0 {
		return &domain.ValidationError{Field: "SUMMARIZER_TIMEOUT", Message: "must be positive"}
	}
	if c.PageTimeout <= 0 {
		return &domain.ValidationError{Field: "PDF_PAGE_TIMEOUT", Message: "must be positive"}
	}
	if c.MaxConcurrent < 1 {
		return &domain.ValidationError{Field: "SUMMARIZER_MAX_CONCURRENT", Message: "must be at least 1"}
	}
	if c.AuthRequired && (c.SupabaseURL == "" || c.SupabaseKey == "") {
		return &domain.ValidationError{Field: "AUTH_REQUIRED", Message: "needs SUPABASE_URL and SUPABASE_ANON_KEY"}
	}
	return nil
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	if c.Port != "" {
		return c.Port
	}
	return c.ServerPort
}

// GetUploadPath returns the directory for temporary uploads; empty means the OS temp dir.
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

func (c *AppConfig) GetSummarizerBackend() string {
	return c.SummarizerBackend
}

func (c *AppConfig) GetDefaultPreset() string {
	return c.DefaultPreset
}

func (c *AppConfig) GetInferenceTimeout() time.Duration {
	return c.InferenceTimeout
}

func (c *AppConfig) GetMaxConcurrentInference() int64 {
	return c.MaxConcurrent
}

func (c *AppConfig) GetPageTimeout() time.Duration {
	return c.PageTimeout
}

func (c *AppConfig) GetHuggingFaceURL() string {
	return c.HuggingFaceURL
}

func (c *AppConfig) GetHuggingFaceToken() string {
	return c.HuggingFaceToken
}

func (c *AppConfig) GetHuggingFaceModel() string {
	return c.HuggingFaceModel
}

func (c *AppConfig) GetGCPProjectID() string {
	return c.GCPProjectID
}

func (c *AppConfig) GetGCPLocation() string {
	return c.GCPLocation
}

func (c *AppConfig) GetVertexModel() string {
	return c.VertexModel
}

func (c *AppConfig) GetOpenAIKey() string {
	return c.OpenAIKey
}

func (c *AppConfig) GetOpenAIModel() string {
	return c.OpenAIModel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// IsAuthRequired reports whether /api/v1 needs a Supabase bearer token.
func (c *AppConfig) IsAuthRequired() bool {
	return c.AuthRequired
}

// GetCORSAllowedOrigins returns the trimmed, non-empty allowed origins.
func (c *AppConfig) GetCORSAllowedOrigins() []string {
	origins := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

var _ domain.Config = (*AppConfig)(nil)
