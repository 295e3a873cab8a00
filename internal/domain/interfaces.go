package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string

	GetSummarizerBackend() string
	GetDefaultPreset() string
	GetInferenceTimeout() time.Duration
	GetMaxConcurrentInference() int64
	GetPageTimeout() time.Duration

	GetHuggingFaceURL() string
	GetHuggingFaceToken() string
	GetHuggingFaceModel() string
	GetGCPProjectID() string
	GetGCPLocation() string
	GetVertexModel() string
	GetOpenAIKey() string
	GetOpenAIModel() string

	GetSupabaseURL() string
	GetSupabaseKey() string
	IsAuthRequired() bool
	GetCORSAllowedOrigins() []string
}
