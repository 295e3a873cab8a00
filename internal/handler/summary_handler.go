// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

const (
	// multipartOverhead leaves room for boundaries and the preset field on
	// top of the file itself.
	multipartOverhead = 1 << 20
	maxFormMemory     = 8 << 20
)

// SummaryHandler serves the summarization endpoints.
type SummaryHandler struct {
	summaryService domain.SummaryService
	maxFileSize    int64
	logger         domain.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService domain.SummaryService, maxFileSize int64, logger domain.Logger) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

type presetsResponse struct {
	Default string          `json:"default"`
	Presets []domain.Preset `json:"presets"`
}

// ListPresets returns the configured presets and the default.
func (h *SummaryHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presetsResponse{
		Default: h.summaryService.DefaultPreset(),
		Presets: h.summaryService.Presets(),
	})
}

// CreateSummary summarizes an uploaded PDF.
func (h *SummaryHandler) CreateSummary(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAppError(w, apperrors.NewPayloadTooLargeError("File too large"))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeAppError(w, apperrors.NewPayloadTooLargeError("File too large"))
		return
	}

	// Sanitize filename (strip any path components)
	originalName := strings.TrimSpace(filepath.Base(header.Filename))
	if originalName == "" || originalName == "." || originalName == string(filepath.Separator) {
		originalName = "document.pdf"
	}
	if strings.ToLower(filepath.Ext(originalName)) != ".pdf" {
		writeError(w, http.StatusBadRequest, "Unsupported file type. Only PDF (.pdf) files are accepted.")
		return
	}

	preset := r.FormValue("preset")
	result, err := h.summaryService.SummarizeUpload(r.Context(), originalName, file, preset)
	if err != nil {
		appErr := apperrors.FromDomain(err)
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.logger.Error("Summary request failed", err, "file", originalName, "preset", preset, "request_id", GetRequestID(r))
		} else {
			h.logger.Info("Summary request rejected", "file", originalName, "preset", preset, "reason", appErr.Type, "request_id", GetRequestID(r))
		}
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
