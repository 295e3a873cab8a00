package handler

import (
	"net/http"

	"pdf-summarizer/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterOptions carries the cross-cutting pieces of the router.
type RouterOptions struct {
	AllowedOrigins []string
	// Metrics serves /metrics when set.
	Metrics     http.Handler
	HTTPMetrics HTTPMetrics
	Logger      domain.Logger
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewRouter creates a new HTTP router with all routes configured.
// authMiddleware may be nil, leaving /api/v1 open.
func NewRouter(summaryHandler *SummaryHandler, authMiddleware func(http.Handler) http.Handler, opts RouterOptions) http.Handler {
	router := mux.NewRouter()
	router.Use(captureRoute)

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: "pdf-summarizer"})
	}).Methods(http.MethodGet)

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	if authMiddleware != nil {
		api.Use(authMiddleware)
		api.HandleFunc("/auth/validate", NewAuthHandler().ValidateToken).Methods(http.MethodGet)
	}
	api.HandleFunc("/presets", summaryHandler.ListPresets).Methods(http.MethodGet)
	api.HandleFunc("/summaries", summaryHandler.CreateSummary).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			RequestIDHeader,
		},
		ExposedHeaders: []string{
			RequestIDHeader,
		},
		AllowCredentials: !containsWildcard(origins),
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(RequestIDMiddleware(RequestLogger(opts.Logger, opts.HTTPMetrics)(Recoverer(opts.Logger)(router))))
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
