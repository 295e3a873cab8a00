package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// AuthMiddleware validates Supabase JWT tokens
type AuthMiddleware struct {
	authService domain.AuthService
	logger      domain.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService domain.AuthService, logger domain.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Middleware rejects requests without a valid bearer token and stores the
// user in the request context.
func (m *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAppError(w, apperrors.NewUnauthorizedError("Authorization header required"))
			return
		}

		// Extract token from "Bearer <token>" format
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeAppError(w, apperrors.NewUnauthorizedError("Invalid authorization header format"))
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			writeAppError(w, apperrors.NewUnauthorizedError("Token required"))
			return
		}

		user, err := m.authService.ValidateToken(token)
		if err != nil {
			m.logger.Warn("Token validation failed", "request_id", GetRequestID(r), "error", err)
			writeAppError(w, apperrors.NewUnauthorizedError("Invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDMiddleware reuses a well-formed incoming X-Request-ID or assigns a new UUID.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HTTPMetrics receives one observation per served request.
type HTTPMetrics interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// unmatchedRoute labels requests that reached no registered route.
const unmatchedRoute = "unmatched"

type routeHolder struct {
	template string
}

// RequestLogger logs every request and feeds the HTTP metrics. It wraps the
// whole router so 404 and 405 responses are observed as well; the route label
// comes from captureRoute.
func RequestLogger(logger domain.Logger, metrics HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			holder := &routeHolder{}
			ctx := context.WithValue(r.Context(), routeContextKey, holder)
			next.ServeHTTP(rec, r.WithContext(ctx))
			elapsed := time.Since(start)

			route := holder.template
			if route == "" {
				route = unmatchedRoute
			}

			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", rec.status,
				"duration_ms", elapsed.Milliseconds(),
				"request_id", GetRequestID(r),
			)
			if metrics != nil {
				metrics.ObserveRequest(r.Method, route, rec.status, elapsed)
			}
		})
	}
}

// captureRoute records the matched mux route template for RequestLogger.
func captureRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if holder, ok := r.Context().Value(routeContextKey).(*routeHolder); ok {
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					holder.template = tpl
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Recoverer turns a handler panic into a 500 response.
func Recoverer(logger domain.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("Handler panicked", fmt.Errorf("panic: %v", rec), "path", r.URL.Path, "request_id", GetRequestID(r))
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
