package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-summarizer/internal/config"
	"pdf-summarizer/internal/handler"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer container.Close()

	// Handlers
	summaryHandler := handler.NewSummaryHandler(
		container.SummaryService,
		container.Config.GetMaxFileSize(),
		container.Logger,
	)

	var authMiddleware func(http.Handler) http.Handler
	if container.AuthService != nil && container.Config.IsAuthRequired() {
		authMiddleware = handler.NewAuthMiddleware(container.AuthService, container.Logger).Middleware
	}

	// Router
	router := handler.NewRouter(summaryHandler, authMiddleware, handler.RouterOptions{
		AllowedOrigins: container.Config.GetCORSAllowedOrigins(),
		Metrics:        promhttp.HandlerFor(container.Registry, promhttp.HandlerOpts{}),
		HTTPMetrics:    container.Metrics,
		Logger:         container.Logger,
	})

	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		container.Logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		container.Logger.Error("Server stopped with error", err)
		_ = container.Close()
		os.Exit(1)
	}
	container.Logger.Info("Server exited")
}
