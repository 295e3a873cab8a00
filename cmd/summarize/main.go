// Package main provides a CLI command for summarizing a single PDF.
// Usage: summarize [-preset name] [-output text|json] file.pdf
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"pdf-summarizer/internal/config"
	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
	"pdf-summarizer/pkg/logger"

	"github.com/joho/godotenv"
)

const usage = "Usage: summarize [-preset name] [-output text|json] file.pdf"

const (
	exitFailure          = 1
	exitInsufficientText = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		presetName   string
		outputFormat string
		listPresets  bool
	)

	flag.StringVar(&presetName, "preset", "", "Summarizer preset (default: SUMMARIZER_PRESET)")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.BoolVar(&listPresets, "presets", false, "List available presets and exit")
	flag.Parse()

	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintf(os.Stderr, "Error: Invalid output format '%s' (must be 'text' or 'json')\n\n%s\n", outputFormat, usage)
		return exitFailure
	}

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid configuration: %v\n", err)
		return exitFailure
	}

	// Logs go to stderr so stdout carries only the summary.
	appLogger := logger.NewLoggerTo(cfg.GetLogLevel(), os.Stderr)
	container, err := config.NewContainerWithConfig(cfg, appLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to initialize: %v\n", err)
		return exitFailure
	}
	defer container.Close()

	if listPresets {
		for _, p := range container.SummaryService.Presets() {
			marker := " "
			if p.Name == container.SummaryService.DefaultPreset() {
				marker = "*"
			}
			fmt.Printf("%s %-12s %s\n", marker, p.Name, p.Description)
		}
		return 0
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, usage)
		return exitFailure
	}
	path := flag.Arg(0)

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
	if info.Size() > cfg.GetMaxFileSize() {
		fmt.Fprintf(os.Stderr, "Error: File too large (%d bytes, limit %d)\n", info.Size(), cfg.GetMaxFileSize())
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := container.SummaryService.Summarize(ctx, domain.DocumentHandle{
		Path:     path,
		Filename: filepath.Base(path),
		Size:     info.Size(),
	}, presetName)
	if err != nil {
		message, code := exitStatus(err)
		fmt.Fprintln(os.Stderr, message)
		return code
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
			return exitFailure
		}
		return 0
	}

	fmt.Println(result.Summary)
	return 0
}

// exitStatus returns the message to print and the process exit code for a failed summary.
func exitStatus(err error) (string, int) {
	appErr := apperrors.FromDomain(err)
	if apperrors.IsType(appErr, apperrors.ErrorTypeInsufficientText) {
		return appErr.Message, exitInsufficientText
	}
	return "Error: " + appErr.Message, exitFailure
}
