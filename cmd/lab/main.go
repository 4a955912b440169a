// Command lab generates a study artifact from legal source text.
// Usage: lexfeed-lab --artifact flashcards|mindmap|brief [--file PATH | --url URL]
//
// When neither --file nor --url is given, the source text is read from stdin.
// The artifact is printed to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"lexfeed/internal/infra/fetcher"
	"lexfeed/internal/infra/generator"
	"lexfeed/internal/observability/logging"
	"lexfeed/internal/usecase/studylab"
)

func main() {
	var (
		artifact string
		filePath string
		sourceURL string
		timeout  time.Duration
	)

	flag.StringVar(&artifact, "artifact", "flashcards", "Artifact to generate: flashcards, mindmap, or brief")
	flag.StringVar(&filePath, "file", "", "Path to a file containing the source text")
	flag.StringVar(&sourceURL, "url", "", "URL to fetch the source text from")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall generation timeout")
	flag.Parse()

	switch artifact {
	case "flashcards", "mindmap", "brief":
	default:
		fmt.Fprintf(os.Stderr, "Error: Invalid artifact '%s' (must be 'flashcards', 'mindmap', or 'brief')\n", artifact)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: lexfeed-lab --artifact flashcards|mindmap|brief [--file PATH | --url URL]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  lexfeed-lab --artifact brief --file judgment.txt")
		fmt.Fprintln(os.Stderr, "  lexfeed-lab --artifact mindmap --url https://reports.example.gov/ruling")
		fmt.Fprintln(os.Stderr, "  cat judgment.txt | lexfeed-lab --artifact flashcards")
		os.Exit(1)
	}

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	gen, err := buildGenerator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc := studylab.NewService(gen, buildFetcher(logger))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	text, err := readSource(ctx, svc, filePath, sourceURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := generate(ctx, svc, artifact, text)
	if err != nil {
		logger.Error("generation failed",
			slog.String("artifact", artifact),
			slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Generation failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode output: %v\n", err)
		os.Exit(1)
	}
}

// buildGenerator selects the backend from available credentials, preferring
// Claude when both keys are set.
func buildGenerator() (studylab.Generator, error) {
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		return generator.NewClaude(apiKey)
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		return generator.NewOpenAI(apiKey)
	}
	return nil, fmt.Errorf("no backend credentials: set ANTHROPIC_API_KEY or OPENAI_API_KEY")
}

func buildFetcher(logger *slog.Logger) *fetcher.SourceFetcher {
	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("source fetch configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}
	return fetcher.NewSourceFetcher(cfg)
}

// readSource resolves the input text from the file, URL, or stdin.
func readSource(ctx context.Context, svc *studylab.Service, filePath, sourceURL string) (string, error) {
	var raw string
	switch {
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read source file: %w", err)
		}
		raw = string(data)
	case sourceURL != "":
		// Resolve handles the fetch.
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		raw = string(data)
	}
	return svc.Resolve(ctx, raw, sourceURL)
}

func generate(ctx context.Context, svc *studylab.Service, artifact, text string) (any, error) {
	switch artifact {
	case "flashcards":
		return svc.Flashcards(ctx, text)
	case "mindmap":
		return svc.MindMap(ctx, text)
	default:
		return svc.Briefing(ctx, text)
	}
}
