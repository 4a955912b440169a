package studylab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lexfeed/internal/observability/metrics"
)

// Sentinel errors for study lab input handling.
var (
	// ErrEmptyInput indicates neither text nor a resolvable URL was supplied.
	ErrEmptyInput = errors.New("no source text provided")

	// ErrEmptyResult indicates the backend answered but produced no usable
	// artifact.
	ErrEmptyResult = errors.New("generation produced no usable content")
)

// maxInputChars caps the source text embedded in a prompt. Longer inputs are
// truncated at a rune boundary rather than rejected.
const maxInputChars = 60000

// defaultCardCount is the upper bound requested per flashcard generation.
const defaultCardCount = 20

// Generator produces a JSON payload conforming to the given schema.
type Generator interface {
	Generate(ctx context.Context, instructions string, schema map[string]any) ([]byte, error)
}

// SourceFetcher resolves a URL into readable text.
// Implemented by internal/infra/fetcher.
type SourceFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Service generates study artifacts from legal source text.
type Service struct {
	generator Generator
	fetcher   SourceFetcher
}

// NewService creates a study lab service. fetcher may be nil when URL inputs
// are not supported by the caller.
func NewService(generator Generator, fetcher SourceFetcher) *Service {
	return &Service{generator: generator, fetcher: fetcher}
}

// Resolve returns the source text for a request: the given text when present,
// otherwise the extracted content of the given URL. The result is capped at
// maxInputChars.
func (s *Service) Resolve(ctx context.Context, text, url string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" && url != "" {
		if s.fetcher == nil {
			return "", fmt.Errorf("%w: URL input not supported", ErrEmptyInput)
		}
		fetched, err := s.fetcher.FetchText(ctx, url)
		if err != nil {
			return "", fmt.Errorf("fetch source text: %w", err)
		}
		text = strings.TrimSpace(fetched)
	}
	if text == "" {
		return "", ErrEmptyInput
	}

	runes := []rune(text)
	if len(runes) > maxInputChars {
		text = string(runes[:maxInputChars])
	}
	return text, nil
}

// Flashcards generates question/answer cards from the source text.
func (s *Service) Flashcards(ctx context.Context, text string) ([]Flashcard, error) {
	payload, err := s.generator.Generate(ctx, flashcardsInstructions(text, defaultCardCount), flashcardsSchema())
	if err != nil {
		metrics.RecordLabGeneration("flashcards", false)
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}

	var envelope struct {
		Cards []Flashcard `json:"cards"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		metrics.RecordLabGeneration("flashcards", false)
		return nil, fmt.Errorf("parse flashcards payload: %w", err)
	}

	cards := make([]Flashcard, 0, len(envelope.Cards))
	for _, c := range envelope.Cards {
		if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
			continue
		}
		cards = append(cards, c)
	}
	if len(cards) == 0 {
		metrics.RecordLabGeneration("flashcards", false)
		return nil, ErrEmptyResult
	}

	metrics.RecordLabGeneration("flashcards", true)
	slog.InfoContext(ctx, "flashcards generated", slog.Int("cards", len(cards)))
	return cards, nil
}

// MindMap generates a concept map of the source text.
func (s *Service) MindMap(ctx context.Context, text string) (*MindMapNode, error) {
	payload, err := s.generator.Generate(ctx, mindMapInstructions(text), mindMapSchema())
	if err != nil {
		metrics.RecordLabGeneration("mindmap", false)
		return nil, fmt.Errorf("generate mind map: %w", err)
	}

	var root MindMapNode
	if err := json.Unmarshal(payload, &root); err != nil {
		metrics.RecordLabGeneration("mindmap", false)
		return nil, fmt.Errorf("parse mind map payload: %w", err)
	}
	if strings.TrimSpace(root.Label) == "" {
		metrics.RecordLabGeneration("mindmap", false)
		return nil, ErrEmptyResult
	}

	metrics.RecordLabGeneration("mindmap", true)
	slog.InfoContext(ctx, "mind map generated", slog.Int("branches", len(root.Children)))
	return &root, nil
}

// Briefing generates a case-brief style note from the source text.
func (s *Service) Briefing(ctx context.Context, text string) (*BriefingNote, error) {
	payload, err := s.generator.Generate(ctx, briefingInstructions(text), briefingSchema())
	if err != nil {
		metrics.RecordLabGeneration("brief", false)
		return nil, fmt.Errorf("generate briefing note: %w", err)
	}

	var note BriefingNote
	if err := json.Unmarshal(payload, &note); err != nil {
		metrics.RecordLabGeneration("brief", false)
		return nil, fmt.Errorf("parse briefing payload: %w", err)
	}
	if strings.TrimSpace(note.Title) == "" {
		metrics.RecordLabGeneration("brief", false)
		return nil, ErrEmptyResult
	}

	metrics.RecordLabGeneration("brief", true)
	slog.InfoContext(ctx, "briefing note generated", slog.String("title", note.Title))
	return &note, nil
}
