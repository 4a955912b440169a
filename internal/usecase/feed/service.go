// Package feed orchestrates content batch fetching: it builds generator
// requests per content kind, invokes the generative backend, parses and
// sanitizes the result, and enforces the never-fails contract of the
// fetch-batch family in one place.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"lexfeed/internal/common/pagination"
	"lexfeed/internal/common/sanitize"
	"lexfeed/internal/domain/entity"
	"lexfeed/internal/observability/metrics"
)

// Generator produces a JSON payload conforming to the given schema.
// Implementations live in internal/infra/generator.
type Generator interface {
	Generate(ctx context.Context, instructions string, schema map[string]any) ([]byte, error)
}

// Options tunes the feed service.
type Options struct {
	// CacheTTL is how long a cleaned batch is served from memory before a
	// fresh generation is triggered. Zero selects the 30 minute default.
	CacheTTL time.Duration
}

// Service serves cleaned content batches. FetchBatch and the per-kind
// wrappers never return an error: every unrecovered failure degrades to an
// empty batch so the rendering layer always has something to show.
//
// Service is safe for concurrent use. Duplicate in-flight requests for the
// same (kind, query, page, limit) are collapsed into one generator call.
type Service struct {
	generator Generator
	filter    *sanitize.Filter
	cache     *batchCache
	group     singleflight.Group
}

// NewService creates a feed service over the given generator and sanitizer.
func NewService(generator Generator, filter *sanitize.Filter, opts Options) *Service {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Service{
		generator: generator,
		filter:    filter,
		cache:     newBatchCache(ttl),
	}
}

// FetchBatch returns the cleaned batch for one content kind. The returned
// batch is non-nil and possibly empty; errors never cross this boundary.
func (s *Service) FetchBatch(ctx context.Context, kind entity.Kind, query string, params pagination.Params) entity.Batch {
	key := batchKey(kind, query, params)

	if batch, ok := s.cache.get(key); ok {
		metrics.RecordBatchFetch(string(kind), "cache", len(batch))
		return batch
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.refresh(ctx, kind, query, params)
	})
	if err != nil {
		slog.ErrorContext(ctx, "batch fetch degraded to empty",
			slog.String("kind", string(kind)),
			slog.String("query", query),
			slog.Int("page", params.Page),
			slog.String("error", err.Error()))
		metrics.RecordBatchFetch(string(kind), "empty", 0)
		return entity.Batch{}
	}

	batch := result.(entity.Batch)
	metrics.RecordBatchFetch(string(kind), "ok", len(batch))
	return batch
}

// News returns a cleaned batch of legal news stories.
func (s *Service) News(ctx context.Context, query string, params pagination.Params) entity.Batch {
	return s.FetchBatch(ctx, entity.KindNews, query, params)
}

// Articles returns a cleaned batch of scholarly articles and commentary.
func (s *Service) Articles(ctx context.Context, query string, params pagination.Params) entity.Batch {
	return s.FetchBatch(ctx, entity.KindArticles, query, params)
}

// Judgments returns a cleaned batch of court judgments.
func (s *Service) Judgments(ctx context.Context, query string, params pagination.Params) entity.Batch {
	return s.FetchBatch(ctx, entity.KindJudgments, query, params)
}

// Statutes returns a cleaned batch of statutes and legislative acts.
func (s *Service) Statutes(ctx context.Context, query string, params pagination.Params) entity.Batch {
	return s.FetchBatch(ctx, entity.KindStatutes, query, params)
}

// JurisdictionFeed returns a cleaned batch of developments for one
// jurisdiction code.
func (s *Service) JurisdictionFeed(ctx context.Context, code string, params pagination.Params) entity.Batch {
	return s.FetchBatch(ctx, entity.KindJurisdiction, code, params)
}

// WarmAll refreshes the front page of every kind concurrently and reports the
// first failure. The warmer calls this on a schedule so interactive requests
// are served from cache.
func (s *Service) WarmAll(ctx context.Context, params pagination.Params) error {
	kinds := []entity.Kind{
		entity.KindNews,
		entity.KindArticles,
		entity.KindJudgments,
		entity.KindStatutes,
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		g.Go(func() error {
			key := batchKey(kind, "", params)
			result, err, _ := s.group.Do(key, func() (interface{}, error) {
				return s.refresh(ctx, kind, "", params)
			})
			if err != nil {
				return fmt.Errorf("warm %s: %w", kind, err)
			}
			slog.InfoContext(ctx, "warmed batch",
				slog.String("kind", string(kind)),
				slog.Int("records", len(result.(entity.Batch))))
			return nil
		})
	}
	return g.Wait()
}

// refresh generates, decodes, and sanitizes one batch, then caches it.
func (s *Service) refresh(ctx context.Context, kind entity.Kind, query string, params pagination.Params) (entity.Batch, error) {
	payload, err := s.generator.Generate(ctx, buildInstructions(kind, query, params), batchSchema(kind))
	if err != nil {
		return nil, fmt.Errorf("generate %s batch: %w", kind, err)
	}

	raw, err := decodeBatch(kind, payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s batch: %w", kind, err)
	}

	clean := s.sanitizeBatch(ctx, kind, raw)
	s.cache.set(batchKey(kind, query, params), clean)
	return clean, nil
}

// sanitizeBatch applies the filter record by record so each rejection is
// counted by reason. Order of survivors is preserved.
func (s *Service) sanitizeBatch(ctx context.Context, kind entity.Kind, raw entity.Batch) entity.Batch {
	clean := make(entity.Batch, 0, len(raw))
	for _, record := range raw {
		if reason, rejected := s.filter.Reject(record); rejected {
			metrics.RecordRecordDropped(string(kind), string(reason))
			slog.DebugContext(ctx, "record dropped",
				slog.String("kind", string(kind)),
				slog.String("reason", string(reason)))
			continue
		}
		clean = append(clean, record)
	}
	return clean
}
