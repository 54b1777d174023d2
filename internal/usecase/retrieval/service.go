// Package retrieval executes validated queries against the document index.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/corvid-labs/ragdex/internal/domain"
	"github.com/corvid-labs/ragdex/internal/domain/search/mode"
	"github.com/corvid-labs/ragdex/internal/domain/search/query"
	"github.com/corvid-labs/ragdex/internal/domain/search/result"
)

// OverFetchFactor is how many candidates per requested result are pulled
// from each signal before fusion and filtering. Filters and the score
// threshold discard candidates, so fetching exactly max_results would
// starve the final page.
const OverFetchFactor = 3

// Response is the outcome of a retrieval run.
type Response struct {
	Results []result.Result
	Took    time.Duration
}

// Engine runs hybrid retrieval: embed once, fetch per signal, fuse,
// filter, threshold, truncate.
type Engine struct {
	repo    Repository
	embed   Embedder
	weights Weights
	logger  *zap.Logger
}

// New creates a retrieval engine.
func New(repo Repository, embed Embedder, weights Weights, logger *zap.Logger) *Engine {
	return &Engine{repo: repo, embed: embed, weights: weights, logger: logger}
}

// Retrieve executes a validated query.
//
// Backend and embedding failures are never converted into an empty
// success: the caller always sees the error. A deadline hit anywhere in
// the pipeline surfaces as domain.ErrRetrievalTimeout.
func (e *Engine) Retrieve(ctx context.Context, q *query.Query) (Response, error) {
	start := time.Now()

	// One embed per query regardless of mode.
	embRes, err := e.embed.Embed(ctx, q.Text())
	if err != nil {
		return Response{}, e.classify(fmt.Errorf("vectorize query: %w", err))
	}

	k := q.MaxResults() * OverFetchFactor

	var candidates []result.Result
	switch q.Mode() {
	case mode.Vector:
		candidates, err = e.fetchVector(ctx, embRes.Embedding, k)
	case mode.Hybrid:
		candidates, err = e.fetchHybrid(ctx, embRes.Embedding, q.Text(), k)
	default:
		return Response{}, fmt.Errorf("%w: unsupported search type %q", domain.ErrInvalidQuery, q.Mode())
	}
	if err != nil {
		return Response{}, e.classify(err)
	}

	results := e.narrow(candidates, q)

	took := time.Since(start)
	e.logger.Debug("Retrieval complete",
		zap.String("mode", string(q.Mode())),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
		zap.Duration("took", took))

	return Response{Results: results, Took: took}, nil
}

// fetchVector runs the single-signal path. Cosine similarities are
// already in [0,1]; no normalization is applied.
func (e *Engine) fetchVector(ctx context.Context, vector []float32, k int) ([]result.Result, error) {
	results, err := e.repo.SearchVector(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search vector: %w", err)
	}
	return results, nil
}

// fetchHybrid runs both signals concurrently and fuses them.
// Either signal failing fails the whole retrieval; a half-blind ranking
// would silently misorder results.
func (e *Engine) fetchHybrid(ctx context.Context, vector []float32, text string, k int) ([]result.Result, error) {
	var vecResults, lexResults []result.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vecResults, err = e.repo.SearchVector(gctx, vector, k)
		if err != nil {
			return fmt.Errorf("search vector: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		lexResults, err = e.repo.SearchLexical(gctx, text, k)
		if err != nil {
			return fmt.Errorf("search lexical: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return fuse(vecResults, lexResults, e.weights), nil
}

// narrow applies filters, then the score threshold, then the result cap.
// Filters run first so that thresholding never admits a document the
// filter would have rejected.
func (e *Engine) narrow(candidates []result.Result, q *query.Query) []result.Result {
	results := make([]result.Result, 0, q.MaxResults())
	filters := q.Filters()

	for _, r := range candidates {
		if !filters.IsEmpty() && !filters.Matches(r.Category(), r.Tags(), r.Metadata()) {
			continue
		}
		if r.Score() < q.MinScore() {
			continue
		}
		results = append(results, r)
		if len(results) == q.MaxResults() {
			break
		}
	}

	return results
}

// classify maps pipeline failures onto domain sentinels. Errors already
// carrying a sentinel pass through untouched.
func (e *Engine) classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrEmbeddingDimMismatch),
		errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, domain.ErrRetrievalTimeout),
		errors.Is(err, domain.ErrRetrievalUnavailable):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", domain.ErrRetrievalTimeout, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrRetrievalUnavailable, err)
	}
}
