package retrieval

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/corvid-labs/ragdex/internal/domain"
	"github.com/corvid-labs/ragdex/internal/domain/document/meta"
	"github.com/corvid-labs/ragdex/internal/domain/search/filter"
	"github.com/corvid-labs/ragdex/internal/domain/search/mode"
	"github.com/corvid-labs/ragdex/internal/domain/search/query"
	"github.com/corvid-labs/ragdex/internal/domain/search/result"
)

type mockRepo struct {
	vectorFn    func(ctx context.Context, vector []float32, k int) ([]result.Result, error)
	lexicalFn   func(ctx context.Context, text string, k int) ([]result.Result, error)
	vectorCalls atomic.Int32
}

func (m *mockRepo) SearchVector(ctx context.Context, vector []float32, k int) ([]result.Result, error) {
	m.vectorCalls.Add(1)
	return m.vectorFn(ctx, vector, k)
}

func (m *mockRepo) SearchLexical(ctx context.Context, text string, k int) ([]result.Result, error) {
	return m.lexicalFn(ctx, text, k)
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  atomic.Int32
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls.Add(1)
	return m.result, m.err
}

func newTestEngine(repo *mockRepo, embed *mockEmbedder) *Engine {
	return New(repo, embed, DefaultWeights, zap.NewNop())
}

func mustQuery(t *testing.T, text string, m mode.Mode, maxResults int, minScore float64, f filter.Filter) query.Query {
	t.Helper()
	q, err := query.New(text, m, maxResults, minScore, f)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	return q
}

func taggedRes(id string, score float64, category string, tags []string) result.Result {
	return result.New(id, score, result.SignalVector, "t", "c", category, tags, nil, time.Time{})
}

func TestRetrieve_EmbedsExactlyOnce(t *testing.T) {
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	repo := &mockRepo{
		vectorFn: func(_ context.Context, _ []float32, _ int) ([]result.Result, error) {
			return []result.Result{taggedRes("a", 0.9, "cat", nil)}, nil
		},
		lexicalFn: func(_ context.Context, _ string, _ int) ([]result.Result, error) {
			return []result.Result{taggedRes("a", 5.0, "cat", nil)}, nil
		},
	}
	engine := newTestEngine(repo, embed)

	q := mustQuery(t, "test", mode.Hybrid, 10, 0, filter.Filter{})
	if _, err := engine.Retrieve(context.Background(), &q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := embed.calls.Load(); n != 1 {
		t.Errorf("expected exactly 1 embed call, got %d", n)
	}
}

func TestRetrieve_OverFetchesCandidates(t *testing.T) {
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	repo := &mockRepo{
		vectorFn: func(_ context.Context, _ []float32, k int) ([]result.Result, error) {
			if k != 15 {
				t.Errorf("expected k=15 (5*3), got %d", k)
			}
			return nil, nil
		},
	}
	engine := newTestEngine(repo, embed)

	q := mustQuery(t, "test", mode.Vector, 5, 0, filter.Filter{})
	if _, err := engine.Retrieve(context.Background(), &q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRetrieve_VectorModeKeepsRawScores(t *testing.T) {
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	repo := &mockRepo{
		vectorFn: func(_ context.Context, _ []float32, _ int) ([]result.Result, error) {
			return []result.Result{
				taggedRes("a", 0.92, "cat", nil),
				taggedRes("b", 0.81, "cat", nil),
			}, nil
		},
	}
	engine := newTestEngine(repo, embed)

	q := mustQuery(t, "test", mode.Vector, 10, 0, filter.Filter{})
	resp, err := engine.Retrieve(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Score() != 0.92 {
		t.Errorf("expected raw cosine similarity, got %f", resp.Results[0].Score())
	}
	if resp.Results[0].Signal() != result.SignalVector {
		t.Errorf("expected vector signal, got %s", resp.Results[0].Signal())
	}
}

func TestRetrieve_FiltersBeforeThreshold(t *testing.T) {
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	repo := &mockRepo{
		vectorFn: func(_ context.Context, _ []float32, _ int) ([]result.Result, error) {
			return []result.Result{
				taggedRes("wrong-cat", 0.99, "other", nil),
				taggedRes("right-cat", 0.85, "wanted", nil),
				taggedRes("low-score", 0.40, "wanted", nil),
			}, nil
		},
	}
	engine := newTestEngine(repo, embed)

	f := filter.New("wanted", nil, nil)
	q := mustQuery(t, "test", mode.Vector, 10, 0.7, f)
	resp, err := engine.Retrieve(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The high-scoring document in the wrong category must not appear,
	// and the low-scoring one in the right category falls to min_score.
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	if resp.Results[0].ID() != "right-cat" {
		t.Errorf("expected right-cat, got %s", resp.Results[0].ID())
	}
}

func TestRetrieve_MetadataFilter(t *testing.T) {
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	repo := &mockRepo{
		vectorFn: func(_ context.Context, _ []float32, _ int) ([]result.Result, error) {
			return []result.Result{
				result.New("match", 0.9, result.SignalVector, "t", "c", "cat", nil,
					map[string]meta.Value{"lang": meta.String("go")}, time.Time{}),
				result.New("no-match", 0.9, result.SignalVector, "t", "c", "cat", nil,
					map[string]meta.Value{"lang": meta.String("py")}, time.Time{}),
			}, nil
		},
	}
	engine := newTestEngine(repo, embed)

	f := filter.New("", nil, map[string]meta.Value{"lang": meta.String("go")})
	q := mustQuery(t, "test", mode.Vector, 10, 0, f)
	resp, err := engine.Retrieve(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID() != "match" {
		t.Fatalf("expected only metadata match, got %v", resp.Results)
	}
}

func TestRetrieve_TruncatesToMaxResults(t *testing.T) {
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	repo := &mockRepo{
		vectorFn: func(_ context.Context, _ []float32, _ int) ([]result.Result, error) {
			rs := make([]result.Result, 6)
			for i := range rs {
				rs[i] = taggedRes(string(rune('a'+i)), 0.9-float64(i)*0.01, "cat", nil)
			}
			return rs, nil
		},
	}
	engine := newTestEngine(repo, embed)

	q := mustQuery(t, "test", mode.Vector, 2, 0, filter.Filter{})
	resp, err := engine.Retrieve(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].ID() != "a" || resp.Results[1].ID() != "b" {
		t.Errorf("expected top 2 by score, got %s %s", resp.Results[0].ID(), resp.Results[1].ID())
	}
}

func TestRetrieve_EmbedFailureIsNotEmptySuccess(t *testing.T) {
	embed := &mockEmbedder{err: domain.ErrEmbeddingUnavailable}
	repo := &mockRepo{}
	engine := newTestEngine(repo, embed)

	q := mustQuery(t, "test", mode.Vector, 10, 0, filter.Filter{})
	_, err := engine.Retrieve(context.Background(), &q)
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
	if n := repo.vectorCalls.Load(); n != 0 {
		t.Errorf("expected no search calls after embed failure, got %d", n)
	}
}

func TestRetrieve_HybridFailsWhenOneSignalFails(t *testing.T) {
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	repo := &mockRepo{
		vectorFn: func(_ context.Context, _ []float32, _ int) ([]result.Result, error) {
			return []result.Result{taggedRes("a", 0.9, "cat", nil)}, nil
		},
		lexicalFn: func(_ context.Context, _ string, _ int) ([]result.Result, error) {
			return nil, errors.New("text index offline")
		},
	}
	engine := newTestEngine(repo, embed)

	q := mustQuery(t, "test", mode.Hybrid, 10, 0, filter.Filter{})
	_, err := engine.Retrieve(context.Background(), &q)
	if !errors.Is(err, domain.ErrRetrievalUnavailable) {
		t.Fatalf("expected ErrRetrievalUnavailable, got %v", err)
	}
}

func TestRetrieve_DeadlineMapsToTimeout(t *testing.T) {
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	repo := &mockRepo{
		vectorFn: func(ctx context.Context, _ []float32, _ int) ([]result.Result, error) {
			return nil, context.DeadlineExceeded
		},
	}
	engine := newTestEngine(repo, embed)

	q := mustQuery(t, "test", mode.Vector, 10, 0, filter.Filter{})
	_, err := engine.Retrieve(context.Background(), &q)
	if !errors.Is(err, domain.ErrRetrievalTimeout) {
		t.Fatalf("expected ErrRetrievalTimeout, got %v", err)
	}
}

func TestRetrieve_ReportsExecutionTime(t *testing.T) {
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	repo := &mockRepo{
		vectorFn: func(_ context.Context, _ []float32, _ int) ([]result.Result, error) {
			time.Sleep(2 * time.Millisecond)
			return nil, nil
		},
	}
	engine := newTestEngine(repo, embed)

	q := mustQuery(t, "test", mode.Vector, 10, 0, filter.Filter{})
	resp, err := engine.Retrieve(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Took <= 0 {
		t.Errorf("expected positive execution time, got %v", resp.Took)
	}
}
