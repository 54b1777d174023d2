// Package search runs vector and lexical queries against the document index.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/corvid-labs/ragdex/internal/db"
	"github.com/corvid-labs/ragdex/internal/domain"
	"github.com/corvid-labs/ragdex/internal/domain/search/result"
)

// textFields are the TEXT attributes a lexical query matches against.
var textFields = []string{"title", "content"}

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements usecase/retrieval.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SearchVector performs a KNN similarity search. Scores are cosine
// similarities in [0,1].
func (r *Repo) SearchVector(ctx context.Context, vector []float32, k int) ([]result.Result, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    domain.IndexName,
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}
	return parseEntries(sr, result.SignalVector)
}

// SearchLexical performs a BM25 keyword search over title and content.
// Scores are raw BM25 values and are not bounded.
func (r *Repo) SearchLexical(ctx context.Context, text string, k int) ([]result.Result, error) {
	sr, err := r.store.SearchBM25(ctx, &db.TextQuery{
		IndexName:    domain.IndexName,
		Query:        text,
		TextFields:   textFields,
		TopK:         k,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, fmt.Errorf("search bm25: %w", err)
	}
	return parseEntries(sr, result.SignalLexical)
}

func parseEntries(sr *db.SearchResult, signal result.Signal) ([]result.Result, error) {
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	results := make([]result.Result, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		res, err := parseEntry(entry, signal)
		if err != nil {
			return nil, fmt.Errorf("parse entry %s: %w", entry.Key, err)
		}
		results = append(results, res)
	}

	sortResults(results)
	return results, nil
}

// sortResults orders by score desc, then updated-at desc, then id asc.
// The backend's own ordering is not guaranteed to be stable across equal
// scores, so ordering is pinned here.
func sortResults(rs []result.Result) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Score() != rs[j].Score() {
			return rs[i].Score() > rs[j].Score()
		}
		if !rs[i].IndexedAt().Equal(rs[j].IndexedAt()) {
			return rs[i].IndexedAt().After(rs[j].IndexedAt())
		}
		return rs[i].ID() < rs[j].ID()
	})
}
