// Package query holds the validated search query value object.
package query

import (
	"fmt"

	"github.com/corvid-labs/ragdex/internal/domain"
	"github.com/corvid-labs/ragdex/internal/domain/search/filter"
	"github.com/corvid-labs/ragdex/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query text length.
	MaxQueryLength    = 4096
	DefaultMaxResults = 10
	MaxMaxResults     = 100
	DefaultMinScore   = 0.7
)

// Query is a validated search query.
type Query struct {
	text       string
	searchMode mode.Mode
	maxResults int
	minScore   float64
	filters    filter.Filter
}

// New validates search parameters. Out-of-range values are rejected,
// not clamped; zero maxResults defaults to DefaultMaxResults.
// All validation failures wrap domain.ErrInvalidQuery.
func New(
	text string,
	m mode.Mode,
	maxResults int,
	minScore float64,
	filters filter.Filter,
) (Query, error) {
	if text == "" {
		return Query{}, fmt.Errorf("%w: query text is required", domain.ErrInvalidQuery)
	}
	if len(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if !m.IsValid() {
		return Query{}, fmt.Errorf("%w: unsupported search type %q", domain.ErrInvalidQuery, m)
	}
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < 1 || maxResults > MaxMaxResults {
		return Query{}, fmt.Errorf(
			"%w: max_results must be between 1 and %d, got %d",
			domain.ErrInvalidQuery, MaxMaxResults, maxResults,
		)
	}
	if minScore < 0 || minScore > 1 {
		return Query{}, fmt.Errorf(
			"%w: min_score must be between 0 and 1, got %g",
			domain.ErrInvalidQuery, minScore,
		)
	}

	return Query{
		text:       text,
		searchMode: m,
		maxResults: maxResults,
		minScore:   minScore,
		filters:    filters,
	}, nil
}

// Text returns the raw query text.
func (q *Query) Text() string { return q.text }

// Mode returns the search strategy.
func (q *Query) Mode() mode.Mode { return q.searchMode }

// MaxResults returns the maximum results to return.
func (q *Query) MaxResults() int { return q.maxResults }

// MinScore returns the minimum fused-score threshold.
func (q *Query) MinScore() float64 { return q.minScore }

// Filters returns the candidate filter predicate.
func (q *Query) Filters() filter.Filter { return q.filters }
