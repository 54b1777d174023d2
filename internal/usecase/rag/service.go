// Package rag assembles retrieval results into an LLM-ready prompt.
package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/corvid-labs/ragdex/internal/domain"
	"github.com/corvid-labs/ragdex/internal/domain/search/filter"
	"github.com/corvid-labs/ragdex/internal/domain/search/mode"
	"github.com/corvid-labs/ragdex/internal/domain/search/query"
)

// Context assembly limits.
const (
	DefaultMaxContext = 3
	MaxMaxContext     = 10
)

const (
	promptPreamble = "Based on the following context, please answer the query. " +
		"Use the provided information to give accurate and contextual responses."
	promptInstructions = "Instructions: Please provide a comprehensive answer based on the context above. " +
		"If the context doesn't contain sufficient information to answer the query, " +
		"please indicate what additional information would be needed."
	noContextNote = "Note: No relevant context found in the knowledge base."
)

// ExcerptConfig bounds how much document text flows into the prompt and
// the source attributions.
type ExcerptConfig struct {
	ContextChars int
	SourceChars  int
}

// DefaultExcerpts caps context sections at 800 chars and source excerpts at 200.
var DefaultExcerpts = ExcerptConfig{ContextChars: 800, SourceChars: 200}

// Request asks for an assembled context for one query.
type Request struct {
	Query          string
	MaxContext     int
	MinScore       float64
	IncludeSources bool
}

// Source attributes one excerpt in the assembled prompt.
type Source struct {
	ID       string
	Title    string
	Category string
	Score    float64
	Excerpt  string
}

// Result is an assembled RAG context. An empty Sources with a no-context
// prompt is a valid outcome, not an error.
type Result struct {
	OriginalQuery string
	Prompt        string
	ContextCount  int
	Sources       []Source
	Took          time.Duration
}

// Assembler builds prompts from vector retrieval results.
type Assembler struct {
	retriever Retriever
	excerpts  ExcerptConfig
	logger    *zap.Logger
}

// New creates a RAG assembler.
func New(retriever Retriever, excerpts ExcerptConfig, logger *zap.Logger) *Assembler {
	return &Assembler{retriever: retriever, excerpts: excerpts, logger: logger}
}

// Assemble retrieves context documents and builds the enhanced prompt.
// Context retrieval always runs in vector mode.
func (a *Assembler) Assemble(ctx context.Context, req *Request) (Result, error) {
	start := time.Now()

	maxContext := req.MaxContext
	if maxContext == 0 {
		maxContext = DefaultMaxContext
	}
	if maxContext < 1 || maxContext > MaxMaxContext {
		return Result{}, fmt.Errorf(
			"%w: max_context must be between 1 and %d, got %d",
			domain.ErrInvalidQuery, MaxMaxContext, req.MaxContext,
		)
	}

	q, err := query.New(req.Query, mode.Vector, maxContext, req.MinScore, filter.Filter{})
	if err != nil {
		return Result{}, err
	}

	resp, err := a.retriever.Retrieve(ctx, &q)
	if err != nil {
		return Result{}, fmt.Errorf("retrieve context: %w", err)
	}

	result := Result{
		OriginalQuery: req.Query,
		ContextCount:  len(resp.Results),
	}

	if len(resp.Results) == 0 {
		result.Prompt = fmt.Sprintf("Query: %s\n\n%s", req.Query, noContextNote)
		result.Took = time.Since(start)
		return result, nil
	}

	sections := make([]string, 0, len(resp.Results))
	for i, r := range resp.Results {
		sections = append(sections, fmt.Sprintf(
			"Context %d: [%s]\n%s", i+1, r.Title(), excerpt(r.Content(), a.excerpts.ContextChars),
		))
	}

	result.Prompt = fmt.Sprintf(
		"%s\n\n%s\n\nQuery: %s\n\n%s",
		promptPreamble, strings.Join(sections, "\n\n"), req.Query, promptInstructions,
	)

	if req.IncludeSources {
		result.Sources = make([]Source, 0, len(resp.Results))
		for _, r := range resp.Results {
			result.Sources = append(result.Sources, Source{
				ID:       r.ID(),
				Title:    r.Title(),
				Category: r.Category(),
				Score:    r.Score(),
				Excerpt:  excerpt(r.Content(), a.excerpts.SourceChars),
			})
		}
	}

	result.Took = time.Since(start)

	a.logger.Debug("Context assembled",
		zap.Int("context_count", result.ContextCount),
		zap.Bool("include_sources", req.IncludeSources),
		zap.Duration("took", result.Took))

	return result, nil
}

// excerpt truncates text at limit and marks the cut with an ellipsis.
func excerpt(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
