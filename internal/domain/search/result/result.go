// Package result holds scored search hits.
package result

import (
	"time"

	"github.com/corvid-labs/ragdex/internal/domain/document/meta"
)

// Signal identifies which ranking signal produced a score.
type Signal string

// Originating signals.
const (
	SignalVector  Signal = "vector"
	SignalLexical Signal = "lexical"
	SignalFused   Signal = "fused"
)

// Result is a single search hit. It references a document by id and
// never owns or mutates the stored document.
type Result struct {
	id        string
	title     string
	content   string
	category  string
	tags      []string
	metadata  map[string]meta.Value
	score     float64
	signal    Signal
	indexedAt time.Time
}

// New creates a search result.
func New(
	id string, score float64, signal Signal,
	title, content, category string,
	tags []string, metadata map[string]meta.Value,
	indexedAt time.Time,
) Result {
	return Result{
		id: id, score: score, signal: signal,
		title: title, content: content, category: category,
		tags: tags, metadata: metadata, indexedAt: indexedAt,
	}
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.id }

// Score returns the relevance score in [0,1].
func (r *Result) Score() float64 { return r.score }

// Signal returns the originating ranking signal.
func (r *Result) Signal() Signal { return r.signal }

// Title returns the document title.
func (r *Result) Title() string { return r.title }

// Content returns the document content.
func (r *Result) Content() string { return r.content }

// Category returns the document category.
func (r *Result) Category() string { return r.category }

// Tags returns the document tags.
func (r *Result) Tags() []string { return r.tags }

// Metadata returns the document metadata.
func (r *Result) Metadata() map[string]meta.Value { return r.metadata }

// IndexedAt returns when the document was last indexed (tie-break ordering).
func (r *Result) IndexedAt() time.Time { return r.indexedAt }

// WithScore returns a copy carrying a new score and signal.
func (r Result) WithScore(score float64, signal Signal) Result {
	r.score = score
	r.signal = signal
	return r
}
