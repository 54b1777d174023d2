// Package filter holds the candidate filter predicate applied during retrieval.
package filter

import "github.com/corvid-labs/ragdex/internal/domain/document/meta"

// Filter narrows the candidate pool before score thresholding.
// All present clauses must match (conjunction). A zero Filter matches everything.
type Filter struct {
	category string
	tags     []string
	metadata map[string]meta.Value
}

// New creates a Filter. Empty clauses are treated as absent.
func New(category string, tags []string, metadata map[string]meta.Value) Filter {
	return Filter{category: category, tags: tags, metadata: metadata}
}

// Category returns the required category, or "" when unconstrained.
func (f Filter) Category() string { return f.category }

// Tags returns the required tags.
func (f Filter) Tags() []string { return f.tags }

// Metadata returns the required metadata equalities.
func (f Filter) Metadata() map[string]meta.Value { return f.metadata }

// IsEmpty reports whether the filter has no clauses.
func (f Filter) IsEmpty() bool {
	return f.category == "" && len(f.tags) == 0 && len(f.metadata) == 0
}

// Matches evaluates the predicate against a document's attributes.
// A document must satisfy every clause; tag matching ignores tag order.
func (f Filter) Matches(category string, tags []string, metadata map[string]meta.Value) bool {
	if f.category != "" && f.category != category {
		return false
	}
	if len(f.tags) > 0 {
		have := make(map[string]bool, len(tags))
		for _, t := range tags {
			have[t] = true
		}
		for _, want := range f.tags {
			if !have[want] {
				return false
			}
		}
	}
	for k, want := range f.metadata {
		got, ok := metadata[k]
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}
