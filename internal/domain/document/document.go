// Package document holds the document aggregate.
package document

import (
	"fmt"
	"regexp"
	"time"

	"github.com/corvid-labs/ragdex/internal/domain/document/meta"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 163840 // 160KB

// Document is the document aggregate (immutable value object).
// The vector must always correspond to the current title+content;
// the lifecycle service regenerates it on every content mutation.
type Document struct {
	id        string
	title     string
	content   string
	category  string
	tags      []string
	metadata  map[string]meta.Value
	vector    []float32
	createdAt time.Time
	updatedAt time.Time
}

// New validates and creates a Document without a vector.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Tags are deduplicated preserving
// first-occurrence order.
func New(
	id, title, content, category string,
	tags []string, metadata map[string]meta.Value,
) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	if title == "" {
		return Document{}, fmt.Errorf("title is required")
	}
	if content == "" {
		return Document{}, fmt.Errorf("content is required")
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("content too large (max %d bytes)", MaxContentSize)
	}
	if category == "" {
		return Document{}, fmt.Errorf("category is required")
	}

	return Document{
		id:       id,
		title:    title,
		content:  content,
		category: category,
		tags:     dedupeTags(tags),
		metadata: cloneMeta(metadata),
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(
	id, title, content, category string,
	tags []string, metadata map[string]meta.Value,
	vector []float32, createdAt, updatedAt time.Time,
) Document {
	return Document{
		id: id, title: title, content: content, category: category,
		tags: tags, metadata: metadata, vector: vector,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the retrievable text body.
func (d *Document) Content() string { return d.content }

// Category returns the single category label.
func (d *Document) Category() string { return d.category }

// Tags returns the tags in display order.
func (d *Document) Tags() []string { return d.tags }

// Metadata returns the opaque scalar metadata.
func (d *Document) Metadata() map[string]meta.Value { return d.metadata }

// Vector returns the embedding vector.
func (d *Document) Vector() []float32 { return d.vector }

// CreatedAt returns the creation timestamp.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// UpdatedAt returns the last update timestamp.
func (d *Document) UpdatedAt() time.Time { return d.updatedAt }

// EmbeddingText returns the text the embedding is derived from.
func (d *Document) EmbeddingText() string { return d.title + " " + d.content }

// WithVector returns a copy with the given vector set.
func (d Document) WithVector(v []float32) Document {
	d.vector = v
	return d
}

// WithTimestamps returns a copy with the given timestamps set.
func (d Document) WithTimestamps(createdAt, updatedAt time.Time) Document {
	d.createdAt = createdAt
	d.updatedAt = updatedAt
	return d
}

func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func cloneMeta(m map[string]meta.Value) map[string]meta.Value {
	if m == nil {
		return nil
	}
	c := make(map[string]meta.Value, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
