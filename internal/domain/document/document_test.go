package document

import (
	"strings"
	"testing"
	"time"

	"github.com/corvid-labs/ragdex/internal/domain/document/meta"
)

func TestNew_Valid(t *testing.T) {
	doc, err := New("doc-1", "Title", "Body text", "technology",
		[]string{"ml", "ai"}, map[string]meta.Value{"author": meta.String("a")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "doc-1" || doc.Title() != "Title" || doc.Category() != "technology" {
		t.Errorf("field mismatch: %+v", doc)
	}
	if doc.EmbeddingText() != "Title Body text" {
		t.Errorf("embedding text mismatch: %q", doc.EmbeddingText())
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name                         string
		id, title, content, category string
	}{
		{"empty id", "", "t", "c", "cat"},
		{"bad id chars", "doc 1", "t", "c", "cat"},
		{"long id", strings.Repeat("a", 257), "t", "c", "cat"},
		{"empty title", "d", "", "c", "cat"},
		{"empty content", "d", "t", "", "cat"},
		{"huge content", "d", "t", strings.Repeat("x", MaxContentSize+1), "cat"},
		{"empty category", "d", "t", "c", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.id, tt.title, tt.content, tt.category, nil, nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNew_DedupesTagsPreservingOrder(t *testing.T) {
	doc, err := New("d", "t", "c", "cat", []string{"b", "a", "b", "", "a"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tags := doc.Tags()
	if len(tags) != 2 || tags[0] != "b" || tags[1] != "a" {
		t.Errorf("got tags %v, want [b a]", tags)
	}
}

func TestWithVector_DoesNotMutateOriginal(t *testing.T) {
	doc, _ := New("d", "t", "c", "cat", nil, nil)
	withVec := doc.WithVector([]float32{1, 2})
	if doc.Vector() != nil {
		t.Error("original document mutated")
	}
	if len(withVec.Vector()) != 2 {
		t.Error("vector not set on copy")
	}
}

func TestWithTimestamps(t *testing.T) {
	doc, _ := New("d", "t", "c", "cat", nil, nil)
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	doc = doc.WithTimestamps(created, updated)
	if !doc.CreatedAt().Equal(created) || !doc.UpdatedAt().Equal(updated) {
		t.Errorf("timestamps not set: %v %v", doc.CreatedAt(), doc.UpdatedAt())
	}
}
