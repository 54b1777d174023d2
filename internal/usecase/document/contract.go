package document

import (
	"context"

	"github.com/corvid-labs/ragdex/internal/domain"
	domdoc "github.com/corvid-labs/ragdex/internal/domain/document"
)

// Repository defines the storage contract for document lifecycle.
type Repository interface {
	Put(ctx context.Context, doc *domdoc.Document) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// Embedder vectorizes document text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
